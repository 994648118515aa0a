package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Role represents the role of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a registered account. Users are immutable after
// registration and are never deleted.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"type:varchar(50);uniqueIndex"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never exposed
	Role      Role      `json:"role" gorm:"type:varchar(10);not null;default:'user'"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product represents a catalog item.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(100);index"`
	Category    string    `json:"category" gorm:"type:varchar(50);index"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Unit        string    `json:"unit" gorm:"type:varchar(20)"`
	Image       string    `json:"image" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductPatch enumerates the mutable fields of a Product. Nil means keep.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Unit        *string  `json:"unit"`
	Image       *string  `json:"-"`
}

// Apply merges the patch into p. Unset fields are preserved.
func (patch *ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
}

// InventoryItem represents a stock-keeping record.
type InventoryItem struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);index"`
	Category     string    `json:"category" gorm:"type:varchar(50)"`
	Quantity     int       `json:"quantity"`
	Unit         string    `json:"unit" gorm:"type:varchar(20)"`
	ReorderLevel int       `json:"reorderLevel"`
	Location     string    `json:"location" gorm:"type:varchar(100)"`
	CreatedAt    time.Time `json:"createdAt"`
}

// InventoryPatch enumerates the mutable fields of an InventoryItem.
type InventoryPatch struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Quantity     *int    `json:"quantity"`
	Unit         *string `json:"unit"`
	ReorderLevel *int    `json:"reorderLevel"`
	Location     *string `json:"location"`
}

// Apply merges the patch into item. Unset fields are preserved.
func (patch *InventoryPatch) Apply(item *InventoryItem) {
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.ReorderLevel != nil {
		item.ReorderLevel = *patch.ReorderLevel
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
}

// Customer represents a customer contact record.
type Customer struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);index"`
	Email     string    `json:"email" gorm:"type:varchar(100);index"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Address   string    `json:"address" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomerPatch enumerates the mutable fields of a Customer.
type CustomerPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// Apply merges the patch into c. Unset fields are preserved.
func (patch *CustomerPatch) Apply(c *Customer) {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
}

// Supplier represents a supplier record. CreatedBy is the owning user;
// only the owner or an admin may modify it.
type Supplier struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);index"`
	Company   string    `json:"company" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Address   string    `json:"address" gorm:"type:text"`
	Items     string    `json:"items" gorm:"type:text"`
	CreatedBy int64     `json:"createdBy" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupplierPatch enumerates the mutable fields of a Supplier. CreatedBy is
// server-assigned and not patchable.
type SupplierPatch struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Items   *string `json:"items"`
}

// Apply merges the patch into s. Unset fields are preserved.
func (patch *SupplierPatch) Apply(s *Supplier) {
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Company != nil {
		s.Company = *patch.Company
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.Phone != nil {
		s.Phone = *patch.Phone
	}
	if patch.Address != nil {
		s.Address = *patch.Address
	}
	if patch.Items != nil {
		s.Items = *patch.Items
	}
}

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderItem is a free-form line item; names are not validated against the
// product catalog.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

// OrderItems is stored as a JSON column.
type OrderItems []OrderItem

// Value implements driver.Valuer
func (items OrderItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan implements sql.Scanner
func (items *OrderItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	case nil:
		*items = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for OrderItems: %T", value)
	}
}

// Order represents a customer order. CreatedBy is the owning user.
type Order struct {
	ID           int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerName string      `json:"customerName" gorm:"type:varchar(100)"`
	Items        OrderItems  `json:"items" gorm:"type:text"`
	Status       OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	Total        float64     `json:"total"`
	Image        string      `json:"image" gorm:"type:varchar(255)"`
	CreatedBy    int64       `json:"createdBy" gorm:"index"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// OrderPatch enumerates the mutable fields of an Order.
type OrderPatch struct {
	CustomerName *string      `json:"customerName"`
	Items        OrderItems   `json:"items"`
	Status       *OrderStatus `json:"status"`
	Total        *float64     `json:"total"`
	Image        *string      `json:"-"`
}

// Apply merges the patch into o. Unset fields are preserved.
func (patch *OrderPatch) Apply(o *Order) {
	if patch.CustomerName != nil {
		o.CustomerName = *patch.CustomerName
	}
	if patch.Items != nil {
		o.Items = patch.Items
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.Total != nil {
		o.Total = *patch.Total
	}
	if patch.Image != nil {
		o.Image = *patch.Image
	}
}

// FeedbackStatus represents the moderation state of a feedback entry.
type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackApproved FeedbackStatus = "approved"
	FeedbackRejected FeedbackStatus = "rejected"
)

// Feedback represents a product review left by a visitor.
type Feedback struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Email     string         `json:"email" gorm:"type:varchar(100)"`
	Product   string         `json:"product" gorm:"type:varchar(100)"`
	Rating    int            `json:"rating"`
	Message   string         `json:"message" gorm:"type:text"`
	Status    FeedbackStatus `json:"status" gorm:"type:varchar(20);index"`
	CreatedAt time.Time      `json:"createdAt"`
}

// FeedbackPatch enumerates the mutable fields of a Feedback entry.
type FeedbackPatch struct {
	Name    *string         `json:"name"`
	Email   *string         `json:"email"`
	Product *string         `json:"product"`
	Rating  *int            `json:"rating"`
	Message *string         `json:"message"`
	Status  *FeedbackStatus `json:"-"`
}

// Apply merges the patch into f. Unset fields are preserved.
func (patch *FeedbackPatch) Apply(f *Feedback) {
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Email != nil {
		f.Email = *patch.Email
	}
	if patch.Product != nil {
		f.Product = *patch.Product
	}
	if patch.Rating != nil {
		f.Rating = *patch.Rating
	}
	if patch.Message != nil {
		f.Message = *patch.Message
	}
	if patch.Status != nil {
		f.Status = *patch.Status
	}
}

// DeliveryStatus represents the shipment state of a delivery.
type DeliveryStatus string

const (
	DeliveryScheduled DeliveryStatus = "scheduled"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Delivery represents a shipment for an order. At most one delivery may
// exist per order.
type Delivery struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID      int64          `json:"orderId" gorm:"uniqueIndex"`
	Address      string         `json:"address" gorm:"type:text"`
	Driver       string         `json:"driver" gorm:"type:varchar(100)"`
	Status       DeliveryStatus `json:"status" gorm:"type:varchar(20);index"`
	ScheduledFor time.Time      `json:"scheduledFor"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// DeliveryPatch enumerates the mutable fields of a Delivery. OrderID is
// fixed at creation; Status is set through the status endpoint only.
type DeliveryPatch struct {
	Address      *string         `json:"address"`
	Driver       *string         `json:"driver"`
	Status       *DeliveryStatus `json:"-"`
	ScheduledFor *time.Time      `json:"scheduledFor"`
}

// Apply merges the patch into d. Unset fields are preserved.
func (patch *DeliveryPatch) Apply(d *Delivery) {
	if patch.Address != nil {
		d.Address = *patch.Address
	}
	if patch.Driver != nil {
		d.Driver = *patch.Driver
	}
	if patch.Status != nil {
		d.Status = *patch.Status
	}
	if patch.ScheduledFor != nil {
		d.ScheduledFor = *patch.ScheduledFor
	}
}

// Counts holds per-entity record totals for the admin dashboard.
type Counts struct {
	Users      int64 `json:"users"`
	Products   int64 `json:"products"`
	Inventory  int64 `json:"inventory"`
	Customers  int64 `json:"customers"`
	Suppliers  int64 `json:"suppliers"`
	Orders     int64 `json:"orders"`
	Feedback   int64 `json:"feedback"`
	Deliveries int64 `json:"deliveries"`
}
