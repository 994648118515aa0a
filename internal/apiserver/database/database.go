package database

import (
	"context"
)

// Store defines the data access contract shared by the in-memory and SQL
// implementations. List methods taking a query perform a case-insensitive
// substring match over a fixed set of string fields and return records in
// insertion order; feedback and deliveries are returned newest first.
// Update methods merge a typed patch over the existing record and return
// the merged record. IDs are monotonic per entity and never reused, even
// after deletion.
type Store interface {
	// Init prepares the backing store (migrations for SQL backends).
	Init(ctx context.Context) error
	// Close releases the underlying connection, if any.
	Close() error

	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)

	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, query string) ([]*Product, error)
	UpdateProduct(ctx context.Context, id int64, patch *ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateInventoryItem(ctx context.Context, item *InventoryItem) error
	GetInventoryItem(ctx context.Context, id int64) (*InventoryItem, error)
	ListInventoryItems(ctx context.Context, query string) ([]*InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id int64, patch *InventoryPatch) (*InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int64) error

	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	ListCustomers(ctx context.Context, query string) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, id int64, patch *CustomerPatch) (*Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id int64) (*Supplier, error)
	ListSuppliers(ctx context.Context, query string) ([]*Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, patch *SupplierPatch) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error

	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	UpdateOrder(ctx context.Context, id int64, patch *OrderPatch) (*Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	CreateFeedback(ctx context.Context, f *Feedback) error
	GetFeedback(ctx context.Context, id int64) (*Feedback, error)
	ListFeedback(ctx context.Context) ([]*Feedback, error)
	UpdateFeedback(ctx context.Context, id int64, patch *FeedbackPatch) (*Feedback, error)
	DeleteFeedback(ctx context.Context, id int64) error

	CreateDelivery(ctx context.Context, d *Delivery) error
	GetDelivery(ctx context.Context, id int64) (*Delivery, error)
	ListDeliveries(ctx context.Context) ([]*Delivery, error)
	UpdateDelivery(ctx context.Context, id int64, patch *DeliveryPatch) (*Delivery, error)
	DeleteDelivery(ctx context.Context, id int64) error

	// Counts returns per-entity totals for the admin dashboard.
	Counts(ctx context.Context) (*Counts, error)
}
