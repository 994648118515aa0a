package database

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/arachchispices/spicestore/internal/common/errorx"
)

// Memory implements Store with process-local slices. It is the system of
// record for the process lifetime: nothing is persisted and a restart
// discards every record. Counters start at 1 and are never decremented, so
// a deleted ID is never handed out again. The mutex makes each
// scan+mutate sequence atomic with respect to concurrent requests.
type Memory struct {
	mu sync.RWMutex

	users      []*User
	products   []*Product
	inventory  []*InventoryItem
	customers  []*Customer
	suppliers  []*Supplier
	orders     []*Order
	feedback   []*Feedback
	deliveries []*Delivery

	nextUserID      int64
	nextProductID   int64
	nextInventoryID int64
	nextCustomerID  int64
	nextSupplierID  int64
	nextOrderID     int64
	nextFeedbackID  int64
	nextDeliveryID  int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextUserID:      1,
		nextProductID:   1,
		nextInventoryID: 1,
		nextCustomerID:  1,
		nextSupplierID:  1,
		nextOrderID:     1,
		nextFeedbackID:  1,
		nextDeliveryID:  1,
	}
}

// Init implements Store
func (m *Memory) Init(ctx context.Context) error { return nil }

// Close implements Store
func (m *Memory) Close() error { return nil }

// matchQuery reports whether any field contains query, case-insensitively.
// An empty query matches everything.
func matchQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// CreateUser appends a user, rejecting exact username or email duplicates.
func (m *Memory) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return errorx.ErrDuplicateUser
		}
	}

	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = time.Now()
	m.users = append(m.users, user)
	return nil
}

// GetUser retrieves a user by ID
func (m *Memory) GetUser(ctx context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.ErrUserNotFound
}

// GetUserByEmail retrieves a user by exact email match
func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.ErrUserNotFound
}

// GetUserByUsername retrieves a user by exact username match
func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.ErrUserNotFound
}

// ListUsers returns all users in registration order.
func (m *Memory) ListUsers(ctx context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// CreateProduct assigns the next ID and appends the product.
func (m *Memory) CreateProduct(ctx context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = m.nextProductID
	m.nextProductID++
	p.CreatedAt = time.Now()
	m.products = append(m.products, p)
	return nil
}

// GetProduct retrieves a product by ID
func (m *Memory) GetProduct(ctx context.Context, id int64) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// ListProducts returns products matching query over name/category, in
// insertion order.
func (m *Memory) ListProducts(ctx context.Context, query string) ([]*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Product, 0, len(m.products))
	for _, p := range m.products {
		if matchQuery(query, p.Name, p.Category) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UpdateProduct merges the patch over the stored product.
func (m *Memory) UpdateProduct(ctx context.Context, id int64, patch *ProductPatch) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ID == id {
			patch.Apply(p)
			cp := *p
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// DeleteProduct removes the product; its ID is never reused.
func (m *Memory) DeleteProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return errorx.ErrNotFound
}

// CreateInventoryItem assigns the next ID and appends the item.
func (m *Memory) CreateInventoryItem(ctx context.Context, item *InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = m.nextInventoryID
	m.nextInventoryID++
	item.CreatedAt = time.Now()
	m.inventory = append(m.inventory, item)
	return nil
}

// GetInventoryItem retrieves an inventory item by ID
func (m *Memory) GetInventoryItem(ctx context.Context, id int64) (*InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, item := range m.inventory {
		if item.ID == id {
			cp := *item
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// ListInventoryItems returns items matching query over
// name/category/location, in insertion order.
func (m *Memory) ListInventoryItems(ctx context.Context, query string) ([]*InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*InventoryItem, 0, len(m.inventory))
	for _, item := range m.inventory {
		if matchQuery(query, item.Name, item.Category, item.Location) {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UpdateInventoryItem merges the patch over the stored item.
func (m *Memory) UpdateInventoryItem(ctx context.Context, id int64, patch *InventoryPatch) (*InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.inventory {
		if item.ID == id {
			patch.Apply(item)
			cp := *item
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// DeleteInventoryItem removes the item; its ID is never reused.
func (m *Memory) DeleteInventoryItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, item := range m.inventory {
		if item.ID == id {
			m.inventory = append(m.inventory[:i], m.inventory[i+1:]...)
			return nil
		}
	}
	return errorx.ErrNotFound
}

// CreateCustomer assigns the next ID and appends the customer.
func (m *Memory) CreateCustomer(ctx context.Context, c *Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.nextCustomerID
	m.nextCustomerID++
	c.CreatedAt = time.Now()
	m.customers = append(m.customers, c)
	return nil
}

// GetCustomer retrieves a customer by ID
func (m *Memory) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.customers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// ListCustomers returns customers matching query over name/email, in
// insertion order.
func (m *Memory) ListCustomers(ctx context.Context, query string) ([]*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Customer, 0, len(m.customers))
	for _, c := range m.customers {
		if matchQuery(query, c.Name, c.Email) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UpdateCustomer merges the patch over the stored customer.
func (m *Memory) UpdateCustomer(ctx context.Context, id int64, patch *CustomerPatch) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.customers {
		if c.ID == id {
			patch.Apply(c)
			cp := *c
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// DeleteCustomer removes the customer; its ID is never reused.
func (m *Memory) DeleteCustomer(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.customers {
		if c.ID == id {
			m.customers = append(m.customers[:i], m.customers[i+1:]...)
			return nil
		}
	}
	return errorx.ErrNotFound
}

// CreateSupplier assigns the next ID and appends the supplier.
func (m *Memory) CreateSupplier(ctx context.Context, s *Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.ID = m.nextSupplierID
	m.nextSupplierID++
	s.CreatedAt = time.Now()
	m.suppliers = append(m.suppliers, s)
	return nil
}

// GetSupplier retrieves a supplier by ID
func (m *Memory) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.suppliers {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// ListSuppliers returns suppliers matching query over name/company/email,
// in insertion order.
func (m *Memory) ListSuppliers(ctx context.Context, query string) ([]*Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		if matchQuery(query, s.Name, s.Company, s.Email) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UpdateSupplier merges the patch over the stored supplier.
func (m *Memory) UpdateSupplier(ctx context.Context, id int64, patch *SupplierPatch) (*Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.suppliers {
		if s.ID == id {
			patch.Apply(s)
			cp := *s
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// DeleteSupplier removes the supplier; its ID is never reused.
func (m *Memory) DeleteSupplier(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.suppliers {
		if s.ID == id {
			m.suppliers = append(m.suppliers[:i], m.suppliers[i+1:]...)
			return nil
		}
	}
	return errorx.ErrNotFound
}

// CreateOrder assigns the next ID and appends the order.
func (m *Memory) CreateOrder(ctx context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o.ID = m.nextOrderID
	m.nextOrderID++
	o.CreatedAt = time.Now()
	m.orders = append(m.orders, o)
	return nil
}

// GetOrder retrieves an order by ID
func (m *Memory) GetOrder(ctx context.Context, id int64) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, o := range m.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// ListOrders returns all orders in insertion order.
func (m *Memory) ListOrders(ctx context.Context) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Order, 0, len(m.orders))
	for _, o := range m.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

// UpdateOrder merges the patch over the stored order.
func (m *Memory) UpdateOrder(ctx context.Context, id int64, patch *OrderPatch) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.ID == id {
			patch.Apply(o)
			cp := *o
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// DeleteOrder removes the order; its ID is never reused.
func (m *Memory) DeleteOrder(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, o := range m.orders {
		if o.ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return errorx.ErrNotFound
}

// CreateFeedback assigns the next ID and appends the feedback entry.
func (m *Memory) CreateFeedback(ctx context.Context, f *Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f.ID = m.nextFeedbackID
	m.nextFeedbackID++
	f.CreatedAt = time.Now()
	m.feedback = append(m.feedback, f)
	return nil
}

// GetFeedback retrieves a feedback entry by ID
func (m *Memory) GetFeedback(ctx context.Context, id int64) (*Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.feedback {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// ListFeedback returns all feedback entries, newest first.
func (m *Memory) ListFeedback(ctx context.Context) ([]*Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Feedback, 0, len(m.feedback))
	for i := len(m.feedback) - 1; i >= 0; i-- {
		cp := *m.feedback[i]
		out = append(out, &cp)
	}
	return out, nil
}

// UpdateFeedback merges the patch over the stored feedback entry.
func (m *Memory) UpdateFeedback(ctx context.Context, id int64, patch *FeedbackPatch) (*Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.feedback {
		if f.ID == id {
			patch.Apply(f)
			cp := *f
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// DeleteFeedback removes the feedback entry; its ID is never reused.
func (m *Memory) DeleteFeedback(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, f := range m.feedback {
		if f.ID == id {
			m.feedback = append(m.feedback[:i], m.feedback[i+1:]...)
			return nil
		}
	}
	return errorx.ErrNotFound
}

// CreateDelivery assigns the next ID and appends the delivery, rejecting a
// second delivery for the same order.
func (m *Memory) CreateDelivery(ctx context.Context, d *Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.deliveries {
		if existing.OrderID == d.OrderID {
			return errorx.ErrDeliveryExists
		}
	}

	d.ID = m.nextDeliveryID
	m.nextDeliveryID++
	d.CreatedAt = time.Now()
	m.deliveries = append(m.deliveries, d)
	return nil
}

// GetDelivery retrieves a delivery by ID
func (m *Memory) GetDelivery(ctx context.Context, id int64) (*Delivery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, d := range m.deliveries {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// ListDeliveries returns all deliveries, newest first.
func (m *Memory) ListDeliveries(ctx context.Context) ([]*Delivery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Delivery, 0, len(m.deliveries))
	for i := len(m.deliveries) - 1; i >= 0; i-- {
		cp := *m.deliveries[i]
		out = append(out, &cp)
	}
	return out, nil
}

// UpdateDelivery merges the patch over the stored delivery.
func (m *Memory) UpdateDelivery(ctx context.Context, id int64, patch *DeliveryPatch) (*Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range m.deliveries {
		if d.ID == id {
			patch.Apply(d)
			cp := *d
			return &cp, nil
		}
	}
	return nil, errorx.ErrNotFound
}

// DeleteDelivery removes the delivery; its ID is never reused.
func (m *Memory) DeleteDelivery(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, d := range m.deliveries {
		if d.ID == id {
			m.deliveries = append(m.deliveries[:i], m.deliveries[i+1:]...)
			return nil
		}
	}
	return errorx.ErrNotFound
}

// Counts returns per-entity totals.
func (m *Memory) Counts(ctx context.Context) (*Counts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &Counts{
		Users:      int64(len(m.users)),
		Products:   int64(len(m.products)),
		Inventory:  int64(len(m.inventory)),
		Customers:  int64(len(m.customers)),
		Suppliers:  int64(len(m.suppliers)),
		Orders:     int64(len(m.orders)),
		Feedback:   int64(len(m.feedback)),
		Deliveries: int64(len(m.deliveries)),
	}, nil
}
