package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/arachchispices/spicestore/internal/common/errorx"
)

// SQL implements Store on top of a gorm connection. The dialect-specific
// constructors live in sqlite.go, mysql.go and postgres.go.
type SQL struct {
	db *gorm.DB
}

// Init runs the schema migrations.
func (s *SQL) Init(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&User{},
		&Product{},
		&InventoryItem{},
		&Customer{},
		&Supplier{},
		&Order{},
		&Feedback{},
		&Delivery{},
	)
}

// Close closes the underlying connection.
func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// likePattern builds the case-insensitive substring pattern for a query.
func likePattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}

func notFound(err error, sentinel *errorx.APIError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// CreateUser inserts a user, rejecting exact username or email duplicates.
func (s *SQL) CreateUser(ctx context.Context, user *User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorx.ErrDuplicateUser
		}
		return tx.Create(user).Error
	})
}

// GetUser retrieves a user by ID
func (s *SQL) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, errorx.ErrUserNotFound)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by exact email match
func (s *SQL) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, errorx.ErrUserNotFound)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by exact username match
func (s *SQL) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, errorx.ErrUserNotFound)
	}
	return &user, nil
}

// ListUsers returns all users in registration order.
func (s *SQL) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

// CreateProduct inserts a product.
func (s *SQL) CreateProduct(ctx context.Context, p *Product) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// GetProduct retrieves a product by ID
func (s *SQL) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, errorx.ErrNotFound)
	}
	return &p, nil
}

// ListProducts returns products matching query over name/category.
func (s *SQL) ListProducts(ctx context.Context, query string) ([]*Product, error) {
	var products []*Product
	tx := s.db.WithContext(ctx).Order("id asc")
	if query != "" {
		pat := likePattern(query)
		tx = tx.Where("lower(name) LIKE ? OR lower(category) LIKE ?", pat, pat)
	}
	err := tx.Find(&products).Error
	return products, err
}

// UpdateProduct merges the patch over the stored product.
func (s *SQL) UpdateProduct(ctx context.Context, id int64, patch *ProductPatch) (*Product, error) {
	var p Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return notFound(err, errorx.ErrNotFound)
		}
		patch.Apply(&p)
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes the product.
func (s *SQL) DeleteProduct(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// CreateInventoryItem inserts an inventory item.
func (s *SQL) CreateInventoryItem(ctx context.Context, item *InventoryItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// GetInventoryItem retrieves an inventory item by ID
func (s *SQL) GetInventoryItem(ctx context.Context, id int64) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, errorx.ErrNotFound)
	}
	return &item, nil
}

// ListInventoryItems returns items matching query over name/category/location.
func (s *SQL) ListInventoryItems(ctx context.Context, query string) ([]*InventoryItem, error) {
	var items []*InventoryItem
	tx := s.db.WithContext(ctx).Order("id asc")
	if query != "" {
		pat := likePattern(query)
		tx = tx.Where("lower(name) LIKE ? OR lower(category) LIKE ? OR lower(location) LIKE ?", pat, pat, pat)
	}
	err := tx.Find(&items).Error
	return items, err
}

// UpdateInventoryItem merges the patch over the stored item.
func (s *SQL) UpdateInventoryItem(ctx context.Context, id int64, patch *InventoryPatch) (*InventoryItem, error) {
	var item InventoryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return notFound(err, errorx.ErrNotFound)
		}
		patch.Apply(&item)
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteInventoryItem removes the item.
func (s *SQL) DeleteInventoryItem(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&InventoryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// CreateCustomer inserts a customer.
func (s *SQL) CreateCustomer(ctx context.Context, c *Customer) error {
	return s.db.WithContext(ctx).Create(c).Error
}

// GetCustomer retrieves a customer by ID
func (s *SQL) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, errorx.ErrNotFound)
	}
	return &c, nil
}

// ListCustomers returns customers matching query over name/email.
func (s *SQL) ListCustomers(ctx context.Context, query string) ([]*Customer, error) {
	var customers []*Customer
	tx := s.db.WithContext(ctx).Order("id asc")
	if query != "" {
		pat := likePattern(query)
		tx = tx.Where("lower(name) LIKE ? OR lower(email) LIKE ?", pat, pat)
	}
	err := tx.Find(&customers).Error
	return customers, err
}

// UpdateCustomer merges the patch over the stored customer.
func (s *SQL) UpdateCustomer(ctx context.Context, id int64, patch *CustomerPatch) (*Customer, error) {
	var c Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return notFound(err, errorx.ErrNotFound)
		}
		patch.Apply(&c)
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCustomer removes the customer.
func (s *SQL) DeleteCustomer(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// CreateSupplier inserts a supplier.
func (s *SQL) CreateSupplier(ctx context.Context, sup *Supplier) error {
	return s.db.WithContext(ctx).Create(sup).Error
}

// GetSupplier retrieves a supplier by ID
func (s *SQL) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	var sup Supplier
	if err := s.db.WithContext(ctx).First(&sup, id).Error; err != nil {
		return nil, notFound(err, errorx.ErrNotFound)
	}
	return &sup, nil
}

// ListSuppliers returns suppliers matching query over name/company/email.
func (s *SQL) ListSuppliers(ctx context.Context, query string) ([]*Supplier, error) {
	var suppliers []*Supplier
	tx := s.db.WithContext(ctx).Order("id asc")
	if query != "" {
		pat := likePattern(query)
		tx = tx.Where("lower(name) LIKE ? OR lower(company) LIKE ? OR lower(email) LIKE ?", pat, pat, pat)
	}
	err := tx.Find(&suppliers).Error
	return suppliers, err
}

// UpdateSupplier merges the patch over the stored supplier.
func (s *SQL) UpdateSupplier(ctx context.Context, id int64, patch *SupplierPatch) (*Supplier, error) {
	var sup Supplier
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sup, id).Error; err != nil {
			return notFound(err, errorx.ErrNotFound)
		}
		patch.Apply(&sup)
		return tx.Save(&sup).Error
	})
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

// DeleteSupplier removes the supplier.
func (s *SQL) DeleteSupplier(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&Supplier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// CreateOrder inserts an order.
func (s *SQL) CreateOrder(ctx context.Context, o *Order) error {
	return s.db.WithContext(ctx).Create(o).Error
}

// GetOrder retrieves an order by ID
func (s *SQL) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var o Order
	if err := s.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, notFound(err, errorx.ErrNotFound)
	}
	return &o, nil
}

// ListOrders returns all orders in insertion order.
func (s *SQL) ListOrders(ctx context.Context) ([]*Order, error) {
	var orders []*Order
	err := s.db.WithContext(ctx).Order("id asc").Find(&orders).Error
	return orders, err
}

// UpdateOrder merges the patch over the stored order.
func (s *SQL) UpdateOrder(ctx context.Context, id int64, patch *OrderPatch) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&o, id).Error; err != nil {
			return notFound(err, errorx.ErrNotFound)
		}
		patch.Apply(&o)
		return tx.Save(&o).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteOrder removes the order.
func (s *SQL) DeleteOrder(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// CreateFeedback inserts a feedback entry.
func (s *SQL) CreateFeedback(ctx context.Context, f *Feedback) error {
	return s.db.WithContext(ctx).Create(f).Error
}

// GetFeedback retrieves a feedback entry by ID
func (s *SQL) GetFeedback(ctx context.Context, id int64) (*Feedback, error) {
	var f Feedback
	if err := s.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, notFound(err, errorx.ErrNotFound)
	}
	return &f, nil
}

// ListFeedback returns all feedback entries, newest first.
func (s *SQL) ListFeedback(ctx context.Context) ([]*Feedback, error) {
	var feedback []*Feedback
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&feedback).Error
	return feedback, err
}

// UpdateFeedback merges the patch over the stored feedback entry.
func (s *SQL) UpdateFeedback(ctx context.Context, id int64, patch *FeedbackPatch) (*Feedback, error) {
	var f Feedback
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&f, id).Error; err != nil {
			return notFound(err, errorx.ErrNotFound)
		}
		patch.Apply(&f)
		return tx.Save(&f).Error
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteFeedback removes the feedback entry.
func (s *SQL) DeleteFeedback(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&Feedback{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// CreateDelivery inserts a delivery, rejecting a second delivery for the
// same order.
func (s *SQL) CreateDelivery(ctx context.Context, d *Delivery) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Delivery{}).
			Where("order_id = ?", d.OrderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorx.ErrDeliveryExists
		}
		return tx.Create(d).Error
	})
}

// GetDelivery retrieves a delivery by ID
func (s *SQL) GetDelivery(ctx context.Context, id int64) (*Delivery, error) {
	var d Delivery
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, notFound(err, errorx.ErrNotFound)
	}
	return &d, nil
}

// ListDeliveries returns all deliveries, newest first.
func (s *SQL) ListDeliveries(ctx context.Context) ([]*Delivery, error) {
	var deliveries []*Delivery
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&deliveries).Error
	return deliveries, err
}

// UpdateDelivery merges the patch over the stored delivery.
func (s *SQL) UpdateDelivery(ctx context.Context, id int64, patch *DeliveryPatch) (*Delivery, error) {
	var d Delivery
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, id).Error; err != nil {
			return notFound(err, errorx.ErrNotFound)
		}
		patch.Apply(&d)
		return tx.Save(&d).Error
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDelivery removes the delivery.
func (s *SQL) DeleteDelivery(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&Delivery{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// Counts returns per-entity totals.
func (s *SQL) Counts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}
	for _, c := range []struct {
		model any
		dst   *int64
	}{
		{&User{}, &counts.Users},
		{&Product{}, &counts.Products},
		{&InventoryItem{}, &counts.Inventory},
		{&Customer{}, &counts.Customers},
		{&Supplier{}, &counts.Suppliers},
		{&Order{}, &counts.Orders},
		{&Feedback{}, &counts.Feedback},
		{&Delivery{}, &counts.Deliveries},
	} {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return counts, nil
}
