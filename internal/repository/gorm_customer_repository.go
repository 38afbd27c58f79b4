package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// gormCustomerRepository implements CustomerRepository with gorm entities
type gormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a customer repository backed by gorm
func NewGormCustomerRepository(db *gorm.DB) CustomerRepository {
	return &gormCustomerRepository{db: db}
}

// List retrieves every customer with its contact numbers, ordered by id
func (r *gormCustomerRepository) List(ctx context.Context) ([]*models.CustomerRecord, error) {
	var customers []models.Customer

	err := r.db.WithContext(ctx).
		Preload("ContactNumbers").
		Order("id").
		Find(&customers).Error
	if err != nil {
		return nil, classifyError("list customers", err)
	}

	records := make([]*models.CustomerRecord, 0, len(customers))
	for i := range customers {
		records = append(records, models.NewCustomerRecord(&customers[i]))
	}

	return records, nil
}

// GetByID retrieves a customer by ID
func (r *gormCustomerRepository) GetByID(ctx context.Context, id int64) (*models.CustomerRecord, error) {
	var customer models.Customer

	err := r.db.WithContext(ctx).
		Preload("ContactNumbers").
		First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, classifyError("get customer", err)
	}

	return models.NewCustomerRecord(&customer), nil
}

// Create inserts the customer and its contact numbers in one transaction
func (r *gormCustomerRepository) Create(ctx context.Context, record *models.CustomerRecord) (*models.CustomerRecord, error) {
	customer := record.ToEntity()
	customer.ID = 0
	contacts := customer.ContactNumbers

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(customer).Error; err != nil {
			return err
		}

		contacts.CustomerID = customer.ID
		return tx.Create(contacts).Error
	})
	if err != nil {
		return nil, classifyError("create customer", err)
	}

	return models.NewCustomerRecord(customer), nil
}

// Update replaces all mutable fields of the customer and its contact numbers
func (r *gormCustomerRepository) Update(ctx context.Context, id int64, record *models.CustomerRecord) (*models.CustomerRecord, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Customer
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			return err
		}

		err := tx.Model(&existing).Updates(map[string]interface{}{
			"first_name": record.FirstName,
			"last_name":  record.LastName,
			"address":    record.Address,
			"email":      record.Email,
		}).Error
		if err != nil {
			return err
		}

		var contacts models.ContactNumbers
		err = tx.Where("customer_id = ?", id).First(&contacts).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Rows left without contact numbers are repaired in place
			return tx.Create(&models.ContactNumbers{
				HomeNumber:   record.HomeNumber,
				WorkNumber:   record.WorkNumber,
				MobileNumber: record.MobileNumber,
				CustomerID:   id,
			}).Error
		case err != nil:
			return err
		}

		return tx.Model(&contacts).Updates(map[string]interface{}{
			"home_number":   record.HomeNumber,
			"work_number":   record.WorkNumber,
			"mobile_number": record.MobileNumber,
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, classifyError("update customer", err)
	}

	updated := *record
	updated.ID = id
	return &updated, nil
}

// Delete removes the contact numbers and then the customer
func (r *gormCustomerRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Customer
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			return err
		}

		if err := tx.Where("customer_id = ?", id).Delete(&models.ContactNumbers{}).Error; err != nil {
			return err
		}

		return tx.Delete(&existing).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(id)
	}
	if err != nil {
		return classifyError("delete customer", err)
	}

	return nil
}
