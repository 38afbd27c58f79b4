package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Customer is the ORM entity for the customers table
type Customer struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	FirstName      string          `gorm:"size:100;not null"`
	LastName       string          `gorm:"size:100;not null"`
	Address        string          `gorm:"size:150;not null"`
	Email          string          `gorm:"size:254;not null"`
	ContactNumbers *ContactNumbers `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by gorm
func (Customer) TableName() string {
	return "customers"
}

// ContactNumbers is the ORM entity for the contact_numbers table.
// Each customer owns exactly one row.
type ContactNumbers struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	HomeNumber   *string `gorm:"size:30"`
	WorkNumber   *string `gorm:"size:30"`
	MobileNumber *string `gorm:"size:30"`
	CustomerID   int64   `gorm:"uniqueIndex;not null"`
}

// TableName overrides the table name used by gorm
func (ContactNumbers) TableName() string {
	return "contact_numbers"
}

// CustomerRecord is the flattened customer view exchanged with the API and
// returned by every storage backend.
type CustomerRecord struct {
	ID           int64   `json:"id" db:"id"`
	FirstName    string  `json:"firstName" db:"first_name" validate:"notblank,min=2,max=100,personname"`
	LastName     string  `json:"lastName" db:"last_name" validate:"notblank,min=2,max=100,personname"`
	Address      string  `json:"address" db:"address" validate:"notblank,min=3,max=150"`
	Email        string  `json:"email" db:"email" validate:"required,email,max=254"`
	HomeNumber   *string `json:"homeNumber" db:"home_number" validate:"omitempty,max=30"`
	WorkNumber   *string `json:"workNumber" db:"work_number" validate:"omitempty,max=30"`
	MobileNumber *string `json:"mobileNumber" db:"mobile_number" validate:"omitempty,max=30"`
}

// Normalize turns blank phone numbers into absent ones so every backend
// stores NULL for a missing number, and stores names in NFC form.
func (r *CustomerRecord) Normalize() {
	r.FirstName = norm.NFC.String(r.FirstName)
	r.LastName = norm.NFC.String(r.LastName)
	r.HomeNumber = normalizePhone(r.HomeNumber)
	r.WorkNumber = normalizePhone(r.WorkNumber)
	r.MobileNumber = normalizePhone(r.MobileNumber)
}

// HasContactNumber reports whether at least one phone number is present
func (r *CustomerRecord) HasContactNumber() bool {
	return isPresent(r.HomeNumber) || isPresent(r.WorkNumber) || isPresent(r.MobileNumber)
}

// ToEntity converts the record into its ORM representation
func (r *CustomerRecord) ToEntity() *Customer {
	return &Customer{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Address:   r.Address,
		Email:     r.Email,
		ContactNumbers: &ContactNumbers{
			HomeNumber:   r.HomeNumber,
			WorkNumber:   r.WorkNumber,
			MobileNumber: r.MobileNumber,
			CustomerID:   r.ID,
		},
	}
}

// NewCustomerRecord flattens an ORM customer and its contact numbers
func NewCustomerRecord(c *Customer) *CustomerRecord {
	record := &CustomerRecord{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Address:   c.Address,
		Email:     c.Email,
	}

	if c.ContactNumbers != nil {
		record.HomeNumber = c.ContactNumbers.HomeNumber
		record.WorkNumber = c.ContactNumbers.WorkNumber
		record.MobileNumber = c.ContactNumbers.MobileNumber
	}

	return record
}

func normalizePhone(p *string) *string {
	if !isPresent(p) {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	return &trimmed
}

func isPresent(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}
