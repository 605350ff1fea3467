package types

import (
	"regexp"
	"strings"
	"time"
)

// Customer statuses. Every record created by the store is active.
const (
	StatusActive Status = "active"
)

// Status is the lifecycle status of a customer record.
type Status string

// Customer field names, in declared (and serialized) order.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldCompany   = "company"
	FieldCreatedAt = "createdAt"
	FieldStatus    = "status"
)

// CustomerFields lists the serialized field names in declared order.
var CustomerFields = []string{FieldName, FieldEmail, FieldPhone, FieldCompany, FieldCreatedAt, FieldStatus}

// emailPattern accepts a basic local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Customer is one customer's stored contact data.
type Customer struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"createdAt"`
	Status    Status    `json:"status"`
}

// Trimmed returns a copy of c with surrounding whitespace removed from the
// contact fields.
func (c Customer) Trimmed() Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Company = strings.TrimSpace(c.Company)
	return c
}

// Validate checks that name, email, phone and company are non-empty after
// trimming and that the email is well formed. Missing fields are reported
// before email shape, in declared field order. An empty Status is accepted
// since the store stamps it; any other value must be StatusActive.
func (c Customer) Validate() error {
	t := c.Trimmed()
	required := []struct {
		field string
		value string
	}{
		{FieldName, t.Name},
		{FieldEmail, t.Email},
		{FieldPhone, t.Phone},
		{FieldCompany, t.Company},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field, Err: ErrMissingField}
		}
	}
	if !IsValidEmail(t.Email) {
		return &ValidationError{Field: FieldEmail, Err: ErrInvalidEmail}
	}
	if c.Status != "" && c.Status != StatusActive {
		return &ValidationError{Field: FieldStatus, Err: ErrInvalidStatus}
	}
	return nil
}

// IsValidEmail reports whether email matches the local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Value returns the string value of a sortable field.
// Returns false for fields that are not sortable text.
func (c Customer) Value(field SortField) (string, bool) {
	switch field {
	case SortByName:
		return c.Name, true
	case SortByEmail:
		return c.Email, true
	case SortByPhone:
		return c.Phone, true
	case SortByCompany:
		return c.Company, true
	default:
		return "", false
	}
}
