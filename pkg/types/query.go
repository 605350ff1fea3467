package types

import "strings"

// SortField names a customer field the store can order by.
type SortField string

// Sortable fields.
const (
	SortByName    SortField = FieldName
	SortByEmail   SortField = FieldEmail
	SortByPhone   SortField = FieldPhone
	SortByCompany SortField = FieldCompany
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

var validSortFields = map[SortField]bool{
	SortByName:    true,
	SortByEmail:   true,
	SortByPhone:   true,
	SortByCompany: true,
}

// Valid reports whether f is a sortable field.
func (f SortField) Valid() bool { return validSortFields[f] }

// Valid reports whether d is asc or desc.
func (d Direction) Valid() bool { return d == Ascending || d == Descending }

// ParseSort splits a "field-direction" value such as "name-asc" into its
// parts. A bare field sorts ascending.
func ParseSort(s string) (SortField, Direction, error) {
	field, dir, found := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")
	if !found {
		dir = string(Ascending)
	}
	f, d := SortField(field), Direction(dir)
	if !f.Valid() {
		return "", "", &ValidationError{Field: "sort", Err: ErrInvalidSortField}
	}
	if !d.Valid() {
		return "", "", &ValidationError{Field: "sort", Err: ErrInvalidDirection}
	}
	return f, d, nil
}

// Filter describes a view over the store: a search term and an optional
// ordering. An empty SortField keeps insertion order.
type Filter struct {
	Term      string
	SortField SortField
	Direction Direction
}

// Entry is one row of a view: the record and its index in the backing
// sequence, which callers pass back to Update, Delete and BulkDelete.
type Entry struct {
	Index    int      `json:"index"`
	Customer Customer `json:"customer"`
}
