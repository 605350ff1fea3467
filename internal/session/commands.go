package session

import "github.com/mesh-intelligence/rolodex/pkg/types"

// Command is one user action. Dispatch switches on the concrete type.
type Command interface {
	Name() string
}

// Add appends a new customer.
type Add struct{ Customer types.Customer }

// Update replaces the customer at Index.
type Update struct {
	Index    int
	Customer types.Customer
}

// Edit starts editing the customer at Index; the next Save updates it.
type Edit struct{ Index int }

// CancelEdit leaves edit mode without saving.
type CancelEdit struct{}

// Save adds Customer, or updates the record being edited.
type Save struct{ Customer types.Customer }

// Delete removes the customer at Index.
type Delete struct{ Index int }

// View returns the customer at Index.
type View struct{ Index int }

// Select checks or unchecks the row at Index.
type Select struct {
	Index int
	On    bool
}

// SelectAll checks or unchecks every row in the current view.
type SelectAll struct{ On bool }

// ClearSelection unchecks everything.
type ClearSelection struct{}

// BulkDelete removes every selected row.
type BulkDelete struct{}

// Search sets the view's search term.
type Search struct{ Term string }

// Sort sets the view's sort order. An empty Field clears sorting.
type Sort struct {
	Field     types.SortField
	Direction types.Direction
}

// Refresh reloads the store from its backend.
type Refresh struct{}

// Export renders the store in Format (json by default).
type Export struct{ Format string }

// Import replaces the store with a JSON document, given inline as Data or
// read from Path.
type Import struct {
	Data []byte
	Path string
}

// ToggleTheme switches between light and dark.
type ToggleTheme struct{}

// SetTheme stores Theme.
type SetTheme struct{ Theme types.Theme }

func (Add) Name() string            { return "add" }
func (Update) Name() string         { return "update" }
func (Edit) Name() string           { return "edit" }
func (CancelEdit) Name() string     { return "cancel_edit" }
func (Save) Name() string           { return "save" }
func (Delete) Name() string         { return "delete" }
func (View) Name() string           { return "view" }
func (Select) Name() string         { return "select" }
func (SelectAll) Name() string      { return "select_all" }
func (ClearSelection) Name() string { return "clear_selection" }
func (BulkDelete) Name() string     { return "bulk_delete" }
func (Search) Name() string         { return "search" }
func (Sort) Name() string           { return "sort" }
func (Refresh) Name() string        { return "refresh" }
func (Export) Name() string         { return "export" }
func (Import) Name() string         { return "import" }
func (ToggleTheme) Name() string    { return "toggle_theme" }
func (SetTheme) Name() string       { return "set_theme" }
