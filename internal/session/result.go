package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Level is a notice severity.
type Level string

// Notice levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notice is the short message shown to the user after a command.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notice messages.
const (
	MsgSaved          = "Customer saved successfully!"
	MsgMissingFields  = "Please fill in all fields"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgNotFound       = "Customer not found"
	MsgSelectToDelete = "Please select customers to delete"
	MsgImported       = "Data imported successfully!"
	MsgImportFailed   = "Error importing file. Please check the format."
	MsgExported       = "Data exported successfully!"
	MsgRefreshed      = "Data refreshed!"
	MsgEmpty          = "No customers found. Add your first customer!"
	MsgNoMatches      = "No customers match your search criteria."
	MsgInvalidSort    = "Please choose a valid sort option"
	MsgEditCancelled  = "Edit cancelled"
	MsgInvalidStatus  = "Status must be active"
)

// ErrNoSelection is returned by BulkDelete when nothing is selected.
var ErrNoSelection = errors.New("no customers selected")

// Result is the outcome of one Dispatch. Rows is the current view after the
// command ran. Record carries the viewed, edited or deleted customer, and
// Export the rendered bytes with FileName as their suggested name.
type Result struct {
	ID       uuid.UUID       `json:"id"`
	Rows     []types.Entry   `json:"rows"`
	Record   *types.Customer `json:"record,omitempty"`
	Export   []byte          `json:"-"`
	FileName string          `json:"file_name,omitempty"`
	Removed  int             `json:"removed,omitempty"`
	Theme    types.Theme     `json:"theme,omitempty"`
	Err      error           `json:"-"`
	Notice   Notice          `json:"notice"`
}

func success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }

func deletedOne(name string) string { return fmt.Sprintf("Customer %s deleted successfully", name) }

func deletedMany(n int) string { return fmt.Sprintf("Deleted %d customers successfully", n) }

func themeNotice(t types.Theme) Notice {
	return Notice{Level: LevelInfo, Message: fmt.Sprintf("Switched to %s theme", t)}
}

func editing(name string) string { return "Now editing customer: " + name }

// noticeFor maps an error to the message the user sees.
func noticeFor(err error) Notice {
	var importErr *types.ImportError
	switch {
	case errors.Is(err, types.ErrMissingField):
		return Notice{Level: LevelError, Message: MsgMissingFields}
	case errors.Is(err, types.ErrInvalidEmail):
		return Notice{Level: LevelError, Message: MsgInvalidEmail}
	case errors.Is(err, types.ErrIndexOutOfRange):
		return Notice{Level: LevelError, Message: MsgNotFound}
	case errors.Is(err, types.ErrInvalidStatus):
		return Notice{Level: LevelError, Message: MsgInvalidStatus}
	case errors.Is(err, types.ErrInvalidSortField), errors.Is(err, types.ErrInvalidDirection):
		return Notice{Level: LevelError, Message: MsgInvalidSort}
	case errors.As(err, &importErr):
		return Notice{Level: LevelError, Message: MsgImportFailed}
	case errors.Is(err, types.ErrInvalidTheme):
		return Notice{Level: LevelError, Message: "Theme must be light or dark"}
	case errors.Is(err, ErrNoSelection):
		return Notice{Level: LevelWarning, Message: MsgSelectToDelete}
	default:
		return Notice{Level: LevelError, Message: err.Error()}
	}
}
