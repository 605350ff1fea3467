package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// isoMillis is the createdAt wire layout: RFC 3339 in UTC with milliseconds.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// customerJSON is the persisted and exported record layout. Field order is
// the serialized order.
type customerJSON struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	CreatedAt string `json:"createdAt"`
	Status    string `json:"status"`
}

func toJSON(c types.Customer) customerJSON {
	var createdAt string
	if !c.CreatedAt.IsZero() {
		createdAt = c.CreatedAt.UTC().Format(isoMillis)
	}
	return customerJSON{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		CreatedAt: createdAt,
		Status:    string(c.Status),
	}
}

// fromJSON maps a decoded record. Any status other than active, including a
// missing one, is read as active.
func fromJSON(j customerJSON) (types.Customer, error) {
	c := types.Customer{
		Name:    j.Name,
		Email:   j.Email,
		Phone:   j.Phone,
		Company: j.Company,
		Status:  types.StatusActive,
	}
	if j.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, j.CreatedAt)
		if err != nil {
			return types.Customer{}, fmt.Errorf("parsing createdAt: %w", err)
		}
		c.CreatedAt = t.UTC()
	}
	return c, nil
}

// encodeCustomers renders records as a JSON array. Indented output uses two
// spaces and ends with a newline; compact output is a single line.
// An empty sequence encodes as [] rather than null.
func encodeCustomers(records []types.Customer, indent bool) ([]byte, error) {
	out := make([]customerJSON, len(records))
	for i, c := range records {
		out[i] = toJSON(c)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	if !indent {
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
	return buf.Bytes(), nil
}

// decodeCustomers parses a JSON array of records. Anything that is not valid
// JSON, or an array element that is not a record object, is
// ErrMalformedDocument; a valid non-array top level is ErrNotAnArray.
func decodeCustomers(data []byte) ([]types.Customer, error) {
	if !json.Valid(data) {
		var probe any
		return nil, &types.ImportError{Reason: types.ErrMalformedDocument, Cause: json.Unmarshal(data, &probe)}
	}
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] != '[' {
		return nil, &types.ImportError{Reason: types.ErrNotAnArray}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &types.ImportError{Reason: types.ErrMalformedDocument, Cause: err}
	}

	records := make([]types.Customer, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, &types.ImportError{
				Reason: types.ErrMalformedDocument,
				Cause:  fmt.Errorf("element %d is not an object", i),
			}
		}
		var j customerJSON
		if err := json.Unmarshal(elem, &j); err != nil {
			return nil, &types.ImportError{Reason: types.ErrMalformedDocument, Cause: fmt.Errorf("element %d: %w", i, err)}
		}
		c, err := fromJSON(j)
		if err != nil {
			return nil, &types.ImportError{Reason: types.ErrMalformedDocument, Cause: fmt.Errorf("element %d: %w", i, err)}
		}
		records = append(records, c)
	}
	return records, nil
}

// ExportSnapshot returns every record as a pretty-printed JSON array in
// declared field order.
func (s *Store) ExportSnapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return encodeCustomers(s.records, true)
}

// ExportCSV returns every record as CSV with a header row, columns in
// declared field order.
func (s *Store) ExportCSV() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(types.CustomerFields); err != nil {
		return nil, err
	}
	for _, c := range s.records {
		j := toJSON(c)
		if err := w.Write([]string{j.Name, j.Email, j.Phone, j.Company, j.CreatedAt, j.Status}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export renders the store in the named format.
func (s *Store) Export(format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return s.ExportSnapshot()
	case FormatCSV:
		return s.ExportCSV()
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// ExportFileName returns the download name for an export taken at t,
// e.g. crm-customers-2024-03-01.json.
func ExportFileName(t time.Time, format string) string {
	if format == "" {
		format = FormatJSON
	}
	return fmt.Sprintf("crm-customers-%s.%s", t.UTC().Format(time.DateOnly), format)
}

// ImportSnapshot replaces the whole sequence with the records in data. A
// rejected document leaves the store untouched. Record fields are not
// validated, except that every imported record comes in as active whatever
// status the document carries.
func (s *Store) ImportSnapshot(ctx context.Context, data []byte) (err error) {
	defer func() { s.observer.ObserveOperation(OpImport, err) }()

	records, err := decodeCustomers(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commitLocked(ctx, records); err != nil {
		return err
	}
	s.logger.Info("customers imported", zap.Int("count", len(records)))
	return nil
}

// ImportFile reads path and imports it. The read runs without holding the
// store lock and is abandoned if ctx ends first; the import itself is applied
// atomically, so when imports race the last one to finish wins. A failed read
// is an ImportError with Reason ErrUnreadableFile.
func (s *Store) ImportFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	type readResult struct {
		data []byte
		err  error
	}
	done := make(chan readResult, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- readResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-done:
		if r.err != nil {
			return &types.ImportError{Reason: types.ErrUnreadableFile, Cause: r.err}
		}
		return s.ImportSnapshot(ctx, r.data)
	}
}
