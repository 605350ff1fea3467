// Package types defines the Customer record, the key-value storage interface,
// query parameters, configuration, and the standard error types for the
// rolodex customer store.
package types
