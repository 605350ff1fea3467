// Package store implements the RecordStore: the ordered, in-memory sequence
// of customer records, its mutation and query operations, and its
// serialization to and from the persisted key-value blob.
//
// Every mutation builds the next sequence, writes it through to the KV
// backend, and only then swaps it in, so memory and storage never disagree.
// Queries (Search, Sort, Query) return views: copies of the rows tagged with
// their index in the backing sequence. Views never reorder the backing
// sequence, and the indices they carry are the ones Update, Delete and
// BulkDelete expect.
package store
