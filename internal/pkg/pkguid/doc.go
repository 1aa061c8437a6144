// Package pkguid provides the id generators used for ledger records,
// change events and request correlation.
//
// Callers depend on StringID and pick an implementation with NewStringID:
// time-ordered UUIDs by default, or Snowflake ids rendered in base 10.
package pkguid
