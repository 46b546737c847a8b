// Package domain defines the record types persisted by sqlrecord.
//
// # Record contract
//
// Record is the capability set a type implements to be stored by the
// generic repository: its table name and primary key, the CREATE TABLE
// statement, the INSERT and UPDATE templates with their matching binders,
// and ScanRow, which reads a result row back positionally.
//
// # Types
//
// User is a person with a name and an age.
//
// Book has a title and a UserID that references users(id). The reference
// is a declared foreign key only; nothing in this package resolves it.
//
// Seed and Dataset are the import and export documents used by the codec
// and service packages.
//
// # Design Principles
//
// - Plain value types with no reference to a database handle
// - Column order is fixed per type and mirrored by every SQL template
// - Key 0 means "not yet saved"; the engine assigns keys on insert
package domain
