// Package service coordinates the user and book repositories.
//
// Library owns one repository per record type on a shared database Handle.
// It imports seed documents (saving each user before their books so the
// books carry the engine-assigned user key), produces snapshots of both
// tables for export, and publishes change events on an EventBus.
//
// Relationships are not loaded: a snapshot is two flat lists, and nothing
// here resolves a book's owner.
package service
