// Package repository provides a generic repository over the database Handle.
//
// A Repository is parameterized over a record type implementing
// domain.Record. Construction ensures the record's table exists; the five
// operations (Save, LoadAll, FindByID, Update, DeleteByID) each prepare one
// statement, bind values through the record's own binders, and release the
// statement before returning.
//
// # Binding
//
// Binder dispatch is static. The Row constraint requires *T to implement
// domain.Record, so InsertArgs, UpdateArgs and ScanRow resolve at compile
// time to the concrete type's methods. There is no runtime registry.
//
// # Errors
//
// Every failure is written to the handle's logger and returned wrapped.
// FindByID returns the zero record together with ErrNotFound when no row
// matches, so "absent" is distinguishable from "all fields default". Save
// returns ErrNoRowsWritten unless exactly one row was inserted.
//
// # Usage
//
//	h, err := database.Open(ctx, "app.db", database.Options{})
//	users, err := repository.New[domain.User](ctx, h)
//	id, err := users.Save(ctx, &alice)
//	all, err := users.LoadAll(ctx)
package repository
