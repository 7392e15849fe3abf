// Package objects persists repository objects, their versions, and user
// versions in SQLite. Every mutation is guarded by an optimistic lock token
// on the owning object row.
package objects
