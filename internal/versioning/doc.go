// Package versioning implements the repository object lifecycle state
// machine: opening and closing versions under optimistic locking, the
// openable/accessioning gates, and the public user-version pointers.
package versioning
