// Package daemon coordinates the long-running server process. It ties the
// object store and the HTTP API into a single lifecycle with flock-based
// locking to prevent multiple instances from sharing one database.
package daemon
