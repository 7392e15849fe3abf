// Package client provides an HTTP client for the repository API. The CLI
// uses it when pointed at a running server instead of opening the object
// database directly.
package client
