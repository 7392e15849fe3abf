// Package services defines the error taxonomy shared by Lectern's domain
// services and the mapping from classified errors to HTTP response codes.
package services
