// Package purl builds and validates persistent URLs for repository objects.
package purl
