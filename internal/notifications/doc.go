// Package notifications delivers registration events to Goobi with bounded
// retries.
package notifications
