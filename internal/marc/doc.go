// Package marc exports the electronic-location field (856) linking catalog
// records to repository objects.
package marc
