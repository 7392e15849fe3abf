// Package workflows is a thin client for the external workflow service. The
// lifecycle state machine consults it for accessioning activity, and the
// catalog export asks it for release tags.
package workflows
