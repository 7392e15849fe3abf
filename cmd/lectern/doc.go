// Package main hosts the lectern CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into calls
// against either a running API server or the local object database, covering
// registration, version lifecycle management, user versions, metadata
// rendering, and configuration scaffolding. It centralizes configuration
// resolution and server selection so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
