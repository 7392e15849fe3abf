// Package api serves the repository HTTP interface: object registration and
// retrieval, version lifecycle operations guarded by If-Match lock tokens,
// user versions, and metadata exports.
package api
