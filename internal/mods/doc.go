// Package mods renders a cocina.Description as MODS 3.6 XML.
//
// The engine is a set of per-entity writers (title, name, event, subject,
// and so on) that append elements to a shared document tree in a fixed
// order. Cross-references between elements — altRepGroup ids linking
// parallel language variants and nameTitleGroup ids linking uniform titles
// to contributor names — are allocated from a Groups counter scoped to a
// single Transform call. Writers never fail: malformed input degrades to
// empty placeholder elements, matching the legacy round-trip behavior.
package mods
