// Package cocina defines the structured descriptive metadata model used by
// Lectern. Values are plain immutable records: a DescriptiveValue holds at
// most one of a flat value, an ordered structured decomposition, or an
// unordered set of parallel language/script variants. The MODS writers in
// package mods dispatch on that shape.
package cocina
