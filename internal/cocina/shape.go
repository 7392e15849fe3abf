package cocina

// Shape is the closed set of forms a DescriptiveValue can take. Writers
// switch on Shape exhaustively instead of probing fields, so a node that
// violates the one-of invariant degrades to ShapeEmpty rather than being
// half-interpreted.
type Shape int

const (
	// ShapeEmpty covers nodes with no value content at all, and malformed
	// nodes populating more than one content field. Both render as empty
	// placeholder elements.
	ShapeEmpty Shape = iota
	ShapeValue
	ShapeStructured
	ShapeParallel
)

// ValueShape classifies a DescriptiveValue.
func ValueShape(v DescriptiveValue) Shape {
	populated := 0
	shape := ShapeEmpty
	if v.Value != "" {
		populated++
		shape = ShapeValue
	}
	if len(v.StructuredValue) > 0 {
		populated++
		shape = ShapeStructured
	}
	if len(v.ParallelValue) > 0 {
		populated++
		shape = ShapeParallel
	}
	if populated > 1 {
		return ShapeEmpty
	}
	return shape
}

// HasContent reports whether the value carries anything renderable: a value
// shape, a type, an authority reference, or notes. An empty string value
// still counts; the writers preserve empty leaf elements.
func (v DescriptiveValue) HasContent() bool {
	if v.Value != "" || len(v.StructuredValue) > 0 || len(v.ParallelValue) > 0 {
		return true
	}
	return v.Type != "" || v.URI != "" || v.Code != "" || v.Source != nil || len(v.Note) > 0
}

// PrimaryFirst returns the values reordered so that the first entry carrying
// status "primary" leads; remaining entries keep their input order. The input
// slice is never mutated.
func PrimaryFirst(values []DescriptiveValue) []DescriptiveValue {
	idx := -1
	for i, v := range values {
		if v.Status == "primary" {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return values
	}
	out := make([]DescriptiveValue, 0, len(values))
	out = append(out, values[idx])
	out = append(out, values[:idx]...)
	out = append(out, values[idx+1:]...)
	return out
}

// PrimaryIndex returns the index of the first entry carrying status
// "primary", or 0 when none is marked. Used for parallel values, where the
// primary variant keeps its position but receives the usage attribute.
func PrimaryIndex(values []DescriptiveValue) int {
	for i, v := range values {
		if v.Status == "primary" {
			return i
		}
	}
	return 0
}
