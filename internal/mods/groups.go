package mods

// Groups allocates the sequential integer ids that link related output
// elements: altRepGroup ties sibling elements holding parallel language or
// script variants of one semantic value, and nameTitleGroup ties a uniform
// title to the contributor name it was derived from. A Groups value is
// created fresh for each Transform call and discarded afterwards; ids start
// at 1 in first-seen order.
type Groups struct {
	altRep    int
	nameTitle int
}

// NewGroups returns an allocator with both counters at zero.
func NewGroups() *Groups {
	return &Groups{}
}

// NextAltRep returns the next altRepGroup id.
func (g *Groups) NextAltRep() int {
	g.altRep++
	return g.altRep
}

// NextNameTitle returns the next nameTitleGroup id.
func (g *Groups) NextNameTitle() int {
	g.nameTitle++
	return g.nameTitle
}
