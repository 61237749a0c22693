package community

// idGenerator hands out community IDs. IDs start at 1, increase
// monotonically, and are never reused, so a freshly merged community always
// carries an ID greater than every neighbor row key it is inserted under.
type idGenerator struct {
	next uint64
}

func newIDGenerator() *idGenerator {
	return &idGenerator{next: 1}
}

// Next returns the next unused ID.
func (g *idGenerator) Next() uint64 {
	id := g.next
	g.next++
	return id
}
