package organism

import "sort"

// Pool owns every live organism, keyed by id, and provides the
// deterministic ascending-id iteration order the engine's determinism
// model depends on for initial population construction and reporting.
type Pool struct {
	byID map[uint64]*Organism
}

// NewPool builds an empty pool.
func NewPool() *Pool {
	return &Pool{byID: make(map[uint64]*Organism)}
}

// Add inserts or replaces the organism under its own id.
func (p *Pool) Add(o *Organism) {
	p.byID[o.ID] = o
}

// Get returns the organism with the given id, or nil if absent.
func (p *Pool) Get(id uint64) *Organism {
	return p.byID[id]
}

// Remove deletes the organism with the given id, if present.
func (p *Pool) Remove(id uint64) {
	delete(p.byID, id)
}

// Len returns the number of organisms currently in the pool.
func (p *Pool) Len() int {
	return len(p.byID)
}

// IDs returns every organism id currently in the pool, sorted ascending.
func (p *Pool) IDs() []uint64 {
	ids := make([]uint64, 0, len(p.byID))
	for id := range p.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// All returns every organism, ordered by ascending id. This is the
// iteration order the determinism model requires for initial phenotype
// construction and for any reduction whose result must not depend on map
// iteration order.
func (p *Pool) All() []*Organism {
	ids := p.IDs()
	out := make([]*Organism, len(ids))
	for i, id := range ids {
		out[i] = p.byID[id]
	}
	return out
}

// RemoveAll deletes every organism named in ids.
func (p *Pool) RemoveAll(ids []uint64) {
	for _, id := range ids {
		delete(p.byID, id)
	}
}
