package engine

import (
	"math/rand"

	"github.com/cainem/hilldescent-go/genome"
	"github.com/cainem/hilldescent-go/organism"
	"github.com/cainem/hilldescent-go/regionstore"
	"golang.org/x/sync/errgroup"
)

// regionSelection pairs a region's key with the selection outcome computed
// for it, so Phase 5 can derive that region's deterministic reproduction
// seed without re-walking the region store.
type regionSelection struct {
	RegionKey string
	Result    regionstore.SelectionResult
}

// selectRegions runs Phase 4 (region sort, truncation, pairing) across
// every region concurrently via errgroup — a different concurrency idiom
// from Phase 1's channel pool, since region-local selection is a pure,
// short-lived computation with no need for a bounded worker count.
func (e *Engine) selectRegions(deathsByRegion map[string]int) []regionSelection {
	regions := e.Regions.All()
	out := make([]regionSelection, len(regions))

	var g errgroup.Group
	for i, r := range regions {
		i, r := i, r
		g.Go(func() error {
			result := regionstore.Select(r, e.Pool, deathsByRegion[r.Key.String()])
			out[i] = regionSelection{RegionKey: r.Key.String(), Result: result}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// releaseDoomedLoci returns the gamete loci buffers of every organism about
// to be removed this epoch (age deaths plus capacity-truncated organisms)
// to the engine's locus pool, so the next epoch's reproduce can recycle
// their backing arrays instead of allocating fresh ones. Must run after
// reproduce, not before: a same-epoch death can still be drawn as a parent
// this epoch (it stays in its region's OrganismIDs until Pool.RemoveAll at
// the end of the epoch deletes it), so releasing these buffers any earlier
// risks a later pair's reproduce call overwriting a still-live parent's
// loci. An organism that is both an age death and capacity-truncated is
// released once.
func (e *Engine) releaseDoomedLoci(deadIDs []uint64, selections []regionSelection) {
	released := make(map[uint64]bool)
	release := func(id uint64) {
		if released[id] {
			return
		}
		released[id] = true
		o := e.Pool.Get(id)
		if o == nil {
			return
		}
		e.locusPool.Release(o.Phenotype.Gamete1.Loci)
		e.locusPool.Release(o.Phenotype.Gamete2.Loci)
	}
	for _, id := range deadIDs {
		release(id)
	}
	for _, sel := range selections {
		for _, id := range sel.Result.ToRemove {
			release(id)
		}
	}
}

// reproduce runs Phase 5: for each region's parent pairs, cross the
// parents' phenotypes with a per-region deterministic RNG and insert the
// two resulting children into the pool. Offspring gamete buffers are drawn
// from the engine's locus pool, recycling backing arrays a prior epoch's
// releaseDoomedLoci freed. Must run before this epoch's own
// releaseDoomedLoci call: parents read here may themselves be marked for
// removal this epoch. Returns the full set of organism ids Phase 4 marked
// for removal (capacity truncation), which Phase 6 folds together with the
// age-death ids collected in Phase 3.
func (e *Engine) reproduce(selections []regionSelection) []uint64 {
	var toRemove []uint64

	for _, sel := range selections {
		toRemove = append(toRemove, sel.Result.ToRemove...)
		if len(sel.Result.Pairs) == 0 {
			continue
		}

		rng := rand.New(rand.NewSource(regionSeed(e.Config.WorldSeed, e.Epoch, sel.RegionKey)))
		for _, pair := range sel.Result.Pairs {
			parent1 := e.Pool.Get(pair.Parent1)
			parent2 := e.Pool.Get(pair.Parent2)
			if parent1 == nil || parent2 == nil {
				continue
			}

			child1, child2 := genome.ReproducePhenotypesWithPool(parent1.Phenotype, parent2.Phenotype, rng, e.locusPool)
			e.Pool.Add(organism.NewChild(child1, parent1.ID, parent2.ID))
			e.Pool.Add(organism.NewChild(child2, parent1.ID, parent2.ID))
		}
	}

	return toRemove
}
