package regionstore

import "github.com/cainem/hilldescent-go/grid"

// computeZones groups regions into connected components under Chebyshev-1
// adjacency: two region keys are adjacent iff they differ by at most 1 in
// every coordinate. This is the flood fill that finds each connected
// frontier of populated regions so the zone-proportional fund can reward
// growing frontiers over isolated ones.
func computeZones(regions []*Region) [][]*Region {
	visited := make(map[*Region]bool, len(regions))
	var zones [][]*Region

	for _, start := range regions {
		if visited[start] {
			continue
		}
		var zone []*Region
		queue := []*Region{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			zone = append(zone, cur)
			for _, other := range regions {
				if visited[other] {
					continue
				}
				if adjacent(cur.Key, other.Key) {
					visited[other] = true
					queue = append(queue, other)
				}
			}
		}
		zones = append(zones, zone)
	}
	return zones
}

func adjacent(a, b grid.RegionKey) bool {
	av, bv := a.Values(), b.Values()
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		d := av[i] - bv[i]
		if d < -1 || d > 1 {
			return false
		}
	}
	return true
}
