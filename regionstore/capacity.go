package regionstore

import "math"

// FractionalZoneAllocation is the default 50/50 split between the global
// performance fund and the zone-proportional fund.
const FractionalZoneAllocation = 0.5

// capInf stands in for a region whose inverse min-score would otherwise be
// +Inf (a vanishingly small min_score), so capacity arithmetic never has to
// handle an actual infinity.
const capInf = math.MaxFloat64 / 10

// AllocateCarryingCapacities splits rs.PopulationSize between a global
// performance fund (proportional to each region's inverse min_score) and a
// zone-proportional fund (regions grouped by Chebyshev-1 adjacency, each
// zone's share proportional to zone_size², distributed within the zone by
// the same inverse-min_score formula applied locally). Every region's
// CarryingCapacity is set; the sum of all capacities is at most
// PopulationSize, with any remainder left as unallocated slack from
// flooring fractional shares.
func AllocateCarryingCapacities(rs *Regions) {
	regions := rs.All()
	for _, r := range regions {
		r.CarryingCapacity = 0
		r.HasZoneID = false
	}
	if len(regions) == 0 {
		return
	}

	perfFund := float64(rs.PopulationSize) * FractionalZoneAllocation
	zoneFund := float64(rs.PopulationSize) - perfFund

	perfShares := distributeByInverseFitness(regions, perfFund)

	zones := computeZones(regions)
	var totalSizeSquared float64
	for _, z := range zones {
		size := float64(len(z))
		totalSizeSquared += size * size
	}

	zoneShares := make(map[*Region]float64, len(regions))
	for zoneIdx, z := range zones {
		var zShare float64
		if totalSizeSquared > 0 {
			size := float64(len(z))
			zShare = zoneFund * (size * size) / totalSizeSquared
		}
		within := distributeByInverseFitness(z, zShare)
		for r, v := range within {
			zoneShares[r] = v
		}
		for _, r := range z {
			r.ZoneID = zoneIdx
			r.HasZoneID = true
		}
	}

	for _, r := range regions {
		total := perfShares[r] + zoneShares[r]
		r.CarryingCapacity = uint32(math.Floor(total))
	}
}

// distributeByInverseFitness splits fund across regions proportional to
// each region's inverse min_score. If any region's inverse is capped (would
// have been +Inf), the capped regions evenly split the whole fund and every
// other region gets zero — an uncapped region's fitness advantage is
// meaningless next to a region at the numeric floor of "best possible".
func distributeByInverseFitness(regions []*Region, fund float64) map[*Region]float64 {
	out := make(map[*Region]float64, len(regions))
	if fund <= 0 || len(regions) == 0 {
		return out
	}

	var capped []*Region
	var sumFinite float64
	for _, r := range regions {
		inv := invFitness(r)
		if inv == capInf {
			capped = append(capped, r)
		} else {
			sumFinite += inv
		}
	}

	if len(capped) > 0 {
		share := fund / float64(len(capped))
		for _, r := range capped {
			out[r] = share
		}
		return out
	}

	if sumFinite <= 0 {
		return out
	}
	for _, r := range regions {
		out[r] = fund * invFitness(r) / sumFinite
	}
	return out
}

func invFitness(r *Region) float64 {
	if !r.HasMinScore || r.MinScore <= 0 {
		return 0
	}
	inv := 1.0 / r.MinScore
	if math.IsInf(inv, 1) {
		return capInf
	}
	return inv
}
