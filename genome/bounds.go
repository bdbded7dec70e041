package genome

// SystemParameterBounds returns the fixed bounds for the seven system-parameter
// loci, in locus order: m1, m2, m3, m4, m5, max_age, crossover_points.
func SystemParameterBounds() []Bounds {
	return []Bounds{
		{Lo: mutationRateBounds[0], Hi: mutationRateBounds[1]},
		{Lo: mutationRateBounds[0], Hi: mutationRateBounds[1]},
		{Lo: mutationRateBounds[0], Hi: mutationRateBounds[1]},
		{Lo: mutationRateBounds[0], Hi: mutationRateBounds[1]},
		{Lo: mutationRateBounds[0], Hi: mutationRateBounds[1]},
		{Lo: maxAgeBounds[0], Hi: maxAgeBounds[1]},
		{Lo: crossoverPointBounds[0], Hi: crossoverPointBounds[1]},
	}
}

// ParameterBounds concatenates the fixed system-parameter bounds with the
// caller-supplied per-problem-parameter bounds, producing the full
// NumSystemParameters+n slice NewRandomGamete/NewRandomPhenotype expect.
func ParameterBounds(problemBounds []Bounds) []Bounds {
	out := make([]Bounds, 0, NumSystemParameters+len(problemBounds))
	out = append(out, SystemParameterBounds()...)
	out = append(out, problemBounds...)
	return out
}
