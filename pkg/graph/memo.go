package graph

// CachedDiameter returns the memoized diameter for d, if present and
// computed against the current topology.
func (g *Graph) CachedDiameter(d Directedness) (int, bool) {
	g.diameterMu.Lock()
	defer g.diameterMu.Unlock()
	entry, ok := g.diameters[d]
	if !ok || entry.generation != g.generation.Load() {
		return 0, false
	}
	return entry.value, true
}

// MemoizeDiameter returns the cached diameter for d or runs compute and
// stores its result. Concurrent misses for the same directedness share one
// compute call; a caller arriving after a store sees the cached value.
// Duplicate computation is possible only across a topology change, and the
// stored value always belongs to the generation it was computed for.
func (g *Graph) MemoizeDiameter(d Directedness, compute func() int) (value int, cached bool) {
	value, cached, _ = g.MemoizeDiameterErr(d, func() (int, error) {
		return compute(), nil
	})
	return value, cached
}

// MemoizeDiameterErr is MemoizeDiameter for computations that can fail.
// Failed results are not stored.
func (g *Graph) MemoizeDiameterErr(d Directedness, compute func() (int, error)) (value int, cached bool, err error) {
	if v, ok := g.CachedDiameter(d); ok {
		return v, true, nil
	}

	res, err, _ := g.diameterFlight.Do(d.String(), func() (any, error) {
		if v, ok := g.CachedDiameter(d); ok {
			return v, nil
		}
		gen := g.generation.Load()
		v, err := compute()
		if err != nil {
			return 0, err
		}

		g.diameterMu.Lock()
		g.diameters[d] = diameterEntry{value: v, generation: gen}
		g.diameterMu.Unlock()
		return v, nil
	})
	if err != nil {
		return 0, false, err
	}
	return res.(int), false, nil
}
