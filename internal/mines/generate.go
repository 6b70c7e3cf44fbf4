package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// placeMines picks p.MineCount distinct cells, none of which is start or
// adjacent to it.
//
// panics [AssertionError]
func (p GameParams) placeMines(start Point, r *rand.Rand) mapset.Set[Point] {
	safe := mapset.Of(append(p.neighbors(start), start)...)

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]Point, 0, p.CellCount())
	for _, pt := range p.points() {
		if !safe.Has(pt) {
			candidates = append(candidates, pt)
		}
	}

	assert(p.MineCount <= len(candidates),
		"cannot place %d mines on %d free cells", p.MineCount, len(candidates))

	/*
	 * Now pick n off the list at random.
	 */
	mines := mapset.New[Point]()
	k := len(candidates)
	for range p.MineCount {
		i := r.IntN(k)
		mines.Put(candidates[i])
		k--
		candidates[i] = candidates[k]
	}

	Log.WithFields(logrus.Fields{
		"params": p.Seed(),
		"start":  start,
		"free":   len(candidates),
	}).Debug("placed mines")

	return mines
}
