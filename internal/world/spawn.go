package world

import "github.com/ashfall-games/towers/pkg/tower"

// isSpawnable reports whether tower_id is a valid spawn location: it must
// sit somewhere with a defined connectivity direction (i.e. not exactly at
// world center), be a "good" spawn (near existing spawnable infrastructure
// or with enough open neighbors), and be "safe" (no nearby owned or
// contested towers).
func (s *Service) isSpawnable(id tower.TowerId) bool {
	if _, ok := id.Connectivity(s.Center); !ok {
		return false
	}
	return s.isGoodSpawn(id) && s.isSafeSpawn(id)
}

// towerTypeAt returns the effective tower type at id: its materialized
// type if the cell exists and is unowned, its deterministic pseudo-random
// type if the cell doesn't exist yet, or false if the cell exists and is
// already owned.
func (s *Service) towerTypeAt(id tower.TowerId) (tower.TowerType, bool) {
	if t, ok := s.Chunks.Get(id); ok {
		if t.PlayerId != nil {
			return 0, false
		}
		return t.TowerType, true
	}
	return id.TowerType(), true
}

// isGoodSpawn reports whether tower_id's (and every neighbor's) effective
// tower type supports spawning there: either the cell itself is spawnable
// with at least 3 neighbors, or at least 2 of its neighbors are.
func (s *Service) isGoodSpawn(id tower.TowerId) bool {
	towerType, ok := s.towerTypeAt(id)
	if !ok {
		return false
	}

	neighbors := 0
	spawnableNeighbors := 0
	for _, n := range id.Neighbors() {
		neighbors++
		nType, ok := s.towerTypeAt(n)
		if !ok {
			return false
		}
		if nType.Spawnable() {
			spawnableNeighbors++
		}
	}
	return (towerType.Spawnable() && neighbors >= 3) || spawnableNeighbors >= 2
}

// isSafeSpawn reports whether the area immediately around tower_id is free
// of owned or contested towers: a 4-ring breadth-first search over an 8x8
// local bitmap (so at most 64 distinct cells are ever tracked), requiring
// at least 12 distinct cells to have been visited by the time the search
// exhausts its two 16-entry ring buffers.
//
// The ring buffers intentionally overwrite on overflow past 16 entries per
// ring, exactly as the original does: this is a bounded-cost approximation
// of a full flood fill, not a correctness bug.
func (s *Service) isSafeSpawn(id tower.TowerId) bool {
	var bitmap uint64
	insert := func(id tower.TowerId) bool {
		index := (id.X & 0b111) | ((id.Y & 0b111) << 3)
		bit := uint64(1) << index
		inserted := bitmap&bit == 0
		bitmap |= bit
		return inserted
	}

	var ringA, ringB [16]tower.TowerId
	a, b := ringA[:], ringB[:]
	a[0] = id
	length := 1

	for ring := 0; ring < 4; ring++ {
		current := length
		if current > len(a) {
			current = len(a)
		}
		length = 0
		for _, id := range a[:current] {
			for _, n := range id.Neighbors() {
				if !insert(n) {
					continue
				}
				if t, ok := s.Chunks.Get(n); ok && (t.PlayerId != nil || len(t.InboundForces) > 0) {
					return false
				}
				b[length%len(b)] = n
				length++
			}
		}
		a, b = b, a
	}

	const minimumVisited = 12
	return popcount(bitmap) >= minimumVisited
}

func popcount(x uint64) int {
	count := 0
	for x != 0 {
		x &= x - 1
		count++
	}
	return count
}
