package tower

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

func towerIdHash(id TowerId) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], id.X)
	binary.LittleEndian.PutUint32(buf[4:], id.Y)
	return xxhash.Sum64(buf[:])
}

// TowerSet is a set of TowerId, hashed through xxhash rather than Go's
// randomized built-in map hash so that iteration order is a deterministic
// function of the member coordinates, not of the process's map seed.
type TowerSet struct {
	members map[uint64]TowerId
}

// NewTowerSet returns an empty TowerSet.
func NewTowerSet() *TowerSet {
	return &TowerSet{members: make(map[uint64]TowerId)}
}

// Insert adds id to the set.
func (s *TowerSet) Insert(id TowerId) {
	if s.members == nil {
		s.members = make(map[uint64]TowerId)
	}
	s.members[towerIdHash(id)] = id
}

// Remove removes id from the set.
func (s *TowerSet) Remove(id TowerId) {
	delete(s.members, towerIdHash(id))
}

// Contains reports whether id is a member.
func (s *TowerSet) Contains(id TowerId) bool {
	_, ok := s.members[towerIdHash(id)]
	return ok
}

// Len returns the number of members.
func (s *TowerSet) Len() int {
	return len(s.members)
}

// Iter calls f once per member, in a fixed order determined by each
// member's xxhash value (not insertion order, not Go's map seed).
func (s *TowerSet) Iter(f func(id TowerId)) {
	keys := make([]uint64, 0, len(s.members))
	for k := range s.members {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		f(s.members[k])
	}
}

// TowerRectangle is an axis-aligned bounding box over TowerId coordinates,
// paired with an xxhash-keyed membership set for the cells actually present
// within it (e.g. a player's spawn bubble, or the chunks touched by a
// shrink pass).
type TowerRectangle struct {
	Min, Max TowerId
	set      *TowerSet
}

// WithBounds returns an empty TowerRectangle constrained to [min, max].
func WithBounds(min, max TowerId) TowerRectangle {
	return TowerRectangle{Min: min, Max: max, set: NewTowerSet()}
}

// InBounds reports whether id falls within the rectangle's bounds,
// regardless of set membership.
func (r TowerRectangle) InBounds(id TowerId) bool {
	return id.X >= r.Min.X && id.X <= r.Max.X && id.Y >= r.Min.Y && id.Y <= r.Max.Y
}

// Insert adds id to the rectangle's member set if it falls within bounds,
// and reports whether it did.
func (r TowerRectangle) Insert(id TowerId) bool {
	if !r.InBounds(id) {
		return false
	}
	r.set.Insert(id)
	return true
}

// Contains reports whether id is both in bounds and a recorded member.
func (r TowerRectangle) Contains(id TowerId) bool {
	return r.set.Contains(id)
}

// Len returns the number of recorded members.
func (r TowerRectangle) Len() int {
	return r.set.Len()
}

// Iter calls f once per recorded member, in deterministic order.
func (r TowerRectangle) Iter(f func(id TowerId)) {
	r.set.Iter(f)
}
