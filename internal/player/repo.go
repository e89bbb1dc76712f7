package player

import "github.com/ashfall-games/towers/pkg/tower"

type slot struct {
	player *Player
	state  borrowState
}

// Repo owns every player in the game, dispensing borrow-checked handles
// to mutate them. It is not safe for concurrent use from multiple
// goroutines: the whole simulation is single-threaded and cooperative, and
// the borrow checks below assume that.
type Repo struct {
	slots map[tower.PlayerId]*slot
}

// NewRepo returns an empty player repository.
func NewRepo() *Repo {
	return &Repo{slots: make(map[tower.PlayerId]*slot)}
}

// Insert adds a new player under id, replacing any existing one.
func (r *Repo) Insert(id tower.PlayerId, p *Player) {
	r.slots[id] = &slot{player: p}
}

// Remove deletes id's player entirely.
func (r *Repo) Remove(id tower.PlayerId) {
	delete(r.slots, id)
}

// Contains reports whether id has a player entry.
func (r *Repo) Contains(id tower.PlayerId) bool {
	_, ok := r.slots[id]
	return ok
}

// BorrowPlayer returns a read-only handle to id's player, or false if no
// such player exists.
func (r *Repo) BorrowPlayer(id tower.PlayerId) (ReadHandle, bool) {
	s, ok := r.slots[id]
	if !ok {
		return ReadHandle{}, false
	}
	s.state.acquireRead(id)
	return ReadHandle{id: id, player: s.player, state: &s.state}, true
}

// BorrowPlayerMut returns an exclusive handle to id's player, or false if
// no such player exists.
func (r *Repo) BorrowPlayerMut(id tower.PlayerId) (WriteHandle, bool) {
	s, ok := r.slots[id]
	if !ok {
		return WriteHandle{}, false
	}
	s.state.acquireWrite(id)
	return WriteHandle{id: id, player: s.player, state: &s.state}, true
}

// Iter calls f once per (PlayerId, *Player), with no borrow held: f must
// not call Borrow*/Remove/Insert reentrantly without accounting for that.
func (r *Repo) Iter(f func(tower.PlayerId, *Player)) {
	for id, s := range r.slots {
		f(id, s.player)
	}
}
