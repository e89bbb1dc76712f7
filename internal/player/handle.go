package player

import (
	"fmt"

	"github.com/ashfall-games/towers/pkg/tower"
)

// borrowState tracks a slot's current access mode, mirroring the original's
// use of a runtime-checked RefCell: any number of concurrent reads are
// fine, but a write excludes every other access, and the checks panic
// rather than silently racing, since this is a single-threaded cooperative
// model and a conflict always indicates a bug (e.g. a handle held across a
// reentrant dispatch) rather than legitimate contention.
type borrowState struct {
	readers int
	written bool
}

func (s *borrowState) acquireRead(id tower.PlayerId) {
	if s.written {
		panic(fmt.Sprintf("player %d: borrow_player while mutably borrowed", id))
	}
	s.readers++
}

func (s *borrowState) releaseRead() {
	s.readers--
}

func (s *borrowState) acquireWrite(id tower.PlayerId) {
	if s.written || s.readers > 0 {
		panic(fmt.Sprintf("player %d: borrow_player_mut while already borrowed", id))
	}
	s.written = true
}

func (s *borrowState) releaseWrite() {
	s.written = false
}

// ReadHandle is a scoped, read-only borrow of a Player. Call Release when
// done; holding it across another borrow of the same player panics.
type ReadHandle struct {
	id     tower.PlayerId
	player *Player
	state  *borrowState
}

// Get returns the borrowed player.
func (h ReadHandle) Get() *Player { return h.player }

// Release ends the borrow.
func (h ReadHandle) Release() { h.state.releaseRead() }

// WriteHandle is a scoped, exclusive borrow of a Player.
type WriteHandle struct {
	id     tower.PlayerId
	player *Player
	state  *borrowState
}

// Get returns the borrowed player.
func (h WriteHandle) Get() *Player { return h.player }

// Release ends the borrow.
func (h WriteHandle) Release() { h.state.releaseWrite() }
