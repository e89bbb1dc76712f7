// Package player holds per-player state: score, alliances, territory
// bookkeeping, and the borrow-checked access discipline the world facade
// uses to mutate it safely from a single-threaded tick loop.
package player

import (
	"github.com/ashfall-games/towers/pkg/tower"
)

// DeathReason records why a player most recently died, surfaced to clients
// alongside the Died maintenance message.
type DeathReason uint8

const (
	DeathReasonNone DeathReason = iota
	DeathReasonKilled
	DeathReasonLeft
	DeathReasonShrunk
)

func (d DeathReason) String() string {
	switch d {
	case DeathReasonKilled:
		return "killed"
	case DeathReasonLeft:
		return "left"
	case DeathReasonShrunk:
		return "shrunk"
	default:
		return "none"
	}
}

// Ticks counts simulation ticks elapsed, e.g. a player's current lifetime.
type Ticks uint32

// Player is the external aggregate the world facade mutates on every
// player operation. It never moves tower simulation state (that lives in
// internal/chunk); it only tracks the player's own bookkeeping.
type Player struct {
	Alive       bool
	Lifetime    Ticks
	DeathReason DeathReason
	Score       uint32
	Alerts      tower.Alerts
	Allies      map[tower.PlayerId]struct{}
	Towers      *tower.TowerSet
	TowerCounts [tower.TowerTypeCount]uint8
}

// NewPlayer returns a fresh, not-yet-spawned player.
func NewPlayer() *Player {
	return &Player{
		Allies: make(map[tower.PlayerId]struct{}),
		Towers: tower.NewTowerSet(),
	}
}

// IsBot reports whether this player's id marks it as bot-controlled. It is
// a method on PlayerId, not Player, since the original models it the same
// way (id-derived, no lookup needed); kept here too for call-site
// convenience.
func IsBot(id tower.PlayerId) bool {
	return id.Bot()
}

// IsAlly reports whether with is recorded as an ally.
func (p *Player) IsAlly(with tower.PlayerId) bool {
	_, ok := p.Allies[with]
	return ok
}

// AddAlly records with as an ally.
func (p *Player) AddAlly(with tower.PlayerId) {
	p.Allies[with] = struct{}{}
}

// RemoveAlly un-records with as an ally.
func (p *Player) RemoveAlly(with tower.PlayerId) {
	delete(p.Allies, with)
}
