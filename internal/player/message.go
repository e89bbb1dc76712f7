package player

import "github.com/ashfall-games/towers/pkg/tower"

// InputKind distinguishes the player-input messages the world facade
// dispatches to a single player.
type InputKind uint8

const (
	// NewAlliance notifies a player that an alliance with another player
	// has just become mutual.
	NewAlliance InputKind = iota
	// AddAllyInput records a one-directional alliance offer.
	AddAllyInput
	// RemoveAllyInput un-records an alliance offer, breaking it if mutual.
	RemoveAllyInput
)

// Input is a single message dispatched to one player.
type Input struct {
	Kind InputKind
	With tower.PlayerId
}

// MaintenanceKind distinguishes the player-maintenance messages dispatched
// during the world's housekeeping pass.
type MaintenanceKind uint8

const (
	// Died notifies a player that they have just been killed.
	Died MaintenanceKind = iota
	// RemoveDeadAllyInput prunes a dead ally from a surviving player's
	// alliance set.
	RemoveDeadAllyInput
)

// Maintenance is a single maintenance message dispatched to one player.
type Maintenance struct {
	Kind      MaintenanceKind
	DeadAlly  tower.PlayerId
	DeathKind DeathReason
}

// ApplyInput applies a single Input message to id's player. It is a no-op
// if id has no player (mirroring the original's tolerance of players that
// left mid-dispatch).
func (r *Repo) ApplyInput(id tower.PlayerId, input Input) {
	h, ok := r.BorrowPlayerMut(id)
	if !ok {
		return
	}
	defer h.Release()
	p := h.Get()
	switch input.Kind {
	case NewAlliance:
		// Purely informational in this in-memory model: alliance sets are
		// changed only by AddAllyInput/RemoveAllyInput messages.
	case AddAllyInput:
		p.AddAlly(input.With)
	case RemoveAllyInput:
		p.RemoveAlly(input.With)
	}
}

// ApplyMaintenance applies a single Maintenance message to id's player.
func (r *Repo) ApplyMaintenance(id tower.PlayerId, m Maintenance) {
	h, ok := r.BorrowPlayerMut(id)
	if !ok {
		return
	}
	defer h.Release()
	p := h.Get()
	switch m.Kind {
	case Died:
		p.Alive = false
		p.DeathReason = m.DeathKind
	case RemoveDeadAllyInput:
		p.RemoveAlly(m.DeadAlly)
	}
}
