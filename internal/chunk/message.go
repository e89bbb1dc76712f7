// Package chunk provides the reference implementation of the black-box
// chunk actor the world facade dispatches ChunkInput/ChunkMaintenance
// messages to. The simulation core only needs a dispatch boundary (see
// Dispatcher); this package supplies a concrete, synchronous, in-memory
// one so the rest of the module is runnable and testable.
package chunk

import "github.com/ashfall-games/towers/pkg/tower"

// InputKind distinguishes the messages a chunk accepts as ordinary
// gameplay input.
type InputKind uint8

const (
	// Spawn materializes a new, player-owned tower with a Ruler unit.
	Spawn InputKind = iota
	// ClearZombies empties the units of an unowned tower adjacent to a
	// freshly spawned one, so stray neutral units don't linger at the edge
	// of a new player's territory. Owned towers and unmaterialized cells
	// are left as they are.
	ClearZombies
	// DeployForce debits a tower's mobile units into a Force traveling
	// along path.
	DeployForce
	// SetSupplyLine updates or clears the tower's standing supply route.
	SetSupplyLine
	// UpgradeTower changes a tower's type, applying the upgrade delay.
	UpgradeTower
	// Generate materializes a batch of previously virtual cells using
	// their deterministic pseudo-random tower type.
	Generate
)

// Input is a single chunk-input message, addressed by relative tower id
// within whichever chunk it targets.
type Input struct {
	Kind       InputKind
	TowerId    tower.RelativeTowerId
	PlayerId   tower.PlayerId
	Path       *tower.Path
	TowerType  tower.TowerType
	GenerateAt []tower.RelativeTowerId
}

// MaintenanceKind distinguishes the chunk-level housekeeping messages.
type MaintenanceKind uint8

const (
	// KillPlayer clears a dead player's ownership from every tower of
	// theirs in this chunk.
	KillPlayer MaintenanceKind = iota
	// Destroy removes a batch of towers outright (used by shrink).
	Destroy
)

// Maintenance is a single chunk-maintenance message.
type Maintenance struct {
	Kind      MaintenanceKind
	PlayerId  tower.PlayerId
	TowerIds  []tower.RelativeTowerId
}

// EventKind distinguishes the info events a chunk may raise while
// processing a message, e.g. a player losing their last Ruler.
type EventKind uint8

const (
	// PlayerKilled reports that applying a message resulted in a player
	// losing their Ruler (and therefore their last foothold at this
	// tower): callers use this to drive kill_player.
	PlayerKilled EventKind = iota
)

// Event is a single info event raised by a chunk in response to a
// dispatched message.
type Event struct {
	Kind     EventKind
	PlayerId tower.PlayerId
}

// Sink receives Events raised during dispatch. A nil func(Event) is never
// passed by this package's World; callers that don't care about events can
// pass a no-op sink.
type Sink func(Event)

// Dispatcher is the black-box surface the world facade depends on: apply a
// message addressed to one chunk, reporting any info events raised. A
// concrete chunk actor (this package's World, or a future networked/sharded
// one) only needs to satisfy this.
type Dispatcher interface {
	DispatchInput(id tower.ChunkId, input Input, sink Sink)
	DispatchMaintenance(id tower.ChunkId, m Maintenance, sink Sink)
}
