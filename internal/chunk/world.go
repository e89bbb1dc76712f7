package chunk

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ashfall-games/towers/pkg/tower"
)

// baseUpgradeDelay is the enum-level default cooldown, in ticks, applied to
// a base tower type with no downgrade. Every other type's cooldown is its
// prerequisite count against its own downgrade target (e.g. Airfield's is
// Airfield.Prerequisite(Runway)), which varies per type.
const baseUpgradeDelay = 10

// upgradeDelayFor returns the cooldown, in ticks, a tower is inactive for
// after upgrading or downgrading to t.
func upgradeDelayFor(t tower.TowerType) uint8 {
	down, ok := t.Downgrade()
	if !ok {
		return baseUpgradeDelay
	}
	return t.Prerequisite(down)
}

func relKey(id tower.RelativeTowerId) uint64 {
	return xxhash.Sum64([]byte{id.X, id.Y})
}

type chunkData struct {
	towers map[uint64]*tower.Tower
	ids    map[uint64]tower.RelativeTowerId
}

func newChunkData() *chunkData {
	return &chunkData{towers: make(map[uint64]*tower.Tower), ids: make(map[uint64]tower.RelativeTowerId)}
}

// World is the reference chunk dispatcher: a synchronous, in-memory store
// of every materialized tower, organized by chunk and addressed through
// the same ChunkId/RelativeTowerId split real dispatch uses. It implements
// both chunk.Dispatcher and tower.View.
type World struct {
	chunks map[tower.ChunkId]*chunkData
}

// NewWorld returns an empty reference world.
func NewWorld() *World {
	return &World{chunks: make(map[tower.ChunkId]*chunkData)}
}

func (w *World) chunkFor(id tower.ChunkId, create bool) *chunkData {
	c, ok := w.chunks[id]
	if !ok {
		if !create {
			return nil
		}
		c = newChunkData()
		w.chunks[id] = c
	}
	return c
}

// Get returns the materialized tower at id, if any.
func (w *World) Get(id tower.TowerId) (*tower.Tower, bool) {
	chunkID, rel := id.Split()
	c := w.chunkFor(chunkID, false)
	if c == nil {
		return nil, false
	}
	t, ok := c.towers[relKey(rel)]
	return t, ok
}

// Contains implements tower.View.
func (w *World) Contains(id tower.TowerId) bool {
	_, ok := w.Get(id)
	return ok
}

// materialize returns the tower at id, creating it from its deterministic
// pseudo-random type if it doesn't exist yet.
func (w *World) materialize(id tower.TowerId) *tower.Tower {
	chunkID, rel := id.Split()
	c := w.chunkFor(chunkID, true)
	key := relKey(rel)
	t, ok := c.towers[key]
	if !ok {
		t = tower.NewTower(id)
		c.towers[key] = t
		c.ids[key] = rel
	}
	return t
}

// IterTowers calls f once per materialized tower, in no particular order.
func (w *World) IterTowers(f func(id tower.TowerId, t *tower.Tower)) {
	for chunkID, c := range w.chunks {
		for key, t := range c.towers {
			f(tower.Join(chunkID, c.ids[key]), t)
		}
	}
}

// IterChunkIds calls f once per chunk that has ever held a materialized
// tower, including a chunk that Destroy has since emptied.
func (w *World) IterChunkIds(f func(tower.ChunkId)) {
	for chunkID := range w.chunks {
		f(chunkID)
	}
}

// DispatchInput applies a single Input message to the chunk addressed by
// id, raising any Events on sink.
func (w *World) DispatchInput(id tower.ChunkId, input Input, sink Sink) {
	switch input.Kind {
	case Spawn:
		absolute := tower.Join(id, input.TowerId)
		t := w.materialize(absolute)
		pid := input.PlayerId
		t.SetPlayerId(&pid)
		t.Units.Add(tower.Ruler, 1)
		t.ReconcileUnits()
	case ClearZombies:
		absolute := tower.Join(id, input.TowerId)
		if t, ok := w.Get(absolute); ok && t.PlayerId == nil {
			t.Units = tower.Units{}
		}
	case DeployForce:
		w.dispatchDeployForce(id, input, sink)
	case SetSupplyLine:
		absolute := tower.Join(id, input.TowerId)
		if t, ok := w.Get(absolute); ok {
			t.SupplyLine = input.Path
		}
	case UpgradeTower:
		absolute := tower.Join(id, input.TowerId)
		if t, ok := w.Get(absolute); ok {
			t.TowerType = input.TowerType
			t.Delay = upgradeDelayFor(input.TowerType)
			t.ReconcileUnits()
		}
	case Generate:
		for _, rel := range input.GenerateAt {
			w.materialize(tower.Join(id, rel))
		}
	}
}

// dispatchDeployForce queues strength along the validated path. Resolving
// an arrived force into a capture or a repelled attack is chunk-internal
// tick processing with no named message in this spec's dispatch surface;
// this reference chunk leaves inbound forces queued rather than inventing
// a resolution rule with no ground truth to follow. sink is accepted for
// interface parity but never called here, matching every deploy_force call
// site's own expectation that dispatch never raises an event.
func (w *World) dispatchDeployForce(id tower.ChunkId, input Input, _ Sink) {
	absolute := tower.Join(id, input.TowerId)
	source, ok := w.Get(absolute)
	if !ok || input.Path == nil {
		return
	}
	strength := source.TakeForceUnits()
	force := tower.Force{PlayerId: *source.PlayerId, Units: strength, Path: *input.Path}
	source.OutboundForces = append(source.OutboundForces, force)

	dest := w.materialize(input.Path.Destination())
	dest.InboundForces = append(dest.InboundForces, force)
}

// Tick advances every materialized tower by one simulation tick: upgrade
// delay countdown, unit generation, and dead/overflow diminishment (all
// grounded in TowerType.generate/Tower.diminish_units_if_dead_or_overflow).
// Resolving a tower's already-queued InboundForces into a capture or a
// repelled attack is deliberately left undone: as dispatchDeployForce's own
// comment notes, every retrieved call site treats that resolution as
// internal to a chunk actor this reference implementation stands in for,
// with no accompanying ground truth for the resolution rule itself. Forces
// accumulate in InboundForces/OutboundForces under this reference
// implementation rather than resolving on an invented rule.
func (w *World) Tick() {
	for _, c := range w.chunks {
		for _, t := range c.towers {
			t.Tick()
		}
	}
}

// DispatchMaintenance applies a single Maintenance message to the chunk
// addressed by id.
func (w *World) DispatchMaintenance(id tower.ChunkId, m Maintenance, sink Sink) {
	switch m.Kind {
	case KillPlayer:
		c := w.chunkFor(id, false)
		if c == nil {
			return
		}
		for _, t := range c.towers {
			if t.PlayerId != nil && *t.PlayerId == m.PlayerId {
				t.Units = tower.Units{}
				t.SetPlayerId(nil)
			}
		}
	case Destroy:
		c := w.chunkFor(id, false)
		if c == nil {
			return
		}
		for _, rel := range m.TowerIds {
			key := relKey(rel)
			delete(c.towers, key)
			delete(c.ids, key)
		}
	}
}
