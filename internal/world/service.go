// Package world implements the player-facing operations of the
// simulation: spawning, alliances, force deployment, supply lines, tower
// upgrades, player death, and territory shrinkage. It is the facade that
// maps a TowerId to the chunk that owns it and dispatches the
// corresponding message, following the original's world.rs almost
// one-to-one.
package world

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashfall-games/towers/internal/chunk"
	"github.com/ashfall-games/towers/internal/player"
	"github.com/ashfall-games/towers/pkg/tower"
)

// maxSpawnTries bounds the spawn_player search loop: if no spawnable cell
// is found within this many attempts, spawning fails outright rather than
// looping forever.
const maxSpawnTries = 100_000

// spawnSearchArea is the initial search area, in towers squared, the spawn
// search radius is derived from.
const spawnSearchArea = 100

// ActivityChecker reports whether a player is currently active (connected
// and not idle-timed-out). Alliance formation requires both parties to be
// active; this is an external collaborator (the original's "regulator"),
// supplied by whatever owns network presence, which is out of scope here.
type ActivityChecker interface {
	Active(id tower.PlayerId) bool
}

// alwaysActive is the default ActivityChecker when none is supplied: every
// player is considered active, which is the right behavior for a world run
// without a presence layer (tests, single-process embedding).
type alwaysActive struct{}

func (alwaysActive) Active(tower.PlayerId) bool { return true }

// Service is the facade over the chunk dispatcher and player repository
// that implements every player-initiated operation.
type Service struct {
	Chunks   *chunk.World
	Players  *player.Repo
	Activity ActivityChecker
	Rand     *rand.Rand
	Log      zerolog.Logger

	// Center is the world's reference point for connectivity direction
	// and spawn-radius sampling.
	Center tower.TowerId
	// Bounds is the world's coordinate extent, used to size shrink's
	// locked-tower set and to clamp spawn candidates.
	Bounds tower.TowerRectangle

	// BotSpawnBubbleRadius is the spawn-bubble radius, in cells, used for
	// bot-controlled players; sourced from config.Config.SpawnBotBubbleRadius
	// so the debug/release asymmetry hook is actually reachable.
	BotSpawnBubbleRadius uint16

	// Info receives every chunk info event raised by this Service's
	// dispatches. A nil Info behaves like a no-op sink; set it to observe
	// PlayerKilled events from outside the package.
	Info InfoSink
	// Debug gates assertingSink's panic: set from config.Config.Debug so a
	// debug build still catches an operation raising an event its ground
	// truth asserts it never should, without taking down a release build.
	Debug bool
}

// defaultBotSpawnBubbleRadius mirrors config.Config's own fallback, used
// when NewService is called without a configured radius (e.g. in tests).
const defaultBotSpawnBubbleRadius uint16 = 35

// NewService constructs a Service over a fresh chunk dispatcher and player
// repository, sized to worldSize x worldSize cells.
func NewService(worldSize uint32, log zerolog.Logger) *Service {
	return NewServiceWithBotSpawnBubbleRadius(worldSize, defaultBotSpawnBubbleRadius, log)
}

// NewServiceWithBotSpawnBubbleRadius is NewService, but with the bot
// spawn-bubble radius threaded in from config.Config.SpawnBotBubbleRadius
// instead of defaulted.
func NewServiceWithBotSpawnBubbleRadius(worldSize uint32, botSpawnBubbleRadius uint16, log zerolog.Logger) *Service {
	center := tower.NewTowerId(worldSize/2, worldSize/2)
	bounds := tower.WithBounds(tower.NewTowerId(0, 0), tower.NewTowerId(worldSize-1, worldSize-1))
	return &Service{
		Chunks:               chunk.NewWorld(),
		Players:              player.NewRepo(),
		Activity:             alwaysActive{},
		Rand:                 rand.New(rand.NewSource(time.Now().UnixNano())),
		Log:                  log,
		Center:               center,
		Bounds:               bounds,
		BotSpawnBubbleRadius: botSpawnBubbleRadius,
	}
}

func (s *Service) clampToBounds(id tower.TowerId) tower.TowerId {
	x, y := id.X, id.Y
	if x < s.Bounds.Min.X {
		x = s.Bounds.Min.X
	}
	if x > s.Bounds.Max.X {
		x = s.Bounds.Max.X
	}
	if y < s.Bounds.Min.Y {
		y = s.Bounds.Min.Y
	}
	if y > s.Bounds.Max.Y {
		y = s.Bounds.Max.Y
	}
	return tower.NewTowerId(x, y)
}

// SpawnPlayer finds a spawnable cell near the world center and places
// player_id's Ruler there, with a nonempty spawn bubble of surrounding
// cells pre-generated and the spawned cell's immediate neighbors cleared
// of zombie leftovers.
func (s *Service) SpawnPlayer(playerId tower.PlayerId) error {
	h, ok := s.Players.BorrowPlayerMut(playerId)
	if !ok {
		return ErrPlayerNotInGame
	}
	p := h.Get()
	if p.Alive {
		h.Release()
		return ErrAlreadyAlive
	}

	governor := maxSpawnTries
	searchRadius := uint16(sqrtFloat(spawnSearchArea / mathPi))

	var found tower.TowerId
	ok = false
	for governor > 0 {
		governor--

		offsetX, offsetY := uniformInDisc(s.Rand, float64(searchRadius))
		candidate := s.clampToBounds(tower.NewTowerId(
			uint32(int64(s.Center.X)+int64(offsetX)),
			uint32(int64(s.Center.Y)+int64(offsetY)),
		))

		if s.isSpawnable(candidate) {
			found = candidate
			ok = true
			break
		}

		if governor%8 == 0 {
			searchRadius++
		}
	}

	if !ok {
		h.Release()
		return ErrNoSpawnableTower
	}

	p.Alive = true
	p.Lifetime = 0
	p.DeathReason = player.DeathReasonNone
	p.Score = 0
	p.Alerts = tower.Alerts(0)
	p.TowerCounts = [tower.TowerTypeCount]uint8{}
	p.Towers = tower.NewTowerSet()
	h.Release()

	var ids []tower.TowerId
	seen := map[tower.TowerId]struct{}{}
	s.spawnBubble(found, playerId, func(id tower.TowerId) {
		s.traverse(seen, &ids, id)
	})
	s.generate(ids)

	chunkID, rel := found.Split()
	s.Chunks.DispatchInput(chunkID, chunk.Input{Kind: chunk.Spawn, TowerId: rel, PlayerId: playerId}, s.assertingSink("spawn_player", s.infoSink()))

	for _, n := range found.Neighbors() {
		nChunk, nRel := n.Split()
		s.Chunks.DispatchInput(nChunk, chunk.Input{Kind: chunk.ClearZombies, TowerId: nRel}, s.assertingSink("spawn_player", s.infoSink()))
	}

	s.incrementTowerCount(playerId, found)

	s.Log.Info().Uint32("player", uint32(playerId)).Uint32("x", found.X).Uint32("y", found.Y).
		Int("tries", maxSpawnTries-governor).Msg("player spawned")
	return nil
}

// incrementTowerCount records one more tower of towerId's current type
// toward playerId's upgrade-prerequisite tally. A no-op if playerId isn't a
// known player.
func (s *Service) incrementTowerCount(playerId tower.PlayerId, towerId tower.TowerId) {
	t, ok := s.Chunks.Get(towerId)
	if !ok {
		return
	}
	h, ok := s.Players.BorrowPlayerMut(playerId)
	if !ok {
		return
	}
	p := h.Get()
	p.TowerCounts[t.TowerType]++
	p.Towers.Insert(towerId)
	h.Release()
}

// traverse walks from id toward world center, stopping as soon as it
// reaches an already-materialized cell, recording every virtual cell
// visited along the way.
func (s *Service) traverse(seen map[tower.TowerId]struct{}, ids *[]tower.TowerId, id tower.TowerId) {
	for !s.Chunks.Contains(id) {
		if _, ok := seen[id]; ok {
			break
		}
		seen[id] = struct{}{}
		*ids = append(*ids, id)

		d, ok := id.Connectivity(s.Center)
		if !ok {
			break
		}
		next, ok := id.ConnectivityId(d)
		if !ok {
			break
		}
		id = next
	}
}

// destroy removes every tower in ids via a single Destroy message per
// chunk touched.
func (s *Service) destroy(ids []tower.TowerId) {
	for _, g := range group(ids) {
		s.Chunks.DispatchMaintenance(g.ChunkId, chunk.Maintenance{Kind: chunk.Destroy, TowerIds: g.TowerIds}, s.assertingSink("destroy", s.infoSink()))
	}
}

// generate materializes every virtual cell in ids via a single Generate
// message per chunk touched.
func (s *Service) generate(ids []tower.TowerId) {
	for _, g := range group(ids) {
		s.Chunks.DispatchInput(g.ChunkId, chunk.Input{Kind: chunk.Generate, GenerateAt: g.TowerIds}, s.assertingSink("generate", s.infoSink()))
	}
}

// Alliance proposes (or breaks) an alliance between player_id and with.
// Forming an alliance is one-directional until mirrored: player_id's offer
// only becomes a mutual alliance once with has already offered one back.
// Breaking is always mutual immediately. MadeAlliance is defined on
// AlertFlag for catalog parity but, matching the ground truth, is never
// set here.
func (s *Service) Alliance(playerId, with tower.PlayerId, breakAlliance bool) error {
	if !s.Players.Contains(playerId) || !s.Players.Contains(with) {
		return ErrNonexistentPlayer
	}
	if !(s.Activity.Active(playerId) && s.Activity.Active(with)) {
		return ErrAllianceWithInactive
	}

	pHandle, _ := s.Players.BorrowPlayer(playerId)
	alreadyOffered := pHandle.Get().IsAlly(with)
	pHandle.Release()

	wHandle, _ := s.Players.BorrowPlayer(with)
	reverseOffered := wHandle.Get().IsAlly(playerId)
	wHandle.Release()

	if breakAlliance {
		s.Players.ApplyInput(playerId, player.Input{Kind: player.RemoveAllyInput, With: with})
		s.Players.ApplyInput(with, player.Input{Kind: player.RemoveAllyInput, With: playerId})
		return nil
	}

	if reverseOffered && !alreadyOffered {
		s.Players.ApplyInput(playerId, player.Input{Kind: player.NewAlliance, With: with})
		s.Players.ApplyInput(with, player.Input{Kind: player.NewAlliance, With: playerId})
	}
	s.Players.ApplyInput(playerId, player.Input{Kind: player.AddAllyInput, With: with})
	return nil
}

// DeployForce moves tower_id's deployable units along path, provided
// player_id controls tower_id and path is valid.
func (s *Service) DeployForce(playerId tower.PlayerId, towerId tower.TowerId, nodes []tower.TowerId) error {
	t, ok := s.Chunks.Get(towerId)
	if !ok {
		return ErrNoTower
	}
	if t.PlayerId == nil || *t.PlayerId != playerId {
		return ErrNotController
	}

	strength := t.ForceUnits()
	if strength.IsEmpty() {
		return ErrEmptyForce
	}

	maxEdgeDistance, _ := strength.MaxEdgeDistance()
	path, err := tower.ValidatePath(nodes, s.Chunks, towerId, &maxEdgeDistance)
	if err != nil {
		return err
	}

	if !playerId.Bot() {
		h, ok := s.Players.BorrowPlayerMut(playerId)
		if !ok {
			return ErrNonexistentPlayer
		}
		h.Get().Alerts.Set(tower.DeployedAnyForce)
		h.Release()
	}

	chunkID, rel := towerId.Split()
	s.Chunks.DispatchInput(chunkID, chunk.Input{Kind: chunk.DeployForce, TowerId: rel, Path: &path}, s.assertingSink("deploy_force", s.infoSink()))
	return nil
}

// SetSupplyLine sets (or, with nodes == nil, clears) tower_id's standing
// supply route.
func (s *Service) SetSupplyLine(playerId tower.PlayerId, towerId tower.TowerId, nodes []tower.TowerId) error {
	t, ok := s.Chunks.Get(towerId)
	if !ok {
		return ErrNoTower
	}
	if t.PlayerId == nil || *t.PlayerId != playerId {
		return ErrNotController
	}
	if !t.GeneratesMobileUnits() {
		return ErrInvalidSupplyLine
	}

	var pathPtr *tower.Path
	if nodes != nil {
		maxEdgeDistance, hasLimit := t.TowerType.RangedDistance()
		var limit *uint32
		if hasLimit {
			limit = &maxEdgeDistance
		}
		path, err := tower.ValidatePath(nodes, s.Chunks, towerId, limit)
		if err != nil {
			return err
		}
		// Setting the same supply line that's already active toggles it
		// off instead of leaving it unchanged.
		if t.SupplyLine == nil || !pathsEqual(*t.SupplyLine, path) {
			pathPtr = &path
		}
	}

	if !playerId.Bot() {
		h, ok := s.Players.BorrowPlayerMut(playerId)
		if !ok {
			return ErrNonexistentPlayer
		}
		if pathPtr != nil {
			h.Get().Alerts.Set(tower.SetAnySupplyLine)
		} else {
			h.Get().Alerts.Set(tower.UnsetAnySupplyLine)
		}
		h.Release()
	}

	chunkID, rel := towerId.Split()
	s.Chunks.DispatchInput(chunkID, chunk.Input{Kind: chunk.SetSupplyLine, TowerId: rel, Path: pathPtr}, s.assertingSink("set_supply_line", s.infoSink()))
	return nil
}

func pathsEqual(a, b tower.Path) bool {
	if len(a.Nodes) != len(b.Nodes) {
		return false
	}
	for i := range a.Nodes {
		if a.Nodes[i] != b.Nodes[i] {
			return false
		}
	}
	return true
}

// UpgradeTower upgrades tower_id to upgrade, or downgrades it straight to
// its basis. Upgrading checks the player's prerequisite tower counts;
// downgrading to the basis never does. Downgrading to any other type is
// rejected as ErrInvalidUpgradePath.
func (s *Service) UpgradeTower(playerId tower.PlayerId, towerId tower.TowerId, upgrade tower.TowerType) error {
	t, ok := s.Chunks.Get(towerId)
	if !ok {
		return ErrNoSuchTower
	}
	if t.PlayerId == nil || *t.PlayerId != playerId {
		return ErrNotOwned
	}
	if !t.Active() {
		return ErrUpgradePending
	}

	h, ok := s.Players.BorrowPlayerMut(playerId)
	if !ok {
		return ErrNonexistentPlayer
	}
	p := h.Get()

	if t.TowerType.CanUpgradeTo(upgrade) {
		if !upgrade.HasPrerequisites(p.TowerCounts[:]) {
			h.Release()
			return ErrMissingPrerequisite
		}
		p.Alerts.Set(tower.UpgradedAnyTower)
	} else if t.TowerType.Basis() != upgrade {
		h.Release()
		return ErrInvalidUpgradePath
	}
	if p.TowerCounts[t.TowerType] > 0 {
		p.TowerCounts[t.TowerType]--
	}
	p.TowerCounts[upgrade]++
	h.Release()

	chunkID, rel := towerId.Split()
	s.Chunks.DispatchInput(chunkID, chunk.Input{Kind: chunk.UpgradeTower, TowerId: rel, TowerType: upgrade}, s.assertingSink("upgrade_tower", s.infoSink()))
	return nil
}

// KillPlayer marks player_id dead and clears their towers from every chunk.
//
// Panics if player_id does not exist: a dead-already player should never
// reach this call, matching the ground truth's unconditional borrow.
func (s *Service) KillPlayer(playerId tower.PlayerId) {
	h, ok := s.Players.BorrowPlayerMut(playerId)
	if !ok {
		panic(fmt.Sprintf("kill player: player %d does not exist", playerId))
	}
	h.Get().Alive = false
	h.Release()

	var chunkIds []tower.ChunkId
	s.Chunks.IterChunkIds(func(id tower.ChunkId) { chunkIds = append(chunkIds, id) })
	for _, id := range chunkIds {
		s.Chunks.DispatchMaintenance(id, chunk.Maintenance{Kind: chunk.KillPlayer, PlayerId: playerId}, s.assertingSink("kill_player", s.infoSink()))
	}

	// The player may already be gone from the repository if they left the
	// game the tick before dying (e.g. an idle regulator sweep); that's not
	// an error, just nothing left to notify.
	if !s.Players.Contains(playerId) {
		return
	}

	rh, ok := s.Players.BorrowPlayer(playerId)
	if !ok {
		return
	}
	var allies []tower.PlayerId
	for ally := range rh.Get().Allies {
		allies = append(allies, ally)
	}
	rh.Release()

	for _, ally := range allies {
		if !s.Players.Contains(ally) {
			continue
		}
		s.Players.ApplyMaintenance(ally, player.Maintenance{Kind: player.RemoveDeadAllyInput, DeadAlly: playerId})
	}

	s.Players.ApplyMaintenance(playerId, player.Maintenance{Kind: player.Died, DeathKind: player.DeathReasonKilled})

	wh, ok := s.Players.BorrowPlayerMut(playerId)
	if ok {
		wh.Get().TowerCounts = [tower.TowerTypeCount]uint8{}
		wh.Get().Towers = tower.NewTowerSet()
		wh.Release()
	}

	s.Log.Info().Uint32("player", uint32(playerId)).Msg("player killed")
}

// Shrink destroys every tower that isn't locked by a two-pass reachability
// walk: first, every tower that can't be destroyed (owned, or with
// inbound forces) locks a path toward world center, plus a spawn-bubble
// lock around each ruler it holds; then everything left unlocked is
// destroyed.
func (s *Service) Shrink() {
	// A fresh set bounded by the world's extent: s.Bounds itself must not be
	// reused directly, since its underlying set is long-lived and would
	// otherwise accumulate locked towers across every call instead of
	// starting empty each time.
	locked := tower.WithBounds(s.Bounds.Min, s.Bounds.Max)
	s.Chunks.IterTowers(func(id tower.TowerId, t *tower.Tower) {
		if t.CanDestroy() {
			return
		}
		lockPath(locked, s.Center, id)

		t.IterRulers(func(rulerOwner tower.PlayerId) {
			s.spawnBubble(id, rulerOwner, func(n tower.TowerId) {
				if s.Chunks.Contains(n) {
					lockPath(locked, s.Center, n)
				}
			})
		})
	})

	var destroyIds []tower.TowerId
	s.Chunks.IterTowers(func(id tower.TowerId, t *tower.Tower) {
		if !locked.Contains(id) {
			destroyIds = append(destroyIds, id)
		}
	})

	s.destroy(destroyIds)
	s.Log.Info().Int("destroyed", len(destroyIds)).Msg("world shrunk")
}

// Tick advances the world by one simulation tick: every chunk's towers
// generate, cool down, and bleed off overflow (internal/chunk.World.Tick),
// and every living player's Lifetime counter advances.
func (s *Service) Tick() {
	s.Chunks.Tick()
	s.Players.Iter(func(_ tower.PlayerId, p *player.Player) {
		if p.Alive {
			p.Lifetime++
		}
	})
}

// lockPath inserts id into locked and walks its connectivity chain toward
// center, stopping as soon as it reaches an already-locked (or
// out-of-bounds) cell.
func lockPath(locked tower.TowerRectangle, center, id tower.TowerId) {
	for {
		if locked.Contains(id) {
			return
		}
		if !locked.Insert(id) {
			return
		}
		d, ok := id.Connectivity(center)
		if !ok {
			return
		}
		next, ok := id.ConnectivityId(d)
		if !ok {
			return
		}
		id = next
	}
}
