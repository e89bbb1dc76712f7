package tower

import (
	"math"
	"sync"
)

// TowerType is a closed enumeration of every kind of tower a chunk can hold.
// Like Unit, it is small and closed, so metadata lives in const-shaped
// package tables indexed by the discriminant rather than behind a trait
// object or a generated accessor method per field.
type TowerType uint8

const (
	Airfield TowerType = iota
	Armory
	Artillery
	Barracks
	Buoy
	Bunker
	Capitol
	Centrifuge
	City
	Cliff
	Dock
	Drydock
	Ews
	Factory
	Generator
	Headquarters
	Helipad
	Icbm
	Lab
	Laser
	Launcher
	Lighthouse
	Metropolis
	Mine
	Minefield
	Projector
	Quarry
	Radar
	Rampart
	Reactor
	Refinery
	Rig
	Rocket
	Runway
	Satellite
	Silo
	Town
	Village
	towerTypeCount
)

// noDowngrade marks a base tower type: one with no tower type it upgrades
// from.
const noDowngrade TowerType = towerTypeCount

// TowerTypeCount is the number of distinct tower types in the catalog,
// exported so callers can size a TowerType-indexed array (e.g. a player's
// tower_counts) without depending on the unexported sentinel.
const TowerTypeCount = int(towerTypeCount)

func (t TowerType) String() string {
	if int(t) < len(towerTypeNames) {
		return towerTypeNames[t]
	}
	return "unknown"
}

var towerTypeNames = [towerTypeCount]string{
	Airfield: "Airfield", Armory: "Armory", Artillery: "Artillery",
	Barracks: "Barracks", Buoy: "Buoy", Bunker: "Bunker", Capitol: "Capitol",
	Centrifuge: "Centrifuge", City: "City", Cliff: "Cliff", Dock: "Dock",
	Drydock: "Drydock", Ews: "Ews", Factory: "Factory", Generator: "Generator",
	Headquarters: "Headquarters", Helipad: "Helipad", Icbm: "Icbm", Lab: "Lab",
	Laser: "Laser", Launcher: "Launcher", Lighthouse: "Lighthouse",
	Metropolis: "Metropolis", Mine: "Mine", Minefield: "Minefield",
	Projector: "Projector", Quarry: "Quarry", Radar: "Radar",
	Rampart: "Rampart", Reactor: "Reactor", Refinery: "Refinery", Rig: "Rig",
	Rocket: "Rocket", Runway: "Runway", Satellite: "Satellite", Silo: "Silo",
	Town: "Town", Village: "Village",
}

// AllTowerTypes returns every TowerType variant in declaration order.
func AllTowerTypes() []TowerType {
	out := make([]TowerType, towerTypeCount)
	for i := range out {
		out[i] = TowerType(i)
	}
	return out
}

type prereq struct {
	target TowerType
	count  uint8
}

type capEntry struct {
	unit  Unit
	count uint8
}

type genEntry struct {
	unit   Unit
	period uint16
}

type towerDef struct {
	spawnable    bool
	sensorRadius uint16
	scoreWeight  uint8
	downgrade    TowerType
	prereqs      []prereq
	capacity     []capEntry
	generate     []genEntry
}

// defaultSensorRadius, defaultScoreWeight and defaultShieldGenerate mirror
// the catalog's enum-level defaults, applied to every variant unless
// overridden below.
const (
	defaultSensorRadius  uint16 = 12
	defaultScoreWeight   uint8  = 1
	defaultShieldPeriod  uint16 = 5
	defaultRulerCapacity uint8  = 1
)

// table holds per-variant catalog data, grounded on the original's
// macro-attributed enum (sensor_radius, capacity, prerequisite, generate).
// Where a prerequisite list repeats its downgrade target with a different
// count (Capitol/Headquarters, City/Town, Icbm/Silo, Laser/Reactor,
// Metropolis/City, Town/Village), the later, explicit keyword entry wins;
// the downgrade relationship itself only records the target's identity.
var table = [towerTypeCount]towerDef{
	Airfield: {
		spawnable: true,
		downgrade: Runway,
		prereqs:   []prereq{{Runway, 20}, {Factory, 2}, {Radar, 1}},
		capacity:  []capEntry{{Fighter, 4}, {Bomber, 4}, {Soldier, 4}, {Tank, 3}, {Shield, 10}},
		generate:  []genEntry{{Bomber, 30}},
	},
	Armory: {
		spawnable: true,
		downgrade: Barracks,
		prereqs:   []prereq{{Barracks, 25}, {Factory, 1}, {Mine, 1}},
		capacity:  []capEntry{{Soldier, 4}, {Tank, 5}, {Shield, 15}},
		generate:  []genEntry{{Tank, 15}},
	},
	Artillery: {
		downgrade: Bunker,
		prereqs:   []prereq{{Bunker, 40}, {Refinery, 2}, {Radar, 3}},
		capacity:  []capEntry{{Shell, 3}, {Shield, 20}},
		generate:  []genEntry{{Shell, 15}},
	},
	Barracks: {
		spawnable: true,
		downgrade: noDowngrade,
		capacity:  []capEntry{{Soldier, 12}, {Tank, 2}, {Shield, 10}},
		generate:  []genEntry{{Soldier, 6}},
	},
	Buoy: {
		downgrade: noDowngrade,
		capacity:  []capEntry{{Shield, 1}},
	},
	Bunker: {
		downgrade: Mine,
		prereqs:   []prereq{{Mine, 30}, {Headquarters, 1}, {Ews, 1}},
		capacity:  []capEntry{{Soldier, 6}, {Shield, 40}},
	},
	Capitol: {
		downgrade: Headquarters,
		prereqs:   []prereq{{Headquarters, 40}, {Bunker, 10}, {Headquarters, 15}, {Projector, 20}},
		capacity:  []capEntry{{Soldier, 8}, {Tank, 2}, {Shield, 60}},
		generate:  []genEntry{{Shield, 3}},
	},
	Centrifuge: {
		downgrade: Factory,
		prereqs:   []prereq{{Factory, 30}, {Mine, 3}},
		capacity:  []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 15}},
	},
	City: {
		scoreWeight: 5,
		downgrade:   Town,
		prereqs:     []prereq{{Town, 30}, {Quarry, 2}, {Reactor, 1}, {Town, 3}},
		capacity:    []capEntry{{Fighter, 2}, {Soldier, 6}, {Tank, 2}, {Shield, 15}},
	},
	Cliff: {
		downgrade: noDowngrade,
		capacity:  []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 30}},
	},
	Dock: {
		downgrade: Lighthouse,
		prereqs:   []prereq{{Lighthouse, 30}, {Factory, 3}},
		capacity:  []capEntry{{Frigate, 4}, {Shield, 15}},
		generate:  []genEntry{{Frigate, 20}},
	},
	Drydock: {
		downgrade: Dock,
		prereqs:   []prereq{{Dock, 60}, {Quarry, 1}, {Refinery, 2}},
		capacity:  []capEntry{{Frigate, 3}, {Submarine, 3}, {Shield, 15}},
		generate:  []genEntry{{Submarine, 30}},
	},
	Ews: {
		sensorRadius: 20,
		downgrade:    Radar,
		prereqs:      []prereq{{Radar, 30}, {Generator, 2}},
		capacity:     []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 15}},
	},
	Factory: {
		scoreWeight: 2,
		downgrade:   noDowngrade,
		capacity:    []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 10}},
	},
	Generator: {
		downgrade: noDowngrade,
		capacity:  []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 10}},
	},
	Headquarters: {
		downgrade: Village,
		prereqs:   []prereq{{Village, 20}, {Radar, 1}},
		capacity:  []capEntry{{Soldier, 8}, {Tank, 2}, {Shield, 40}},
	},
	Helipad: {
		spawnable: true,
		downgrade: Airfield,
		prereqs:   []prereq{{Airfield, 20}, {Armory, 2}, {Factory, 3}},
		capacity:  []capEntry{{Chopper, 3}, {Soldier, 4}, {Tank, 2}, {Shield, 15}},
		generate:  []genEntry{{Chopper, 30}},
	},
	Icbm: {
		sensorRadius: 48,
		downgrade:    Silo,
		prereqs:      []prereq{{Silo, 40}, {City, 25}, {Silo, 15}, {Rocket, 15}},
		capacity:     []capEntry{{Shield, 40}},
		generate:     []genEntry{{Shield, 3}},
	},
	Lab: {
		scoreWeight: 2,
		downgrade:   Rig,
		prereqs:     []prereq{{Rig, 60}, {Reactor, 1}, {Radar, 1}, {Drydock, 1}},
		capacity:    []capEntry{{Shield, 30}},
	},
	Laser: {
		sensorRadius: 48,
		downgrade:    Reactor,
		prereqs:      []prereq{{Reactor, 40}, {City, 25}, {Reactor, 15}, {Satellite, 15}},
		capacity:     []capEntry{{Shield, 40}},
		generate:     []genEntry{{Shield, 3}},
	},
	Launcher: {
		downgrade: Radar,
		prereqs:   []prereq{{Radar, 30}, {Runway, 3}},
		capacity:  []capEntry{{Emp, 1}, {Shield, 15}},
		generate:  []genEntry{{Emp, 80}},
	},
	Lighthouse: {
		sensorRadius: 8,
		downgrade:    noDowngrade,
		capacity:     []capEntry{{Frigate, 1}, {Shield, 10}},
	},
	Metropolis: {
		scoreWeight: 12,
		downgrade:   City,
		prereqs:     []prereq{{City, 40}, {City, 10}, {Town, 15}, {Village, 20}},
		capacity:    []capEntry{{Fighter, 2}, {Soldier, 6}, {Tank, 2}, {Shield, 20}},
	},
	Mine: {
		scoreWeight: 2,
		downgrade:   noDowngrade,
		capacity:    []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 15}},
	},
	Minefield: {
		downgrade: Buoy,
		prereqs:   []prereq{{Buoy, 15}, {Factory, 1}},
		capacity:  []capEntry{{Shield, 20}},
		generate:  []genEntry{{Shield, 3}},
	},
	Projector: {
		downgrade: Centrifuge,
		prereqs:   []prereq{{Centrifuge, 20}, {Rampart, 2}, {Reactor, 2}},
		capacity:  []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 10}},
		generate:  []genEntry{{Shield, 3}},
	},
	Quarry: {
		scoreWeight: 2,
		downgrade:   Cliff,
		prereqs:     []prereq{{Cliff, 20}, {Village, 1}},
		capacity:    []capEntry{{Soldier, 6}, {Tank, 2}, {Shield, 10}},
	},
	Radar: {
		sensorRadius: 16,
		downgrade:    noDowngrade,
		capacity:     []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 10}},
	},
	Rampart: {
		downgrade: Cliff,
		prereqs:   []prereq{{Cliff, 20}, {Barracks, 2}},
		capacity:  []capEntry{{Soldier, 8}, {Shield, 45}},
		generate:  []genEntry{{Shield, 3}},
	},
	Reactor: {
		downgrade: Generator,
		prereqs:   []prereq{{Generator, 40}, {Centrifuge, 1}},
		capacity:  []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 10}},
	},
	Refinery: {
		scoreWeight: 3,
		downgrade:   Factory,
		prereqs:     []prereq{{Factory, 20}, {Generator, 3}, {Cliff, 1}},
		capacity:    []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 5}},
	},
	Rig: {
		scoreWeight: 3,
		downgrade:   Buoy,
		prereqs:     []prereq{{Buoy, 30}, {Refinery, 1}, {Dock, 2}},
		capacity:    []capEntry{{Chopper, 2}, {Frigate, 1}, {Shield, 10}},
	},
	Rocket: {
		downgrade: Launcher,
		prereqs:   []prereq{{Launcher, 20}, {Refinery, 1}},
		capacity:  []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 15}},
	},
	Runway: {
		spawnable: true,
		downgrade: noDowngrade,
		capacity:  []capEntry{{Fighter, 4}, {Soldier, 4}, {Tank, 2}, {Shield, 5}},
		generate:  []genEntry{{Fighter, 30}},
	},
	Satellite: {
		sensorRadius: 30,
		downgrade:    Ews,
		prereqs:      []prereq{{Ews, 40}, {Rocket, 2}, {Generator, 5}},
		capacity:     []capEntry{{Soldier, 4}, {Tank, 2}, {Shield, 15}},
	},
	Silo: {
		downgrade: Quarry,
		prereqs:   []prereq{{Quarry, 40}, {Centrifuge, 2}, {Rocket, 1}},
		capacity:  []capEntry{{Nuke, 1}, {Soldier, 4}, {Tank, 1}, {Shield, 20}},
		generate:  []genEntry{{Nuke, 120}},
	},
	Town: {
		scoreWeight: 2,
		downgrade:   Village,
		prereqs:     []prereq{{Village, 20}, {Generator, 1}, {Village, 3}},
		capacity:    []capEntry{{Fighter, 1}, {Soldier, 4}, {Tank, 1}, {Shield, 10}},
	},
	Village: {
		downgrade: noDowngrade,
		capacity:  []capEntry{{Soldier, 4}, {Shield, 5}},
	},
}

// IsLarge reports whether this tower type occupies a scaled-up footprint.
func (t TowerType) IsLarge() bool {
	switch t {
	case Capitol, Icbm, Laser, Metropolis:
		return true
	default:
		return false
	}
}

// IsAquatic reports whether this tower type must be placed on water.
func (t TowerType) IsAquatic() bool {
	switch t {
	case Lighthouse, Buoy, Rig, Dock, Drydock:
		return true
	default:
		return false
	}
}

// Scale returns 2 for large tower types, 1 otherwise.
func (t TowerType) Scale() uint8 {
	if t.IsLarge() {
		return 2
	}
	return 1
}

// Downgrade returns the tower type this one upgrades from, if any.
func (t TowerType) Downgrade() (TowerType, bool) {
	d := table[t].downgrade
	if d == noDowngrade {
		return 0, false
	}
	return d, true
}

// CanUpgradeTo reports whether t is other's downgrade: i.e. an upgrade from
// t reaches other directly.
func (t TowerType) CanUpgradeTo(other TowerType) bool {
	d, ok := other.Downgrade()
	return ok && d == t
}

// Upgrades returns every tower type t can upgrade directly to.
func (t TowerType) Upgrades() []TowerType {
	var out []TowerType
	for _, other := range AllTowerTypes() {
		if t.CanUpgradeTo(other) {
			out = append(out, other)
		}
	}
	return out
}

// Prerequisite returns the count of other required among a player's towers
// before t can be spawned or upgraded to.
func (t TowerType) Prerequisite(other TowerType) uint8 {
	var count uint8
	for _, p := range table[t].prereqs {
		if p.target == other {
			count = p.count
		}
	}
	return count
}

// Prerequisites returns every (tower type, count) pair t requires.
func (t TowerType) Prerequisites() []struct {
	Type  TowerType
	Count uint8
} {
	seen := map[TowerType]uint8{}
	var order []TowerType
	for _, p := range table[t].prereqs {
		if _, ok := seen[p.target]; !ok {
			order = append(order, p.target)
		}
		seen[p.target] = p.count
	}
	out := make([]struct {
		Type  TowerType
		Count uint8
	}, 0, len(order))
	for _, tt := range order {
		out = append(out, struct {
			Type  TowerType
			Count uint8
		}{tt, seen[tt]})
	}
	return out
}

// HasPrerequisites reports whether towerCounts (indexed by TowerType, sized
// at least TowerTypeCount) meets every requirement t has.
func (t TowerType) HasPrerequisites(towerCounts []uint8) bool {
	for _, p := range t.Prerequisites() {
		if int(p.Type) >= len(towerCounts) || towerCounts[p.Type] < p.Count {
			return false
		}
	}
	return true
}

// Spawnable reports whether players may place a new tower of this type
// directly (as opposed to only reaching it via upgrades).
func (t TowerType) Spawnable() bool {
	return table[t].spawnable
}

// ScoreWeight returns the contribution this tower type makes to its owner's
// score.
func (t TowerType) ScoreWeight() uint8 {
	if w := table[t].scoreWeight; w != 0 {
		return w
	}
	return defaultScoreWeight
}

// SensorRadius returns the tower's visibility radius, in world units.
func (t TowerType) SensorRadius() uint16 {
	if r := table[t].sensorRadius; r != 0 {
		return r
	}
	return defaultSensorRadius
}

// capacity returns the max count of unit this tower type can hold.
func (t TowerType) capacity(unit Unit) uint8 {
	if unit == Ruler {
		return defaultRulerCapacity
	}
	for _, c := range table[t].capacity {
		if c.unit == unit {
			return c.count
		}
	}
	return 0
}

// UnitGeneration returns the period, in ticks, at which this tower type
// produces unit, if it produces it at all.
func (t TowerType) UnitGeneration(unit Unit) (uint16, bool) {
	for _, g := range table[t].generate {
		if g.unit == unit {
			return g.period, true
		}
	}
	if unit == Shield {
		return defaultShieldPeriod, true
	}
	return 0, false
}

// GeneratesMobileUnits reports whether this tower type ever produces a unit
// that can be deployed in a force.
func (t TowerType) GeneratesMobileUnits() bool {
	for _, u := range AllUnits() {
		if !u.IsMobile(&t) {
			continue
		}
		if _, ok := t.UnitGeneration(u); ok {
			return true
		}
	}
	return false
}

// RangedDistance returns the max edge distance of this tower type's
// generated unit, if that unit is itself a ranged weapon.
func (t TowerType) RangedDistance() (uint32, bool) {
	for _, u := range AllUnits() {
		period, generated := t.UnitGeneration(u)
		if !generated || period == 0 {
			continue
		}
		if d, ok := u.RangedDistance(); ok {
			return d, true
		}
	}
	return 0, false
}

// RangedDamage returns the damage a tower of this type takes from a ranged
// attack dealing damage.
func (t TowerType) RangedDamage(damage uint8) uint8 {
	switch t {
	case Bunker, Capitol:
		return damage / 3
	case Headquarters, Icbm, Laser:
		return damage * 2 / 3
	case Lab:
		return damage / 2
	default:
		return damage
	}
}

// MaxRangedDamage returns the worst-case damage this tower type takes from a
// ranged attack.
func (t TowerType) MaxRangedDamage() uint8 {
	return t.RangedDamage(InfiniteDamage)
}

var (
	levelOnce  sync.Once
	levelTable [towerTypeCount]int
)

func computeLevels() {
	var visit func(t TowerType) int
	memo := map[TowerType]int{}
	visiting := map[TowerType]bool{}
	visit = func(t TowerType) int {
		if l, ok := memo[t]; ok {
			return l
		}
		if visiting[t] {
			// The catalog is acyclic by construction; this only guards
			// against a future data-entry mistake.
			return 0
		}
		visiting[t] = true
		max := -1
		for _, p := range t.Prerequisites() {
			if l := visit(p.Type); l > max {
				max = l
			}
		}
		if d, ok := t.Downgrade(); ok {
			if l := visit(d); l > max {
				max = l
			}
		}
		level := max + 1
		memo[t] = level
		visiting[t] = false
		return level
	}
	for _, t := range AllTowerTypes() {
		levelTable[t] = visit(t)
	}
}

// Level returns this tower type's zero-indexed depth in the upgrade
// lattice: every tower type has a strictly higher level than its downgrade
// and every one of its prerequisites.
func (t TowerType) Level() int {
	levelOnce.Do(computeLevels)
	return levelTable[t]
}

// Basis returns the lowest-level (base, level-zero) tower type reachable by
// repeatedly downgrading t. A basis is not necessarily Spawnable.
func (t TowerType) Basis() TowerType {
	for {
		d, ok := t.Downgrade()
		if !ok {
			return t
		}
		t = d
	}
}

// MaxRange returns the world-unit-converted sensor radius of the
// farthest-seeing tower type, used as a fallback path-length bound for
// units with no intrinsic ranged distance.
func MaxRange() uint32 {
	var max uint16
	for _, t := range AllTowerTypes() {
		if r := t.SensorRadius(); r > max {
			max = r
		}
	}
	return uint32(math.Ceil(float64(max) / float64(towerIdConversion)))
}

const aquaticThreshold = -0.25

// Generate deterministically picks a tower type for procedural world
// generation from an unsigned hash byte and a terrain noise sample. The
// base/aquatic filter always keeps at least one candidate given the
// catalog above, so in practice this never panics.
func Generate(hash uint8, noise float64) TowerType {
	wantAquatic := noise < aquaticThreshold
	var candidates []TowerType
	for _, t := range AllTowerTypes() {
		if _, hasDowngrade := t.Downgrade(); hasDowngrade {
			continue
		}
		if t.IsAquatic() != wantAquatic {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		panic("generate: no base tower type for the requested aquatic biome")
	}
	return candidates[int(hash)%len(candidates)]
}
