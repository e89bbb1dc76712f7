package tower

// RulerShieldBoost is carried over from the original catalog's constant of
// the same name. No operation in this package's ground truth exercises it;
// it is kept for parity in case a future tower-interaction rule needs it.
const RulerShieldBoost = 10

// Tower is the runtime state of a single world cell.
type Tower struct {
	PlayerId *PlayerId
	Units    Units
	TowerType TowerType
	// Delay is ticks remaining until the tower is usable again; zero means
	// no delay. Used to implement the upgrade cooldown.
	Delay uint8
	// InboundForces are forces en route to this tower, in the order they
	// were deployed. Nothing in this module resolves them on arrival; they
	// stay queued.
	InboundForces []Force
	// OutboundForces mirrors the inbound forces of the opposing tower each
	// entry targets. Like InboundForces, entries are only appended, never
	// removed.
	OutboundForces []Force
	// SupplyLine is where the tower sends its units when it can't generate
	// or is overflowing.
	SupplyLine *Path

	// genProgress counts ticks accumulated toward each unit's next
	// generation, indexed by Unit.
	genProgress [unitCount]uint16
}

// NewTower constructs an unmaterialized tower seeded by id's deterministic
// pseudo-random type.
func NewTower(id TowerId) *Tower {
	return WithType(id.TowerType())
}

// WithType constructs an empty, unowned tower of the given type.
func WithType(t TowerType) *Tower {
	return &Tower{TowerType: t}
}

// Active reports whether the tower should perform its actions besides
// moving forces. Inactive towers don't generate units, provide increased
// sensors, or count toward upgrade prerequisites.
func (t *Tower) Active() bool {
	return t.Delay == 0
}

// CanDestroy reports whether the tower is eligible for destruction: no
// inbound forces, and no owner.
func (t *Tower) CanDestroy() bool {
	return len(t.InboundForces) == 0 && t.PlayerId == nil
}

// IterRulers calls f once per PlayerId whose Ruler is at, or arriving at,
// this tower.
func (t *Tower) IterRulers(f func(PlayerId)) {
	if t.PlayerId != nil && t.Units.HasRuler() {
		f(*t.PlayerId)
	}
	for _, force := range t.InboundForces {
		if force.Units.HasRuler() {
			f(force.PlayerId)
		}
	}
}

// ForceUnits returns the subset of held units that can be deployed in a
// force: every mobile unit, i.e. everything but Shield.
func (t *Tower) ForceUnits() Units {
	var ret Units
	t.Units.Iter(func(unit Unit, count uint8) {
		if !unit.IsMobile(&t.TowerType) {
			return
		}
		ret.Add(unit, count)
	})
	return ret
}

// TakeForceUnits removes and returns every mobile unit held.
func (t *Tower) TakeForceUnits() Units {
	ret := t.ForceUnits()
	ret.Iter(func(unit Unit, count uint8) {
		subtracted := t.Units.Subtract(unit, count)
		assert(subtracted == count, "take force units: subtracted less than held")
	})
	return ret
}

// DiminishUnitsIfDeadOrOverflow decrements one unit of every kind whose
// count exceeds capacity, or every kind at all if the tower has no owner,
// and returns how many mobile units were lost.
func (t *Tower) DiminishUnitsIfDeadOrOverflow() int {
	lost := 0
	for _, unit := range AllUnits() {
		if t.PlayerId == nil || t.Units.Available(unit) > t.Units.Capacity(unit, &t.TowerType) {
			subtracted := t.Units.Subtract(unit, 1)
			if unit.IsMobile(&t.TowerType) {
				lost += int(subtracted)
			}
		}
	}
	return lost
}

// UnitGeneration returns the period, in ticks, at which this tower
// produces unit, accounting for the fact that a tower occupied by a Ruler
// suspends generation of everything but Shield.
func (t *Tower) UnitGeneration(unit Unit) (uint16, bool) {
	if unit != Shield && t.Units.HasRuler() {
		return 0, false
	}
	return t.TowerType.UnitGeneration(unit)
}

// GeneratesMobileUnits reports whether this tower currently produces any
// mobile unit, honoring the Ruler-suppresses-generation rule above.
func (t *Tower) GeneratesMobileUnits() bool {
	for _, unit := range AllUnits() {
		if !unit.IsMobile(&t.TowerType) {
			continue
		}
		if _, ok := t.UnitGeneration(unit); ok {
			return true
		}
	}
	return false
}

// ReconcileUnits clamps held units to capacity, given current ownership.
func (t *Tower) ReconcileUnits() {
	t.Units.Reconcile(t.TowerType, t.PlayerId != nil)
}

// Tick advances this tower by one simulation tick: counting down any
// upgrade delay (during which nothing else happens), then accumulating
// generation progress for every unit this tower currently generates and
// producing one whenever its period elapses, then clamping to capacity via
// ReconcileUnits and bleeding off one unit of every dead-or-overflowing kind
// via DiminishUnitsIfDeadOrOverflow. Resolving
// forces that have already arrived in InboundForces is not this method's
// concern: see the chunk package's own Tick for why that stays unimplemented
// here.
func (t *Tower) Tick() {
	if t.Delay > 0 {
		t.Delay--
		return
	}
	for _, unit := range AllUnits() {
		period, ok := t.UnitGeneration(unit)
		if !ok || period == 0 {
			continue
		}
		t.genProgress[unit]++
		if t.genProgress[unit] >= period {
			t.genProgress[unit] = 0
			t.Units.Add(unit, 1)
		}
	}
	t.ReconcileUnits()
	t.DiminishUnitsIfDeadOrOverflow()
}

// SetPlayerId must be called instead of mutating PlayerId directly: it
// clears the supply line on loss of ownership and enforces the invariant
// that a tower never holds a Ruler or Shield while unowned.
func (t *Tower) SetPlayerId(next *PlayerId) {
	assert(!samePlayer(t.PlayerId, next), "set player id: no-op transition")
	switch {
	case t.PlayerId == nil && next != nil:
		assert(t.SupplyLine == nil, "set player id: gaining owner with a supply line set")
		assert(!t.Units.Contains(Ruler), "set player id: gaining owner while holding a ruler")
		assert(!t.Units.Contains(Shield), "set player id: gaining owner while holding a shield")
	case t.PlayerId != nil:
		t.SupplyLine = nil
		assert(!t.Units.Contains(Ruler), "set player id: losing owner while holding a ruler")
		assert(!t.Units.Contains(Shield), "set player id: losing owner while holding a shield")
	default:
		panic("set player id: unreachable None -> None transition")
	}
	t.PlayerId = next
}

func samePlayer(a, b *PlayerId) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func assert(cond bool, msg string) {
	if !cond {
		panic("tower: invariant violated: " + msg)
	}
}
