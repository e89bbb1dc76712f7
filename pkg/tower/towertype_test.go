package tower

import "testing"

func TestLevel_StrictlyAboveDowngrade(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		d, ok := tt.Downgrade()
		if !ok {
			continue
		}
		if tt.Level() <= d.Level() {
			t.Errorf("%s: level %d not above downgrade %s's level %d", tt, tt.Level(), d, d.Level())
		}
	}
}

func TestLevel_StrictlyAbovePrerequisites(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		for _, p := range tt.Prerequisites() {
			if tt.Level() <= p.Type.Level() {
				t.Errorf("%s: level %d not above prerequisite %s's level %d", tt, tt.Level(), p.Type, p.Type.Level())
			}
		}
	}
}

func TestBasis_IsLevelZeroBase(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		b := tt.Basis()
		if b.Level() != 0 {
			t.Errorf("%s: basis %s has level %d, want 0", tt, b, b.Level())
		}
		if _, ok := b.Downgrade(); ok {
			t.Errorf("%s: basis %s still has a downgrade", tt, b)
		}
	}
}

func TestBasis_Idempotent(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		b := tt.Basis()
		if b.Basis() != b {
			t.Errorf("%s: basis %s is not its own basis", tt, b)
		}
	}
}

func TestCanUpgradeTo_MatchesDowngrade(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		d, ok := tt.Downgrade()
		if !ok {
			continue
		}
		if !d.CanUpgradeTo(tt) {
			t.Errorf("%s.CanUpgradeTo(%s) should hold since %s.Downgrade() == %s", d, tt, tt, d)
		}
	}
}

func TestRangedDamage_NeverExceedsInput(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		for _, d := range []uint8{0, 1, 10, 100, InfiniteDamage} {
			if got := tt.RangedDamage(d); got > d {
				t.Errorf("%s.RangedDamage(%d) = %d, exceeds input", tt, d, got)
			}
		}
	}
}

func TestMaxRangedDamage_MatchesInfiniteDamageCase(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		if got, want := tt.MaxRangedDamage(), tt.RangedDamage(InfiniteDamage); got != want {
			t.Errorf("%s: MaxRangedDamage() = %d, want %d", tt, got, want)
		}
	}
}

func TestGenerate_NeverPanicsAndReturnsBaseType(t *testing.T) {
	for hash := 0; hash < 256; hash++ {
		for _, noise := range []float64{-1, -0.5, -0.25, 0, 0.5, 0.999} {
			tt := Generate(uint8(hash), noise)
			if _, ok := tt.Downgrade(); ok {
				t.Fatalf("Generate(%d, %v) = %s, which has a downgrade (not a base type)", hash, noise, tt)
			}
			wantAquatic := noise < aquaticThreshold
			if tt.IsAquatic() != wantAquatic {
				t.Errorf("Generate(%d, %v) = %s, IsAquatic()=%v, want %v", hash, noise, tt, tt.IsAquatic(), wantAquatic)
			}
		}
	}
}

func TestHasPrerequisites_EmptyCountsFailsNonTrivialPrereqs(t *testing.T) {
	var empty [towerTypeCount]uint8
	for _, tt := range AllTowerTypes() {
		if len(tt.Prerequisites()) == 0 {
			continue
		}
		if tt.HasPrerequisites(empty[:]) {
			t.Errorf("%s: HasPrerequisites should fail against all-zero counts", tt)
		}
	}
}

func TestHasPrerequisites_ExactCountsSatisfy(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		var counts [towerTypeCount]uint8
		for _, p := range tt.Prerequisites() {
			counts[p.Type] = p.Count
		}
		if !tt.HasPrerequisites(counts[:]) {
			t.Errorf("%s: HasPrerequisites should hold when counts exactly match requirements", tt)
		}
	}
}

func TestHasPrerequisites_OneShortFails(t *testing.T) {
	for _, tt := range AllTowerTypes() {
		prereqs := tt.Prerequisites()
		if len(prereqs) == 0 {
			continue
		}
		var counts [towerTypeCount]uint8
		for _, p := range prereqs {
			counts[p.Type] = p.Count
		}
		counts[prereqs[0].Type]--
		if tt.HasPrerequisites(counts[:]) {
			t.Errorf("%s: HasPrerequisites should fail when %s is one short", tt, prereqs[0].Type)
		}
	}
}
