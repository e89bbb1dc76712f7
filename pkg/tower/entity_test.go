package tower

import "testing"

func TestTower_SetPlayerId_GainOwner(t *testing.T) {
	tw := WithType(Barracks)
	pid := PlayerId(1)
	tw.SetPlayerId(&pid)
	if tw.PlayerId == nil || *tw.PlayerId != pid {
		t.Fatal("expected PlayerId to be set")
	}
}

func TestTower_SetPlayerId_GainOwnerWithRulerPanics(t *testing.T) {
	tw := WithType(Barracks)
	tw.Units.Add(Ruler, 1)
	pid := PlayerId(1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when gaining ownership while holding a Ruler")
		}
	}()
	tw.SetPlayerId(&pid)
}

func TestTower_SetPlayerId_LoseOwnerClearsSupplyLine(t *testing.T) {
	tw := WithType(Barracks)
	pid := PlayerId(1)
	tw.SetPlayerId(&pid)
	tw.SupplyLine = &Path{Nodes: []TowerId{NewTowerId(0, 0)}}
	tw.Units.Add(Soldier, 1)
	tw.SetPlayerId(nil)
	if tw.SupplyLine != nil {
		t.Fatal("expected SupplyLine to be cleared on losing ownership")
	}
}

func TestTower_SetPlayerId_NoopTransitionPanics(t *testing.T) {
	tw := WithType(Barracks)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil -> nil transition")
		}
	}()
	tw.SetPlayerId(nil)
}

func TestTower_DiminishUnitsIfDeadOrOverflow_UnownedZeroesEverything(t *testing.T) {
	tw := WithType(Barracks)
	tw.Units.Add(Soldier, 1)
	for i := 0; i < 5; i++ {
		tw.DiminishUnitsIfDeadOrOverflow()
	}
	if tw.Units.Available(Soldier) != 0 {
		t.Fatalf("Available(Soldier) = %d, want 0 after repeated diminish on an unowned tower", tw.Units.Available(Soldier))
	}
}

func TestTower_DiminishUnitsIfDeadOrOverflow_OwnedWithinCapacityUnaffected(t *testing.T) {
	tw := WithType(Barracks)
	pid := PlayerId(1)
	tw.SetPlayerId(&pid)
	tw.Units.Add(Soldier, 1)
	tw.DiminishUnitsIfDeadOrOverflow()
	if tw.Units.Available(Soldier) != 1 {
		t.Fatalf("Available(Soldier) = %d, want 1 (within capacity, owned)", tw.Units.Available(Soldier))
	}
}

func TestTower_UnitGeneration_RulerSuppressesAllButShield(t *testing.T) {
	tw := WithType(Barracks)
	period, ok := tw.UnitGeneration(Soldier)
	if !ok || period == 0 {
		t.Fatal("Barracks should normally generate Soldier")
	}
	tw.Units.Add(Ruler, 1)
	if _, ok := tw.UnitGeneration(Soldier); ok {
		t.Fatal("a tower holding a Ruler should not generate Soldier")
	}
	if _, ok := tw.UnitGeneration(Shield); !ok {
		t.Fatal("a tower holding a Ruler should still generate Shield")
	}
}

func TestTower_Tick_DelayCountsDownAndSkipsGeneration(t *testing.T) {
	tw := WithType(Barracks)
	tw.Delay = 2
	tw.Tick()
	if tw.Delay != 1 {
		t.Fatalf("Delay = %d, want 1", tw.Delay)
	}
	if tw.Units.Available(Soldier) != 0 {
		t.Fatal("no units should generate while delayed")
	}
}

func TestTower_Tick_GeneratesAfterPeriodTicks(t *testing.T) {
	tw := WithType(Barracks)
	// An unowned tower bleeds off every unit each tick, so generation is
	// only observable on an owned one.
	pid := PlayerId(1)
	tw.SetPlayerId(&pid)
	period, ok := tw.UnitGeneration(Soldier)
	if !ok {
		t.Fatal("expected Barracks to generate Soldier")
	}
	for i := uint16(0); i < period-1; i++ {
		tw.Tick()
	}
	if tw.Units.Available(Soldier) != 0 {
		t.Fatalf("Soldier generated too early: available = %d", tw.Units.Available(Soldier))
	}
	tw.Tick()
	if tw.Units.Available(Soldier) != 1 {
		t.Fatalf("Available(Soldier) after %d ticks = %d, want 1", period, tw.Units.Available(Soldier))
	}
}

func TestTower_ForceUnits_ExcludesShield(t *testing.T) {
	tw := WithType(Barracks)
	tw.Units.Add(Soldier, 3)
	tw.Units.Add(Shield, 4)
	force := tw.ForceUnits()
	if force.Available(Shield) != 0 {
		t.Fatal("ForceUnits should exclude Shield")
	}
	if force.Available(Soldier) != 3 {
		t.Fatalf("ForceUnits' Soldier = %d, want 3", force.Available(Soldier))
	}
}

func TestTower_TakeForceUnits_RemovesFromHeldUnits(t *testing.T) {
	tw := WithType(Barracks)
	tw.Units.Add(Soldier, 3)
	tw.Units.Add(Shield, 4)
	taken := tw.TakeForceUnits()
	if taken.Available(Soldier) != 3 {
		t.Fatalf("taken Soldier = %d, want 3", taken.Available(Soldier))
	}
	if tw.Units.Available(Soldier) != 0 {
		t.Fatal("Soldier should be removed from the tower after TakeForceUnits")
	}
	if tw.Units.Available(Shield) != 4 {
		t.Fatal("Shield should remain after TakeForceUnits")
	}
}

func TestTower_CanDestroy(t *testing.T) {
	tw := WithType(Barracks)
	if !tw.CanDestroy() {
		t.Fatal("a fresh unowned tower with no inbound forces should be destroyable")
	}
	tw.InboundForces = append(tw.InboundForces, Force{})
	if tw.CanDestroy() {
		t.Fatal("a tower with inbound forces should not be destroyable")
	}
	tw.InboundForces = nil
	pid := PlayerId(1)
	tw.SetPlayerId(&pid)
	if tw.CanDestroy() {
		t.Fatal("an owned tower should not be destroyable")
	}
}
