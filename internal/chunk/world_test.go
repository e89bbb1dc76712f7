package chunk

import (
	"testing"

	"github.com/ashfall-games/towers/pkg/tower"
)

func noopSink(Event) {}

func TestWorld_SpawnMaterializesOwnedRulerTower(t *testing.T) {
	w := NewWorld()
	id := tower.NewTowerId(5, 5)
	chunkID, rel := id.Split()
	pid := tower.PlayerId(1)

	w.DispatchInput(chunkID, Input{Kind: Spawn, TowerId: rel, PlayerId: pid}, noopSink)

	tw, ok := w.Get(id)
	if !ok {
		t.Fatal("expected tower to be materialized after Spawn")
	}
	if tw.PlayerId == nil || *tw.PlayerId != pid {
		t.Fatal("expected tower to be owned by the spawning player")
	}
	if !tw.Units.HasRuler() {
		t.Fatal("expected a Ruler unit to be placed")
	}
}

func TestWorld_ClearZombiesOnlyAffectsUnowned(t *testing.T) {
	w := NewWorld()
	id := tower.NewTowerId(5, 5)
	chunkID, rel := id.Split()
	pid := tower.PlayerId(1)

	w.DispatchInput(chunkID, Input{Kind: Spawn, TowerId: rel, PlayerId: pid}, noopSink)
	w.DispatchInput(chunkID, Input{Kind: ClearZombies, TowerId: rel}, noopSink)

	tw, _ := w.Get(id)
	if !tw.Units.HasRuler() {
		t.Fatal("ClearZombies should not strip units from an owned tower")
	}
}

func TestWorld_ClearZombiesWipesUnownedCell(t *testing.T) {
	w := NewWorld()
	id := tower.NewTowerId(6, 6)
	w.materialize(id)
	tw, _ := w.Get(id)
	tw.Units.Add(tower.Soldier, 3)

	chunkID, rel := id.Split()
	w.DispatchInput(chunkID, Input{Kind: ClearZombies, TowerId: rel}, noopSink)

	if tw.Units.Available(tower.Soldier) != 0 {
		t.Fatal("expected ClearZombies to wipe an unowned cell's units")
	}
}

func TestWorld_UpgradeTowerSetsDelay(t *testing.T) {
	w := NewWorld()
	id := tower.NewTowerId(5, 5)
	chunkID, rel := id.Split()
	w.DispatchInput(chunkID, Input{Kind: Spawn, TowerId: rel, PlayerId: tower.PlayerId(1)}, noopSink)

	w.DispatchInput(chunkID, Input{Kind: UpgradeTower, TowerId: rel, TowerType: tower.Barracks}, noopSink)

	tw, _ := w.Get(id)
	if tw.TowerType != tower.Barracks {
		t.Fatalf("TowerType = %s, want %s", tw.TowerType, tower.Barracks)
	}
	if tw.Delay != baseUpgradeDelay {
		t.Fatalf("Delay = %d, want %d (Barracks has no downgrade)", tw.Delay, baseUpgradeDelay)
	}
}

func TestWorld_UpgradeTowerDelayVariesByPrerequisiteCount(t *testing.T) {
	w := NewWorld()
	id := tower.NewTowerId(5, 5)
	chunkID, rel := id.Split()
	w.DispatchInput(chunkID, Input{Kind: Spawn, TowerId: rel, PlayerId: tower.PlayerId(1)}, noopSink)

	w.DispatchInput(chunkID, Input{Kind: UpgradeTower, TowerId: rel, TowerType: tower.Airfield}, noopSink)

	tw, _ := w.Get(id)
	want := tower.Airfield.Prerequisite(tower.Runway)
	if tw.Delay != want {
		t.Fatalf("Delay for Airfield = %d, want %d (its prerequisite count against Runway)", tw.Delay, want)
	}
	if tw.Delay == baseUpgradeDelay {
		t.Fatal("expected Airfield's delay to differ from the base default, exercising the per-type lookup")
	}
}

func TestWorld_KillPlayerMaintenanceClearsOwnershipWithoutPanicking(t *testing.T) {
	w := NewWorld()
	id := tower.NewTowerId(5, 5)
	chunkID, rel := id.Split()
	pid := tower.PlayerId(1)
	w.DispatchInput(chunkID, Input{Kind: Spawn, TowerId: rel, PlayerId: pid}, noopSink)

	w.DispatchMaintenance(chunkID, Maintenance{Kind: KillPlayer, PlayerId: pid}, noopSink)

	tw, ok := w.Get(id)
	if !ok {
		t.Fatal("tower should still exist after KillPlayer maintenance")
	}
	if tw.PlayerId != nil {
		t.Fatal("expected tower to be unowned after KillPlayer maintenance")
	}
}

func TestWorld_DestroyRemovesTowers(t *testing.T) {
	w := NewWorld()
	id := tower.NewTowerId(5, 5)
	w.materialize(id)
	chunkID, rel := id.Split()

	w.DispatchMaintenance(chunkID, Maintenance{Kind: Destroy, TowerIds: []tower.RelativeTowerId{rel}}, noopSink)

	if _, ok := w.Get(id); ok {
		t.Fatal("expected tower to be removed after Destroy")
	}
}

func TestWorld_Tick_CountsDownUpgradeDelay(t *testing.T) {
	w := NewWorld()
	id := tower.NewTowerId(5, 5)
	chunkID, rel := id.Split()
	w.DispatchInput(chunkID, Input{Kind: Spawn, TowerId: rel, PlayerId: tower.PlayerId(1)}, noopSink)
	w.DispatchInput(chunkID, Input{Kind: UpgradeTower, TowerId: rel, TowerType: tower.Barracks}, noopSink)

	tw, _ := w.Get(id)
	for i := 0; i < int(baseUpgradeDelay); i++ {
		w.Tick()
	}
	if tw.Delay != 0 {
		t.Fatalf("Delay after %d ticks = %d, want 0", baseUpgradeDelay, tw.Delay)
	}
}
