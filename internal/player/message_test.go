package player

import (
	"testing"

	"github.com/ashfall-games/towers/pkg/tower"
)

func TestApplyInput_AddAndRemoveAlly(t *testing.T) {
	r := NewRepo()
	id := tower.PlayerId(1)
	other := tower.PlayerId(2)
	r.Insert(id, NewPlayer())

	r.ApplyInput(id, Input{Kind: AddAllyInput, With: other})
	h, _ := r.BorrowPlayer(id)
	if !h.Get().IsAlly(other) {
		h.Release()
		t.Fatal("expected other to be recorded as an ally")
	}
	h.Release()

	r.ApplyInput(id, Input{Kind: RemoveAllyInput, With: other})
	h, _ = r.BorrowPlayer(id)
	if h.Get().IsAlly(other) {
		h.Release()
		t.Fatal("expected other to no longer be an ally")
	}
	h.Release()
}

func TestApplyInput_MissingPlayerIsNoop(t *testing.T) {
	r := NewRepo()
	r.ApplyInput(tower.PlayerId(99), Input{Kind: AddAllyInput, With: tower.PlayerId(1)})
}

func TestApplyMaintenance_Died(t *testing.T) {
	r := NewRepo()
	id := tower.PlayerId(1)
	p := NewPlayer()
	p.Alive = true
	r.Insert(id, p)

	r.ApplyMaintenance(id, Maintenance{Kind: Died, DeathKind: DeathReasonKilled})

	h, _ := r.BorrowPlayer(id)
	defer h.Release()
	if h.Get().Alive {
		t.Fatal("expected player to be marked dead")
	}
	if h.Get().DeathReason != DeathReasonKilled {
		t.Fatalf("DeathReason = %v, want %v", h.Get().DeathReason, DeathReasonKilled)
	}
}

func TestApplyMaintenance_RemoveDeadAlly(t *testing.T) {
	r := NewRepo()
	id := tower.PlayerId(1)
	dead := tower.PlayerId(2)
	p := NewPlayer()
	p.AddAlly(dead)
	r.Insert(id, p)

	r.ApplyMaintenance(id, Maintenance{Kind: RemoveDeadAllyInput, DeadAlly: dead})

	h, _ := r.BorrowPlayer(id)
	defer h.Release()
	if h.Get().IsAlly(dead) {
		t.Fatal("expected dead ally to be removed")
	}
}
