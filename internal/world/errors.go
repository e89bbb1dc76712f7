package world

import "errors"

var (
	ErrPlayerNotInGame        = errors.New("world: player not in game")
	ErrAlreadyAlive           = errors.New("world: player already alive")
	ErrNoSpawnableTower       = errors.New("world: couldn't find a spawnable tower")
	ErrNonexistentPlayer      = errors.New("world: non-existent player")
	ErrAllianceWithInactive   = errors.New("world: alliance with inactive player")
	ErrNoTower                = errors.New("world: no tower at that location")
	ErrNotController          = errors.New("world: source tower not under player's control")
	ErrEmptyForce             = errors.New("world: tower has no deployable force")
	ErrInvalidSupplyLine      = errors.New("world: tower does not generate mobile units")
	ErrNoSuchTower            = errors.New("world: cannot upgrade a nonexistent tower")
	ErrNotOwned               = errors.New("world: cannot upgrade a tower you don't own")
	ErrUpgradePending         = errors.New("world: upgrade already pending")
	ErrMissingPrerequisite    = errors.New("world: missing upgrade prerequisite")
	ErrInvalidUpgradePath     = errors.New("world: invalid upgrade path")
)
