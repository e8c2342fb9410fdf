package engine

import "errors"

var (
	ErrInvalidSideReference = errors.New("invalid side reference")
	ErrNoActiveCombatant    = errors.New("no active combatant")
)
