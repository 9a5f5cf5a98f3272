// Package games holds the per-game engines. Each engine is a set of pure
// functions over an explicit state value.
package games

import "errors"

// Errors returned by every engine
var (
	ErrGameOver    = errors.New("game is not active")
	ErrInvalidMove = errors.New("invalid move")
)
