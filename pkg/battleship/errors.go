package battleship

import "errors"

var (
	ErrOutOfBounds              = errors.New("coordinates out of bounds")
	ErrInvalidPlacement         = errors.New("invalid ship placement")
	ErrUnknownShipType          = errors.New("unknown ship type")
	ErrWrongSegmentCount        = errors.New("wrong number of segments for ship")
	ErrCellOccupied             = errors.New("cell already occupied")
	ErrDeploymentSpaceExhausted = errors.New("no room left to deploy ship")
	ErrInvalidGridSize          = errors.New("grid size must be 8, 10 or 12")
	ErrInvalidFleet             = errors.New("invalid fleet")
	ErrInvalidUndoCount         = errors.New("invalid number of moves to undo")
	ErrGameOver                 = errors.New("game is already finished")
	ErrNoTargets                = errors.New("no untried cells left to target")
	ErrInvalidPlayers           = errors.New("invalid players")
	ErrNotYourTurn              = errors.New("not your turn")
)
