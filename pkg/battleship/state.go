package battleship

import "fmt"

// SideView is one side of the board as a particular viewer sees it.
type SideView struct {
	Name string   `json:"name"`
	Grid []string `json:"grid"`
	// Ships is only filled in for the viewer's own side.
	Ships map[string][]Coord `json:"ships,omitempty"`
}

// State is a snapshot of a game from one side's point of view: the viewer's
// own grid in full, the opponent's with unhit segments blanked.
type State struct {
	ID                string                    `json:"id"`
	Mode              Mode                      `json:"mode"`
	Status            Status                    `json:"status"`
	Strategy          string                    `json:"strategy,omitempty"`
	GridSize          int                       `json:"grid_size"`
	Fleet             map[string]int            `json:"fleet"`
	Turn              string                    `json:"turn,omitempty"`
	Winner            string                    `json:"winner,omitempty"`
	Moves             int                       `json:"moves"`
	You               SideView                  `json:"you"`
	Opponent          SideView                  `json:"opponent"`
	DestructionCounts map[string]map[string]int `json:"destruction_counts"`
	Scores            map[string]int            `json:"scores"`
}

// State returns the game as viewer sees it.
func (g *Game) State(viewer string) (*State, error) {
	i, ok := g.sideIndex(viewer)
	if !ok {
		return nil, fmt.Errorf("%w: no side named %q", ErrInvalidPlayers, viewer)
	}
	own, other := g.sides[i], g.sides[1-i]

	fleet := make(map[string]int, len(g.fleet))
	for _, ship := range g.fleet {
		fleet[string(ship.ID)] = ship.Length
	}
	return &State{
		ID:       g.id,
		Mode:     g.Mode(),
		Status:   g.status,
		Strategy: g.Strategy(),
		GridSize: g.size,
		Fleet:    fleet,
		Turn:     g.Turn(),
		Winner:   g.winner,
		Moves:    g.history.Len(),
		You: SideView{
			Name:  own.name,
			Grid:  own.grid.Rows(false),
			Ships: boatLocations(own.grid, own.hits),
		},
		Opponent: SideView{
			Name: other.name,
			Grid: other.grid.Rows(true),
		},
		DestructionCounts: g.DestructionCounts(),
		Scores:            g.Scores(),
	}, nil
}
