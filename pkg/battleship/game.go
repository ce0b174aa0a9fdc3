package battleship

import (
	"fmt"
	"sort"
	"strings"
)

// Mode distinguishes a match against the bot from a match between two people.
type Mode string

const (
	SinglePlayer Mode = "single"
	MultiPlayer  Mode = "multi"
)

// Status is the lifecycle state of a game.
type Status string

const (
	StatusDeploying  Status = "deploying"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

const (
	// BotName is the actor name used for the bot side.
	BotName = "Bot"
	// DefaultPlayerName is used when the first side is not named.
	DefaultPlayerName = "Player"
	// DefaultGridSize is used when Config.GridSize is zero.
	DefaultGridSize = 10
)

// Opponent describes the second side: another person, or the bot with its
// targeting strategy.
type Opponent struct {
	name     string
	targeter Targeter
}

// Human returns a person opponent with the given name.
func Human(name string) Opponent { return Opponent{name: name} }

// Bot returns a bot opponent driven by t.
func Bot(t Targeter) Opponent { return Opponent{name: BotName, targeter: t} }

// Config holds everything needed to set up a match.
type Config struct {
	ID                 string
	Player             string // first side; DefaultPlayerName if empty
	Opponent           Opponent
	GridSize           int        // DefaultGridSize if zero
	Fleet              Fleet      // DefaultFleet if nil
	PlayerPlacements   Placements // random deployment if nil
	OpponentPlacements Placements // random deployment if nil
	Scores             map[string]int
	Rand               Rand // NewRand(0) if nil
}

type side struct {
	name string
	grid *Grid
	// hits remembers which ship each Hit cell belonged to, for undo and for
	// listing boat locations after damage.
	hits map[Coord]byte
}

// Game is one match: two grids, the fleet, move history, destruction
// counters, per-match scores and, against the bot, its targeting strategy.
// A Game has no internal locking; callers serialize access per game.
type Game struct {
	id       string
	size     int
	fleet    Fleet
	sides    [2]*side
	targeter Targeter
	history  History
	// destroyed[actor][shipID] counts ships that actor has sunk.
	destroyed map[string]map[byte]int
	scores    map[string]int
	status    Status
	winner    string
	turn      int
}

// TurnResult reports everything one call to Attack resolved.
type TurnResult struct {
	Actor             string                    `json:"actor"`
	Player            Shot                      `json:"player_attack"`
	Bot               *Shot                     `json:"bot_attack,omitempty"`
	Winner            string                    `json:"winner,omitempty"`
	NextTurn          string                    `json:"next_turn,omitempty"`
	DestructionCounts map[string]map[string]int `json:"destruction_counts"`
	Scores            map[string]int            `json:"scores"`
}

// NewGame validates cfg, deploys both fleets and returns a game in progress.
// Construction fails as a whole if either deployment fails.
func NewGame(cfg Config) (*Game, error) {
	size := cfg.GridSize
	if size == 0 {
		size = DefaultGridSize
	}
	if !ValidGridSize(size) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGridSize, size)
	}

	fleet := cfg.Fleet
	if fleet == nil {
		fleet = DefaultFleet()
	}
	if err := fleet.Validate(); err != nil {
		return nil, err
	}

	player := strings.TrimSpace(cfg.Player)
	if player == "" {
		player = DefaultPlayerName
	}
	opponent := strings.TrimSpace(cfg.Opponent.name)
	switch {
	case player == BotName:
		return nil, fmt.Errorf("%w: %q is reserved for the bot", ErrInvalidPlayers, BotName)
	case cfg.Opponent.targeter == nil && opponent == "":
		return nil, fmt.Errorf("%w: opponent is required", ErrInvalidPlayers)
	case cfg.Opponent.targeter == nil && opponent == BotName:
		return nil, fmt.Errorf("%w: %q is reserved for the bot", ErrInvalidPlayers, BotName)
	case opponent == player:
		return nil, fmt.Errorf("%w: both sides are named %q", ErrInvalidPlayers, player)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = NewRand(0)
	}

	g := &Game{
		id:        cfg.ID,
		size:      size,
		fleet:     fleet.Clone(),
		targeter:  cfg.Opponent.targeter,
		destroyed: make(map[string]map[byte]int, 2),
		scores:    make(map[string]int, 2),
		status:    StatusDeploying,
	}
	placements := [2]Placements{cfg.PlayerPlacements, cfg.OpponentPlacements}
	for i, name := range [2]string{player, opponent} {
		s := &side{name: name, grid: NewGrid(size), hits: make(map[Coord]byte)}
		var err error
		if placements[i] != nil {
			err = DeployExplicit(s.grid, g.fleet, placements[i])
		} else {
			err = DeployRandom(s.grid, g.fleet, rng)
		}
		if err != nil {
			return nil, fmt.Errorf("deploy %s: %w", name, err)
		}
		g.sides[i] = s

		g.destroyed[name] = make(map[byte]int, len(g.fleet))
		for _, ship := range g.fleet {
			g.destroyed[name][ship.ID] = 0
		}
		g.scores[name] = cfg.Scores[name]
	}

	g.status = StatusInProgress
	return g, nil
}

func (g *Game) ID() string        { return g.id }
func (g *Game) Size() int         { return g.size }
func (g *Game) Fleet() Fleet      { return g.fleet.Clone() }
func (g *Game) Status() Status    { return g.status }
func (g *Game) Winner() string    { return g.winner }
func (g *Game) Players() []string { return []string{g.sides[0].name, g.sides[1].name} }

// Mode is SinglePlayer when the opponent is the bot.
func (g *Game) Mode() Mode {
	if g.targeter != nil {
		return SinglePlayer
	}
	return MultiPlayer
}

// Strategy returns the bot's strategy name, or "" in a multi-player match.
func (g *Game) Strategy() string {
	if g.targeter == nil {
		return ""
	}
	return g.targeter.Name()
}

// Turn names the side whose attack comes next. Against the bot it is always
// the first player, since the bot replies inside the same call.
func (g *Game) Turn() string {
	if g.status == StatusFinished {
		return ""
	}
	return g.sides[g.turn].name
}

func (g *Game) sideIndex(actor string) (int, bool) {
	for i, s := range g.sides {
		if s.name == actor {
			return i, true
		}
	}
	return 0, false
}

// Attack fires for the side whose turn it is at (row, col) on the other side's
// grid. Against the bot, unless that shot ends the game, the bot then picks and
// fires its reply before Attack returns. Attacking an already attacked cell is
// not an error: the result carries OutcomeNoOp and nothing else happens.
func (g *Game) Attack(row, col int) (*TurnResult, error) {
	if g.status == StatusFinished {
		return nil, ErrGameOver
	}
	attacker := g.turn
	target := g.sides[1-attacker]
	if !target.grid.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrOutOfBounds, row, col, g.size, g.size)
	}

	shot, err := g.resolve(attacker, row, col)
	if err != nil {
		return nil, err
	}
	res := &TurnResult{Actor: g.sides[attacker].name, Player: shot}
	if shot.Outcome == OutcomeNoOp {
		return g.finishTurn(res), nil
	}

	if res.Winner = g.CheckForWinner(); res.Winner != "" {
		return g.finishTurn(res), nil
	}

	if g.targeter == nil {
		g.turn = 1 - attacker
		return g.finishTurn(res), nil
	}

	reply, err := g.botTurn()
	if err != nil {
		// Keep the turn atomic: take back the player's shot.
		if last, ok := g.history.Pop(); ok {
			g.revert(last, true)
		}
		return nil, err
	}
	res.Bot = &reply
	res.Winner = g.CheckForWinner()
	return g.finishTurn(res), nil
}

// AttackAs is Attack for a named side. It fails with ErrNotYourTurn unless
// actor is the side whose turn it is.
func (g *Game) AttackAs(actor string, row, col int) (*TurnResult, error) {
	if g.status == StatusFinished {
		return nil, ErrGameOver
	}
	if _, ok := g.sideIndex(actor); !ok {
		return nil, fmt.Errorf("%w: no side named %q", ErrInvalidPlayers, actor)
	}
	if turn := g.Turn(); actor != turn {
		return nil, fmt.Errorf("%w: waiting for %s", ErrNotYourTurn, turn)
	}
	return g.Attack(row, col)
}

func (g *Game) botTurn() (Shot, error) {
	c, err := g.targeter.NextTarget(boardView{g.sides[0].grid})
	if err != nil {
		return Shot{}, fmt.Errorf("bot %s: %w", g.targeter.Name(), err)
	}
	if g.sides[0].grid.Attacked(c.Row, c.Col) || !g.sides[0].grid.InBounds(c.Row, c.Col) {
		return Shot{}, fmt.Errorf("bot %s chose unusable cell %s", g.targeter.Name(), c)
	}
	shot, err := g.resolve(1, c.Row, c.Col)
	if err != nil {
		return Shot{}, err
	}
	g.targeter.Record(c, shot.Outcome == OutcomeHit)
	if shot.Sunk {
		if so, ok := g.targeter.(SinkObserver); ok {
			n, _ := g.fleet.Length(shot.Ship[0])
			so.ShipSunk(n, g.sides[0].shipHits(shot.Ship[0]))
		}
	}
	return shot, nil
}

// shipHits returns the Hit cells recorded for ship id, in row-major order.
func (s *side) shipHits(id byte) []Coord {
	var cells []Coord
	for c, hit := range s.hits {
		if hit == id {
			cells = append(cells, c)
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// resolve fires for side attacker and records the move and any sinking.
func (g *Game) resolve(attacker, row, col int) (Shot, error) {
	target := g.sides[1-attacker]
	shot, err := Fire(target.grid, row, col)
	if err != nil || shot.Outcome == OutcomeNoOp {
		return shot, err
	}
	actor := g.sides[attacker].name
	mv := Move{Actor: actor, Row: row, Col: col, Hit: shot.Outcome == OutcomeHit, Ship: shot.Ship, Sunk: shot.Sunk}
	if mv.Hit {
		target.hits[shot.Coord] = shot.Ship[0]
	}
	if mv.Sunk {
		g.destroyed[actor][shot.Ship[0]]++
	}
	g.history.Append(mv)
	return shot, nil
}

func (g *Game) finishTurn(res *TurnResult) *TurnResult {
	res.NextTurn = g.Turn()
	res.DestructionCounts = g.DestructionCounts()
	res.Scores = g.Scores()
	return res
}

// CheckForWinner returns the winning side's name, or "" while both fleets
// float. A side wins when every ship cell on the other grid is Hit. The
// winner's score is incremented on the transition into StatusFinished only,
// so repeated calls on a finished game return the same winner without
// scoring again.
func (g *Game) CheckForWinner() string {
	if g.status == StatusFinished {
		return g.winner
	}
	for i := range g.sides {
		if g.sides[1-i].grid.AllSunk() {
			g.status = StatusFinished
			g.winner = g.sides[i].name
			g.scores[g.winner]++
			return g.winner
		}
	}
	return ""
}

// Undo takes back the last 2n moves, n full rounds of play. Every undone cell
// is reset to Empty, hit or miss, so an undone hit erases that ship segment
// for the rest of the match. Destruction counters and the bot's private
// knowledge are rolled back too. No move can follow the one that finishes a
// game, so undoing a finished game always takes that move back: the game is
// reopened and the winner's point withdrawn. The 2n moves are popped strictly
// newest first, whoever made them, so on an odd-length history the oldest
// popped move belongs to a different round than its neighbour.
func (g *Game) Undo(n int) ([]Move, error) {
	if n <= 0 || 2*n > g.history.Len() {
		return nil, fmt.Errorf("%w: %d rounds requested, %d moves recorded", ErrInvalidUndoCount, n, g.history.Len())
	}
	undone := make([]Move, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		mv, _ := g.history.Pop()
		g.revert(mv, false)
		undone = append(undone, mv)
	}

	if g.status == StatusFinished {
		g.scores[g.winner]--
		g.winner = ""
		g.status = StatusInProgress
	}

	g.turn = 0
	if g.targeter == nil {
		if last, ok := g.history.Last(); ok {
			idx, _ := g.sideIndex(last.Actor)
			g.turn = 1 - idx
		}
	}
	return undone, nil
}

// revert rolls back every counter mv changed and resets its cell to Empty.
// With keepShip a hit cell gets its ship segment back instead, which is how a
// failed turn is taken back without touching the fleet.
func (g *Game) revert(mv Move, keepShip bool) {
	attacker, _ := g.sideIndex(mv.Actor)
	target := g.sides[1-attacker]
	c := Coord{Row: mv.Row, Col: mv.Col}
	var sunkCells []Coord
	if mv.Sunk {
		sunkCells = target.shipHits(mv.Ship[0])
	}

	restored := CellEmpty
	if mv.Hit {
		if keepShip {
			restored = Cell(mv.Ship[0])
		}
		delete(target.hits, c)
	}
	target.grid.cells[c.Row*g.size+c.Col] = restored
	if mv.Sunk {
		g.destroyed[mv.Actor][mv.Ship[0]]--
	}

	if g.targeter != nil && attacker == 1 {
		g.targeter.Restore(c, mv.Hit)
		if mv.Sunk {
			if so, ok := g.targeter.(SinkObserver); ok {
				n, _ := g.fleet.Length(mv.Ship[0])
				so.ShipRestored(n, sunkCells)
			}
		}
	}
}

// History returns every resolved move, oldest first.
func (g *Game) History() []Move { return g.history.Moves() }

// DestructionCounts returns, per actor, how many of each ship type that actor
// has sunk.
func (g *Game) DestructionCounts() map[string]map[string]int {
	out := make(map[string]map[string]int, len(g.destroyed))
	for actor, ships := range g.destroyed {
		m := make(map[string]int, len(ships))
		for id, n := range ships {
			m[string(id)] = n
		}
		out[actor] = m
	}
	return out
}

// Scores returns the per-match win counts of both sides.
func (g *Game) Scores() map[string]int {
	out := make(map[string]int, len(g.scores))
	for k, v := range g.scores {
		out[k] = v
	}
	return out
}

// BoatLocations lists where actor's ships were deployed, hit or not.
func (g *Game) BoatLocations(actor string) (map[string][]Coord, error) {
	i, ok := g.sideIndex(actor)
	if !ok {
		return nil, fmt.Errorf("%w: no side named %q", ErrInvalidPlayers, actor)
	}
	return boatLocations(g.sides[i].grid, g.sides[i].hits), nil
}

// GridRows renders actor's own grid. With hideShips the unhit segments are
// blanked, which is how the other side sees it.
func (g *Game) GridRows(actor string, hideShips bool) ([]string, error) {
	i, ok := g.sideIndex(actor)
	if !ok {
		return nil, fmt.Errorf("%w: no side named %q", ErrInvalidPlayers, actor)
	}
	return g.sides[i].grid.Rows(hideShips), nil
}
