package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/broadside/internal/bot"
	"github.com/freeeve/broadside/internal/logger"
	"github.com/freeeve/broadside/internal/model"
	"github.com/freeeve/broadside/internal/repository"
	"github.com/freeeve/broadside/pkg/battleship"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrInvalidMode       = errors.New("mode must be single or multi")
	ErrInvalidDifficulty = bot.ErrInvalidDifficulty
	ErrInvalidPlayerName = errors.New("invalid player name")
	ErrNotInGame         = errors.New("you are not in this game")
)

// maxNameLength bounds player names.
const maxNameLength = 32

// CreateGameInput describes a new match. The creating player always takes the
// first side.
type CreateGameInput struct {
	Mode       string `json:"mode"`       // "single" (default) or "multi"
	Difficulty int    `json:"difficulty"` // 1..3, single-player only
	Opponent   string `json:"opponent"`   // second player's name, multi-player only
	GridSize   int    `json:"grid_size"`  // 0 = service default
	// Fleet maps ship id to length; the standard fleet when empty.
	Fleet              map[string]int                `json:"fleet,omitempty"`
	PlayerPlacements   map[string][]battleship.Coord `json:"player_placements,omitempty"`
	OpponentPlacements map[string][]battleship.Coord `json:"opponent_placements,omitempty"`
}

// GameService runs live games: creation, turns, undo, restart, and the
// process-wide scoreboard.
type GameService struct {
	games       repository.GameRegistry
	scores      repository.ScoreBoard
	broadcaster Broadcaster

	gridSize int
	seed     int64
	created  atomic.Int64
	now      func() time.Time
}

// NewGameService creates a GameService.
func NewGameService(games repository.GameRegistry, scores repository.ScoreBoard, broadcaster Broadcaster) *GameService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &GameService{
		games:       games,
		scores:      scores,
		broadcaster: broadcaster,
		gridSize:    battleship.DefaultGridSize,
		now:         time.Now,
	}
}

// SetDefaultGridSize sets the grid size used when a request leaves it out.
func (s *GameService) SetDefaultGridSize(n int) { s.gridSize = n }

// SetSeed makes deployment and bot targeting reproducible. Game k created
// after the call draws from seed+k. Zero restores clock seeding.
func (s *GameService) SetSeed(seed int64) { s.seed = seed }

func (s *GameService) newRand() battleship.Rand {
	n := s.created.Add(1)
	if s.seed == 0 {
		return battleship.NewRand(0)
	}
	return battleship.NewRand(s.seed + n)
}

// CreateGame validates in, deploys both fleets and registers the game.
func (s *GameService) CreateGame(ctx context.Context, player string, in CreateGameInput) (*model.GameView, error) {
	player, err := ValidPlayerName(player)
	if err != nil {
		return nil, err
	}

	settings := repository.GameSettings{GridSize: in.GridSize}
	if settings.GridSize == 0 {
		settings.GridSize = s.gridSize
	}
	switch battleship.Mode(strings.ToLower(in.Mode)) {
	case "", battleship.SinglePlayer:
		settings.Mode = battleship.SinglePlayer
		if in.Difficulty < bot.Easy || in.Difficulty > bot.Hard {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidDifficulty, in.Difficulty)
		}
		settings.Difficulty = in.Difficulty
		settings.Players = [2]string{player, battleship.BotName}
	case battleship.MultiPlayer:
		settings.Mode = battleship.MultiPlayer
		if in.Difficulty != 0 {
			return nil, fmt.Errorf("%w: difficulty applies to single-player games only", ErrInvalidDifficulty)
		}
		opponent, err := ValidPlayerName(in.Opponent)
		if err != nil {
			return nil, fmt.Errorf("opponent: %w", err)
		}
		if opponent == player {
			return nil, fmt.Errorf("%w: opponent must differ from %q", ErrInvalidPlayerName, player)
		}
		settings.Players = [2]string{player, opponent}
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMode, in.Mode)
	}

	settings.Fleet = battleship.DefaultFleet()
	if len(in.Fleet) > 0 {
		if settings.Fleet, err = parseFleet(in.Fleet); err != nil {
			return nil, err
		}
	}
	playerPlacements, err := parsePlacements(in.PlayerPlacements)
	if err != nil {
		return nil, err
	}
	opponentPlacements, err := parsePlacements(in.OpponentPlacements)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	game, err := s.newGame(id, settings, playerPlacements, opponentPlacements, nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := &repository.GameEntry{ID: id, Settings: settings, Game: game, CreatedAt: now, UpdatedAt: now}
	if err := s.games.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("register game: %w", err)
	}

	log.Info().Str("gameId", id).Str("mode", string(settings.Mode)).
		Strs("players", settings.Players[:]).Int("difficulty", settings.Difficulty).
		Int("gridSize", settings.GridSize).Msg("Game created")
	return view(entry, player)
}

// newGame builds the engine game for settings, with a fresh strategy when the
// opponent is the bot.
func (s *GameService) newGame(id string, settings repository.GameSettings, player, opponent battleship.Placements, scores map[string]int) (*battleship.Game, error) {
	rng := s.newRand()
	opp := battleship.Human(settings.Players[1])
	if settings.Mode == battleship.SinglePlayer {
		strategy, err := bot.StrategyForDifficulty(settings.Difficulty, settings.GridSize, settings.Fleet, rng)
		if err != nil {
			return nil, err
		}
		opp = battleship.Bot(strategy)
	}
	return battleship.NewGame(battleship.Config{
		ID:                 id,
		Player:             settings.Players[0],
		Opponent:           opp,
		GridSize:           settings.GridSize,
		Fleet:              settings.Fleet,
		PlayerPlacements:   player,
		OpponentPlacements: opponent,
		Scores:             scores,
		Rand:               rng,
	})
}

// entry looks up gameID and checks player is one of its sides. The entry is
// returned unlocked.
func (s *GameService) entry(ctx context.Context, gameID, player string) (*repository.GameEntry, error) {
	e, err := s.games.Get(ctx, gameID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	if !e.HasPlayer(player) {
		return nil, ErrNotInGame
	}
	return e, nil
}

// Authorize checks that gameID exists and player is one of its sides.
func (s *GameService) Authorize(ctx context.Context, gameID, player string) error {
	_, err := s.entry(ctx, gameID, player)
	return err
}

// GetGame returns the game as player sees it.
func (s *GameService) GetGame(ctx context.Context, gameID, player string) (*model.GameView, error) {
	e, err := s.entry(ctx, gameID, player)
	if err != nil {
		return nil, err
	}
	e.Lock()
	defer e.Unlock()
	return view(e, player)
}

// ListGames returns summaries of every game player is in, oldest first.
func (s *GameService) ListGames(ctx context.Context, player string) ([]model.GameSummary, error) {
	entries, err := s.games.List(ctx)
	if err != nil {
		return nil, err
	}
	result := []model.GameSummary{}
	for _, e := range entries {
		if !e.HasPlayer(player) {
			continue
		}
		e.Lock()
		result = append(result, summary(e))
		e.Unlock()
	}
	return result, nil
}

// Attack fires player's shot at (row, col) and, against the bot, the bot's
// reply. The global scoreboard is credited when the turn finishes the game.
func (s *GameService) Attack(ctx context.Context, gameID, player string, row, col int) (*model.AttackResult, error) {
	e, err := s.entry(ctx, gameID, player)
	if err != nil {
		return nil, err
	}
	e.Lock()
	res, err := e.Game.AttackAs(player, row, col)
	if err == nil {
		e.Touch(s.now())
	}
	e.Unlock()
	if err != nil {
		return nil, err
	}

	result := &model.AttackResult{GameID: gameID, TurnResult: res}
	l := logger.ForGame(ctx, gameID)
	ev := l.Debug().Str("actor", player).Int("row", row).Int("col", col).
		Str("outcome", string(res.Player.Outcome))
	if res.Bot != nil {
		ev = ev.Str("botOutcome", string(res.Bot.Outcome)).Int("botRow", res.Bot.Row).Int("botCol", res.Bot.Col)
	}
	ev.Msg("Attack resolved")

	s.broadcaster.BroadcastGameEvent(gameID, EventAttackResolved, result)
	if res.Winner != "" {
		if err := s.scores.AddWin(ctx, res.Winner); err != nil {
			l.Error().Err(err).Msg("Failed to record win")
		}
		l.Info().Str("winner", res.Winner).Msg("Game finished")
		s.broadcaster.BroadcastGameEvent(gameID, EventGameFinished, map[string]any{
			"winner": res.Winner,
			"scores": res.Scores,
		})
	}
	return result, nil
}

// History returns the game's moves, oldest first.
func (s *GameService) History(ctx context.Context, gameID, player string) ([]battleship.Move, error) {
	e, err := s.entry(ctx, gameID, player)
	if err != nil {
		return nil, err
	}
	e.Lock()
	defer e.Unlock()
	return e.Game.History(), nil
}

// Undo takes back n rounds. If that reopens a finished game, the winner's
// point is withdrawn from the global scoreboard too.
func (s *GameService) Undo(ctx context.Context, gameID, player string, n int) (*model.UndoResult, error) {
	e, err := s.entry(ctx, gameID, player)
	if err != nil {
		return nil, err
	}
	e.Lock()
	winner := e.Game.Winner()
	undone, err := e.Game.Undo(n)
	if err != nil {
		e.Unlock()
		return nil, err
	}
	e.Touch(s.now())
	result := &model.UndoResult{
		GameID: gameID,
		Undone: undone,
		Moves:  len(e.Game.History()),
		Status: e.Game.Status(),
		Turn:   e.Game.Turn(),
		Scores: e.Game.Scores(),
	}
	e.Unlock()

	l := logger.ForGame(ctx, gameID)
	if winner != "" && result.Status != battleship.StatusFinished {
		if err := s.scores.RemoveWin(ctx, winner); err != nil {
			l.Error().Err(err).Msg("Failed to withdraw win")
		}
	}
	l.Info().Str("actor", player).Int("rounds", n).Int("moves", result.Moves).Msg("Moves undone")
	s.broadcaster.BroadcastGameEvent(gameID, EventMovesUndone, result)
	return result, nil
}

// RestartGame replaces the match with a freshly deployed one under the same id
// and settings. Per-match scores carry over.
func (s *GameService) RestartGame(ctx context.Context, gameID, player string) (*model.GameView, error) {
	e, err := s.entry(ctx, gameID, player)
	if err != nil {
		return nil, err
	}
	e.Lock()
	defer e.Unlock()
	game, err := s.newGame(gameID, e.Settings, nil, nil, e.Game.Scores())
	if err != nil {
		return nil, err
	}
	e.Game = game
	e.Touch(s.now())

	log.Info().Str("gameId", gameID).Str("actor", player).Msg("Game restarted")
	s.broadcaster.BroadcastGameEvent(gameID, EventGameRestarted, map[string]any{
		"scores": game.Scores(),
		"turn":   game.Turn(),
	})
	return view(e, player)
}

// DeleteGame removes the game from the registry.
func (s *GameService) DeleteGame(ctx context.Context, gameID, player string) error {
	if _, err := s.entry(ctx, gameID, player); err != nil {
		return err
	}
	if err := s.games.Delete(ctx, gameID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	log.Info().Str("gameId", gameID).Str("actor", player).Msg("Game deleted")
	s.broadcaster.BroadcastGameEvent(gameID, EventGameDeleted, nil)
	return nil
}

// Scoreboard returns every actor's total wins across all games, most wins
// first.
func (s *GameService) Scoreboard(ctx context.Context) ([]model.ScoreEntry, error) {
	scores, err := s.scores.Scores(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.ScoreEntry, 0, len(scores))
	for actor, wins := range scores {
		result = append(result, model.ScoreEntry{Actor: actor, Wins: wins})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Wins != result[j].Wins {
			return result[i].Wins > result[j].Wins
		}
		return result[i].Actor < result[j].Actor
	})
	return result, nil
}

// ReapIdle deletes games with no activity for longer than ttl and returns how
// many it removed.
func (s *GameService) ReapIdle(ctx context.Context, ttl time.Duration) (int, error) {
	entries, err := s.games.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-ttl)
	removed := 0
	for _, e := range entries {
		ok, err := s.reapIfIdle(ctx, e, cutoff)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
			s.broadcaster.BroadcastGameEvent(e.ID, EventGameDeleted, nil)
		}
	}
	return removed, nil
}

// reapIfIdle deletes e if it has seen no activity since cutoff. The entry lock
// is held from the idle check through the delete, so a turn that touches the
// game first keeps it alive.
func (s *GameService) reapIfIdle(ctx context.Context, e *repository.GameEntry, cutoff time.Time) (bool, error) {
	e.Lock()
	defer e.Unlock()
	if !e.UpdatedAt.Before(cutoff) {
		return false, nil
	}
	if err := s.games.Delete(ctx, e.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ValidPlayerName trims name and checks it can be used as a player name.
func ValidPlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidPlayerName)
	case len(name) > maxNameLength:
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidPlayerName, maxNameLength)
	case strings.EqualFold(name, battleship.BotName):
		return "", fmt.Errorf("%w: %q is reserved", ErrInvalidPlayerName, battleship.BotName)
	}
	return name, nil
}

func shipID(key string) (byte, error) {
	if len(key) != 1 {
		return 0, fmt.Errorf("%w: ship id %q must be a single letter", battleship.ErrInvalidFleet, key)
	}
	return strings.ToUpper(key)[0], nil
}

func parseFleet(in map[string]int) (battleship.Fleet, error) {
	lengths := make(map[byte]int, len(in))
	for k, n := range in {
		id, err := shipID(k)
		if err != nil {
			return nil, err
		}
		lengths[id] = n
	}
	return battleship.ParseFleet(lengths)
}

func parsePlacements(in map[string][]battleship.Coord) (battleship.Placements, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(battleship.Placements, len(in))
	for k, cells := range in {
		if len(k) != 1 {
			return nil, fmt.Errorf("%w: %w %q", battleship.ErrInvalidPlacement, battleship.ErrUnknownShipType, k)
		}
		out[strings.ToUpper(k)[0]] = cells
	}
	return out, nil
}

func summary(e *repository.GameEntry) model.GameSummary {
	return model.GameSummary{
		ID:         e.ID,
		Mode:       e.Settings.Mode,
		Difficulty: e.Settings.Difficulty,
		GridSize:   e.Settings.GridSize,
		Players:    e.Game.Players(),
		Status:     e.Game.Status(),
		Turn:       e.Game.Turn(),
		Winner:     e.Game.Winner(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func view(e *repository.GameEntry, player string) (*model.GameView, error) {
	st, err := e.Game.State(player)
	if err != nil {
		return nil, err
	}
	v := &model.GameView{State: st, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
	if e.Settings.Mode == battleship.SinglePlayer {
		v.Difficulty = e.Settings.Difficulty
		v.DifficultyName = bot.DifficultyName(e.Settings.Difficulty)
	}
	return v, nil
}
