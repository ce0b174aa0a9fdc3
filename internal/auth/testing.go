package auth

import "context"

// SetPlayerForTest injects a player name into the context for testing purposes.
func SetPlayerForTest(ctx context.Context, player string) context.Context {
	return context.WithValue(ctx, playerKey, player)
}
