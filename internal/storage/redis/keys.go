package redis

import (
	"fmt"

	"github.com/mcoot/wordsearch/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "wordsearch"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// historyKey returns the Redis key for the LIST of a player's completed games
func historyKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, playerID)
}

// recordKey returns the Redis key for a key-value record
func recordKey(key string) string {
	return fmt.Sprintf("%s:record:%s", keyPrefix, key)
}

// wordListKey returns the Redis key for the word LIST
func wordListKey() string {
	return fmt.Sprintf("%s:wordlist", keyPrefix)
}
