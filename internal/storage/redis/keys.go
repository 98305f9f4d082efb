package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "cluequest"

// accountKey returns the Redis key for an Account record
func accountKey(username string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, username)
}
