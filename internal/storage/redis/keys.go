package redis

import "fmt"

// Key prefix for all hub data
const defaultKeyPrefix = "gamehub"

// accountsKey returns the key holding the accounts snapshot
func accountsKey(prefix string) string {
	return fmt.Sprintf("%s:accounts", prefix)
}

// scoresKey returns the key holding the scores snapshot
func scoresKey(prefix string) string {
	return fmt.Sprintf("%s:scores", prefix)
}
