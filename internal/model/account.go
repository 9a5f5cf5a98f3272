package model

import "time"

// Minimum lengths accepted at registration
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Account is the per-user identity record with aggregate totals.
// Username is the map key in the accounts table and is never stored twice.
type Account struct {
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	TotalGames   int       `json:"total_games"`
	TotalWins    int       `json:"total_wins"`
}

// Accounts is the whole accounts table keyed by username
type Accounts map[string]Account

// Clone returns a copy of the table that can be mutated freely
func (a Accounts) Clone() Accounts {
	out := make(Accounts, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// WinRate returns wins divided by games, or 0 when no games were played
func (a Account) WinRate() float64 {
	if a.TotalGames == 0 {
		return 0
	}
	return float64(a.TotalWins) / float64(a.TotalGames)
}
