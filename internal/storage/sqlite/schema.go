package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	total_games   INTEGER NOT NULL DEFAULT 0,
	total_wins    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS scores (
	username              TEXT PRIMARY KEY,
	ttt_games             INTEGER NOT NULL DEFAULT 0,
	ttt_wins              INTEGER NOT NULL DEFAULT 0,
	ttt_draws             INTEGER NOT NULL DEFAULT 0,
	ttt_losses            INTEGER NOT NULL DEFAULT 0,
	ng_games              INTEGER NOT NULL DEFAULT 0,
	ng_best_attempts      INTEGER,
	ng_total_attempts     INTEGER NOT NULL DEFAULT 0,
	mc_games              INTEGER NOT NULL DEFAULT 0,
	mc_best_moves         INTEGER,
	mc_total_moves        INTEGER NOT NULL DEFAULT 0
);
`
