package file

// Config holds file storage settings
type Config struct {
	// Dir is the directory holding the table files
	Dir string

	AccountsFile string
	ScoresFile   string
}

// DefaultConfig returns data/users.json and data/scores.json
func DefaultConfig() Config {
	return Config{
		Dir:          "data",
		AccountsFile: "users.json",
		ScoresFile:   "scores.json",
	}
}
