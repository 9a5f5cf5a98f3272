package request

// SignupRequest is the request body for creating an account
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MoveRequest is the request body for a tic-tac-toe move or a card flip
type MoveRequest struct {
	Position *int `json:"position"`
}

// StartNumberGuessRequest is the optional request body for starting a number-guess game
type StartNumberGuessRequest struct {
	Difficulty string `json:"difficulty,omitempty"`
}

// GuessRequest is the request body for a number guess
type GuessRequest struct {
	Guess *int `json:"guess"`
}
