package memorycards

import (
	"fmt"

	"github.com/mcoot/gamehub/internal/dependencies/random"
	"github.com/mcoot/gamehub/internal/games"
	"github.com/mcoot/gamehub/internal/model"
)

// Pairs is the number of pairs on a board
const Pairs = 8

// symbols are the card faces; each appears twice on the board
var symbols = [Pairs]string{"🎮", "🎯", "🎲", "🎪", "🎨", "🎭", "🎸", "🎺"}

// Symbols returns a copy of the card faces in deck order
func Symbols() []string {
	out := make([]string, Pairs)
	copy(out, symbols[:])
	return out
}

// State is one memory-cards board
type State struct {
	Cards   []string `json:"-"`
	Matched []bool   `json:"matched"`
	// Pending is the position of a face-up card waiting for its partner, or -1
	Pending int  `json:"pending"`
	Moves   int  `json:"moves"`
	Active  bool `json:"game_active"`
}

// Reveal is what a single flip shows the player
type Reveal struct {
	Position int    `json:"position"`
	Symbol   string `json:"symbol"`
	// Partner and PartnerSymbol are set on the second flip of a move
	Partner       *int   `json:"partner,omitempty"`
	PartnerSymbol string `json:"partner_symbol,omitempty"`
	Match         bool   `json:"match"`
}

// New lays out a shuffled board
func New(rng random.Random) State {
	cards := make([]string, 0, 2*Pairs)
	cards = append(cards, symbols[:]...)
	cards = append(cards, symbols[:]...)
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	return State{
		Cards:   cards,
		Matched: make([]bool, len(cards)),
		Pending: -1,
		Active:  true,
	}
}

// Flip turns over the card at pos. Every second flip completes a move; the
// move that matches the last pair ends the game with an outcome.
func Flip(s State, pos int) (State, Reveal, *model.MemoryCardsOutcome, error) {
	if !s.Active {
		return s, Reveal{}, nil, games.ErrGameOver
	}
	if pos < 0 || pos >= len(s.Cards) {
		return s, Reveal{}, nil, fmt.Errorf("%w: position %d out of range", games.ErrInvalidMove, pos)
	}
	if s.Matched[pos] {
		return s, Reveal{}, nil, fmt.Errorf("%w: card %d is already matched", games.ErrInvalidMove, pos)
	}
	if pos == s.Pending {
		return s, Reveal{}, nil, fmt.Errorf("%w: card %d is already face up", games.ErrInvalidMove, pos)
	}

	reveal := Reveal{Position: pos, Symbol: s.Cards[pos]}
	if s.Pending < 0 {
		s.Pending = pos
		return s, reveal, nil, nil
	}

	first := s.Pending
	reveal.Partner = &first
	reveal.PartnerSymbol = s.Cards[first]
	s.Pending = -1
	s.Moves++

	if s.Cards[first] != s.Cards[pos] {
		return s, reveal, nil, nil
	}

	matched := make([]bool, len(s.Matched))
	copy(matched, s.Matched)
	matched[first], matched[pos] = true, true
	s.Matched = matched
	reveal.Match = true

	if s.MatchedPairs() < Pairs {
		return s, reveal, nil, nil
	}
	s.Active = false
	return s, reveal, &model.MemoryCardsOutcome{Moves: s.Moves}, nil
}

// MatchedPairs counts the pairs found so far
func (s State) MatchedPairs() int {
	n := 0
	for _, m := range s.Matched {
		if m {
			n++
		}
	}
	return n / 2
}

// Visible returns the board as the player sees it: matched and pending cards
// show their symbol, the rest are blank
func (s State) Visible() []string {
	out := make([]string, len(s.Cards))
	for i, c := range s.Cards {
		if s.Matched[i] || i == s.Pending {
			out[i] = c
		}
	}
	return out
}

// Stars rates a finished board from 3 down to 0 by moves over the minimum
func Stars(moves int) int {
	switch {
	case moves <= Pairs+2:
		return 3
	case moves <= Pairs+5:
		return 2
	case moves <= Pairs+10:
		return 1
	}
	return 0
}
