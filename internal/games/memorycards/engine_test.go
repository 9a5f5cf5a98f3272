package memorycards

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/mcoot/gamehub/internal/dependencies/mocks"
	"github.com/mcoot/gamehub/internal/games"
	"github.com/mcoot/gamehub/internal/model"
)

// With the mock shuffle the board is the deck twice, so pair i sits at i and i+Pairs.
func newBoard() State {
	return New(mocks.NewMockRandom())
}

func mustFlip(s State, pos int) (State, Reveal, *model.MemoryCardsOutcome) {
	next, reveal, outcome, err := Flip(s, pos)
	convey.So(err, convey.ShouldBeNil)
	return next, reveal, outcome
}

func TestNew(t *testing.T) {
	convey.Convey("Given a new board", t, func() {
		rng := mocks.NewMockRandom()
		s := New(rng)

		convey.Convey("Then it holds every symbol exactly twice", func() {
			convey.So(len(s.Cards), convey.ShouldEqual, 16)
			counts := map[string]int{}
			for _, c := range s.Cards {
				counts[c]++
			}
			convey.So(len(counts), convey.ShouldEqual, Pairs)
			for _, n := range counts {
				convey.So(n, convey.ShouldEqual, 2)
			}
		})

		convey.Convey("Then it was shuffled once and nothing is face up", func() {
			convey.So(rng.ShuffleCalls, convey.ShouldEqual, 1)
			convey.So(s.Pending, convey.ShouldEqual, -1)
			convey.So(s.Visible(), convey.ShouldResemble, make([]string, 16))
		})
	})
}

func TestFlip(t *testing.T) {
	convey.Convey("Given a fresh board", t, func() {
		s := newBoard()

		convey.Convey("When one card is flipped", func() {
			next, reveal, outcome := mustFlip(s, 0)

			convey.So(outcome, convey.ShouldBeNil)
			convey.So(reveal.Symbol, convey.ShouldEqual, Symbols()[0])
			convey.So(reveal.Partner, convey.ShouldBeNil)
			convey.So(next.Moves, convey.ShouldEqual, 0)
			convey.So(next.Visible()[0], convey.ShouldEqual, Symbols()[0])

			convey.Convey("Then flipping it again is rejected", func() {
				_, _, _, err := Flip(next, 0)
				convey.So(errors.Is(err, games.ErrInvalidMove), convey.ShouldBeTrue)
			})

			convey.Convey("Then a mismatched partner counts a move and hides both", func() {
				after, reveal, _ := mustFlip(next, 1)
				convey.So(reveal.Match, convey.ShouldBeFalse)
				convey.So(*reveal.Partner, convey.ShouldEqual, 0)
				convey.So(reveal.PartnerSymbol, convey.ShouldEqual, Symbols()[0])
				convey.So(after.Moves, convey.ShouldEqual, 1)
				convey.So(after.Pending, convey.ShouldEqual, -1)
				convey.So(after.Visible(), convey.ShouldResemble, make([]string, 16))
			})

			convey.Convey("Then the matching partner stays face up", func() {
				after, reveal, outcome := mustFlip(next, Pairs)
				convey.So(reveal.Match, convey.ShouldBeTrue)
				convey.So(outcome, convey.ShouldBeNil)
				convey.So(after.MatchedPairs(), convey.ShouldEqual, 1)
				convey.So(after.Visible()[Pairs], convey.ShouldEqual, Symbols()[0])

				convey.Convey("And the earlier state is not touched", func() {
					convey.So(next.Matched[0], convey.ShouldBeFalse)
				})

				convey.Convey("And matched cards cannot be flipped", func() {
					_, _, _, err := Flip(after, 0)
					convey.So(errors.Is(err, games.ErrInvalidMove), convey.ShouldBeTrue)
				})
			})
		})

		convey.Convey("When a position is off the board", func() {
			_, _, _, err := Flip(s, 16)
			convey.So(errors.Is(err, games.ErrInvalidMove), convey.ShouldBeTrue)
		})

		convey.Convey("When every pair is found with one miss", func() {
			cur, _, _ := mustFlip(s, 0)
			cur, _, _ = mustFlip(cur, 1)
			var outcome *model.MemoryCardsOutcome
			for i := 0; i < Pairs; i++ {
				cur, _, _ = mustFlip(cur, i)
				cur, _, outcome = mustFlip(cur, i+Pairs)
			}

			convey.So(outcome, convey.ShouldNotBeNil)
			convey.So(outcome.Moves, convey.ShouldEqual, Pairs+1)
			convey.So(cur.Active, convey.ShouldBeFalse)
			convey.So(Stars(outcome.Moves), convey.ShouldEqual, 3)

			convey.Convey("Then the finished board refuses flips", func() {
				_, _, _, err := Flip(cur, 0)
				convey.So(err, convey.ShouldEqual, games.ErrGameOver)
			})
		})
	})
}

func TestStars(t *testing.T) {
	convey.Convey("Given finished boards", t, func() {
		convey.So(Stars(Pairs), convey.ShouldEqual, 3)
		convey.So(Stars(Pairs+2), convey.ShouldEqual, 3)
		convey.So(Stars(Pairs+3), convey.ShouldEqual, 2)
		convey.So(Stars(Pairs+5), convey.ShouldEqual, 2)
		convey.So(Stars(Pairs+10), convey.ShouldEqual, 1)
		convey.So(Stars(Pairs+11), convey.ShouldEqual, 0)
	})
}

func TestSymbolsIsACopy(t *testing.T) {
	convey.Convey("Given the deck returned by Symbols", t, func() {
		deck := Symbols()
		convey.So(len(deck), convey.ShouldEqual, Pairs)

		convey.Convey("When a caller overwrites it", func() {
			first := deck[0]
			for i := range deck {
				deck[i] = "X"
			}
			s := New(mocks.NewMockRandom())

			convey.Convey("Then new boards still use the original faces", func() {
				convey.So(Symbols()[0], convey.ShouldEqual, first)
				convey.So(s.Cards[0], convey.ShouldEqual, first)
				convey.So(s.Cards, convey.ShouldNotContain, "X")
			})
		})
	})
}
