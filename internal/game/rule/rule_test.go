package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamiewatts/five-hundred/internal/game/card"
)

func mustCard(t *testing.T, code string) card.Card {
	t.Helper()
	c, err := card.Parse(code)
	require.NoError(t, err)
	return c
}

func TestIsValidBid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code  string
		valid bool
	}{
		{"4S", true},
		{"9H", true},
		{"6D", true},
		{"3S", false}, // 点数低于 4
		{"TS", false}, // 点数高于 9
		{"AH", false},
		{"2C", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, IsValidBid(mustCard(t, tt.code)))
		})
	}
}

func TestBeatsBid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lead       string
		challenger string
		beats      bool
	}{
		{"Higher rank wins", "4H", "5S", true},
		{"Lower rank loses", "6S", "5H", false},
		{"Same rank higher suit", "5S", "5C", true},
		{"Same rank lower suit", "5D", "5C", false},
		{"Equal bid does not beat", "6D", "6D", false},
		{"Hearts beat diamonds at same rank", "7D", "7H", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.beats, BeatsBid(mustCard(t, tt.lead), mustCard(t, tt.challenger)))
		})
	}
}

func TestContractPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bid      string
		expected int
	}{
		{"4S", 20},  // 最低定约
		{"4H", 50},
		{"5S", 70},
		{"6D", 140},
		{"7C", 180},
		{"8H", 250},
		{"9S", 270},
		{"9H", 300}, // 最高定约
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.bid, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ContractPoints(mustCard(t, tt.bid)))
		})
	}
}

func TestNewContract(t *testing.T) {
	t.Parallel()

	c := NewContract(mustCard(t, "7D"), 3)
	assert.Equal(t, 3, c.Seat)
	assert.Equal(t, 1, c.Team)
	assert.Equal(t, 7, c.Goal)
	assert.Equal(t, 190, c.Points)
}

func TestTeamOfSeat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, TeamOfSeat(0))
	assert.Equal(t, 1, TeamOfSeat(1))
	assert.Equal(t, 0, TeamOfSeat(2))
	assert.Equal(t, 1, TeamOfSeat(3))
}

func TestTrickWinner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		plays  [4]string
		lead   card.Suit
		trump  card.Suit
		winner int
	}{
		{
			name:   "Highest of lead suit wins without trump",
			plays:  [4]string{"4S", "AS", "7S", "KS"},
			lead:   card.Spade,
			trump:  card.Heart,
			winner: 1,
		},
		{
			name:   "Off-suit cards never win",
			plays:  [4]string{"4D", "AS", "KC", "7D"},
			lead:   card.Diamond,
			trump:  card.Heart,
			winner: 3,
		},
		{
			name:   "Single trump beats ace of lead",
			plays:  [4]string{"AD", "2H", "KD", "QD"},
			lead:   card.Diamond,
			trump:  card.Heart,
			winner: 1,
		},
		{
			name:   "Highest trump wins among several",
			plays:  [4]string{"AD", "2H", "9H", "QD"},
			lead:   card.Diamond,
			trump:  card.Heart,
			winner: 2,
		},
		{
			name:   "Trump equals lead compares by rank only",
			plays:  [4]string{"4H", "AH", "7H", "KH"},
			lead:   card.Heart,
			trump:  card.Heart,
			winner: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var plays [4]card.Card
			for i, code := range tt.plays {
				plays[i] = mustCard(t, code)
			}
			assert.Equal(t, tt.winner, TrickWinner(plays, tt.lead, tt.trump))
		})
	}
}

func TestTrickWinnerTrumpedTrick(t *testing.T) {
	t.Parallel()

	plays := [4]card.Card{
		mustCard(t, "TD"),
		mustCard(t, "3C"),
		mustCard(t, "JD"),
		mustCard(t, "2D"),
	}
	// 一张小王牌压过所有方块
	assert.Equal(t, 1, TrickWinner(plays, card.Diamond, card.Club))
}

func TestScoreDelta(t *testing.T) {
	t.Parallel()

	contract := NewContract(mustCard(t, "6S"), 0) // 120 分，目标 6 墩

	tests := []struct {
		name      string
		tricksWon int
		expected  int
	}{
		{"Exactly goal", 6, 120},
		{"Above goal", 9, 120},
		{"All thirteen", 13, 120},
		{"One short", 5, -120},
		{"Zero tricks", 0, -120},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ScoreDelta(contract, tt.tricksWon))
		})
	}
}

func TestMatchWinner(t *testing.T) {
	t.Parallel()

	contract := NewContract(mustCard(t, "9H"), 1) // 队伍 1 定约

	tests := []struct {
		name     string
		points   int
		winner   int
		finished bool
	}{
		{"Under threshold continues", 300, -1, false},
		{"Exactly 499 continues", 499, -1, false},
		{"Over 499 contract team wins", 500, 1, true},
		{"Exactly -499 continues", -499, -1, false},
		{"Under -499 opponents win", -500, 0, true},
		{"Zero continues", 0, -1, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			winner, finished := MatchWinner(contract, tt.points)
			assert.Equal(t, tt.finished, finished)
			assert.Equal(t, tt.winner, winner)
		})
	}
}

func TestMaxBid(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mustCard(t, "9H"), MaxBid)
	assert.Equal(t, 300, ContractPoints(MaxBid))
	// 没有叫牌能高过 9H
	for _, code := range []string{"4S", "9S", "9D", "8H"} {
		assert.False(t, BeatsBid(MaxBid, mustCard(t, code)))
	}
}
