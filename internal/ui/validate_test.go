package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamiewatts/five-hundred/internal/game/card"
)

func TestValidateBidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		leading  string
		expected string
		hasError bool
	}{
		{
			name:     "Opening bid",
			raw:      "4S",
			leading:  "",
			expected: "4S",
		},
		{
			name:     "Lowercase with spaces",
			raw:      "  6d ",
			leading:  "",
			expected: "6D",
		},
		{
			name:     "Pass over a leading bid",
			raw:      "pp",
			leading:  "6D",
			expected: "PP",
		},
		{
			name:     "Cannot pass the opening bid",
			raw:      "PP",
			leading:  "",
			hasError: true,
		},
		{
			name:     "Higher rank beats leading",
			raw:      "7S",
			leading:  "6H",
			expected: "7S",
		},
		{
			name:     "Higher suit at same rank",
			raw:      "6H",
			leading:  "6D",
			expected: "6H",
		},
		{
			name:     "Equal bid rejected",
			raw:      "6D",
			leading:  "6D",
			hasError: true,
		},
		{
			name:     "Lower bid rejected",
			raw:      "5H",
			leading:  "6S",
			hasError: true,
		},
		{
			name:     "Rank out of range",
			raw:      "3S",
			leading:  "",
			hasError: true,
		},
		{
			name:     "Ace is not a bid",
			raw:      "AH",
			leading:  "",
			hasError: true,
		},
		{
			name:     "Garbage input",
			raw:      "hello",
			leading:  "",
			hasError: true,
		},
		{
			name:     "Empty input",
			raw:      "",
			leading:  "",
			hasError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line, err := ValidateBidInput(tt.raw, tt.leading)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, line)
		})
	}
}

func TestValidatePlayInput(t *testing.T) {
	t.Parallel()

	hand, err := card.ParseHand("4S9SAD2H")
	require.NoError(t, err)

	spade := card.Spade
	heart := card.Heart
	club := card.Club

	tests := []struct {
		name     string
		raw      string
		follow   *card.Suit
		expected string
		hasError bool
	}{
		{
			name:     "Lead any card in hand",
			raw:      "9s",
			follow:   nil,
			expected: "9S",
		},
		{
			name:     "Card not in hand",
			raw:      "KC",
			follow:   nil,
			hasError: true,
		},
		{
			name:     "Garbage input",
			raw:      "??",
			follow:   nil,
			hasError: true,
		},
		{
			name:     "Follows the suit",
			raw:      "4S",
			follow:   &spade,
			expected: "4S",
		},
		{
			name:     "Must follow while holding the suit",
			raw:      "AD",
			follow:   &spade,
			hasError: true,
		},
		{
			name:     "Off-suit allowed when void",
			raw:      "2H",
			follow:   &club,
			expected: "2H",
		},
		{
			name:     "Single card of the suit is forced",
			raw:      "4S",
			follow:   &heart,
			hasError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := ValidatePlayInput(tt.raw, hand, tt.follow)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.String())
		})
	}
}
