package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamiewatts/five-hundred/internal/client"
	"github.com/jamiewatts/five-hundred/internal/game/card"
	"github.com/jamiewatts/five-hundred/internal/protocol"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(client.NewClient("127.0.0.1:4999", "ann", "alpha"))
}

const testHand = "2S3S4S5S6S7S8S9STSJSQSKSAS"

func TestModelHandlesInfo(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgInfo, "Team1: ann, mia"))
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"Team1: ann, mia"}, m.infoLog)
	assert.False(t, m.quitting)
}

func TestModelQuitsOnEarlyDisconnectNotice(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgInfo, "bob disconnected early"))
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, ExitOK, m.ExitCode())
}

func TestModelHandlesHand(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgHand, testHand))
	assert.Nil(t, cmd)
	assert.Len(t, m.hand, 13)
}

func TestModelRejectsBadHand(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgHand, "XXYY"))
	assert.NotNil(t, cmd)
	assert.Equal(t, ExitProtocolError, m.ExitCode())
}

func TestModelBidPrompt(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	// 首叫：空载荷
	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgBid, ""))
	assert.Nil(t, cmd)
	assert.Equal(t, PromptBid, m.prompt)
	assert.Empty(t, m.leadingBid)

	// 有领先叫牌
	cmd = m.handleServerMessage(protocol.NewMessage(protocol.MsgBid, "6D"))
	assert.Nil(t, cmd)
	assert.Equal(t, "6D", m.leadingBid)
}

func TestModelHandlesTrump(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgTrump, "9H"))
	assert.Nil(t, cmd)
	require.NotNil(t, m.trump)
	assert.Equal(t, "9H", m.trump.String())

	cmd = m.handleServerMessage(protocol.NewMessage(protocol.MsgTrump, "zz"))
	assert.NotNil(t, cmd)
	assert.Equal(t, ExitProtocolError, m.ExitCode())
}

func TestModelPlayPrompts(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgLead, ""))
	assert.Nil(t, cmd)
	assert.Equal(t, PromptLead, m.prompt)

	cmd = m.handleServerMessage(protocol.NewMessage(protocol.MsgFollow, "D"))
	assert.Nil(t, cmd)
	assert.Equal(t, PromptFollow, m.prompt)
	assert.Equal(t, card.Diamond, m.followSuit)

	cmd = m.handleServerMessage(protocol.NewMessage(protocol.MsgFollow, "x"))
	assert.NotNil(t, cmd)
	assert.Equal(t, ExitProtocolError, m.ExitCode())
}

func TestModelAckRemovesPlayedCard(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	require.Nil(t, m.handleServerMessage(protocol.NewMessage(protocol.MsgHand, testHand)))

	played := card.Card{Rank: card.Rank4, Suit: card.Spade}
	m.lastPlay = &played

	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgAck, ""))
	assert.Nil(t, cmd)
	assert.Len(t, m.hand, 12)
	assert.False(t, m.hand.Contains(played))
	assert.Nil(t, m.lastPlay)
}

func TestModelUnexpectedAckIsProtocolError(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgAck, ""))
	assert.NotNil(t, cmd)
	assert.Equal(t, ExitProtocolError, m.ExitCode())
}

func TestModelQuitsOnOver(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	cmd := m.handleServerMessage(protocol.NewMessage(protocol.MsgOver, ""))
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, ExitOK, m.ExitCode())
}
