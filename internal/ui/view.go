package ui

import (
	"fmt"
	"strings"

	"github.com/jamiewatts/five-hundred/internal/game/card"
)

// View renders the client interface.
func (m *Model) View() string {
	if m.quitting {
		return m.status + "\n"
	}

	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("♠ 500 ♥"))
	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render(m.headerLine()))
	sb.WriteString("\n\n")

	if len(m.hand) > 0 {
		sb.WriteString(BoxStyle.Render(m.renderHand()))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderInfoLog())
	sb.WriteString("\n")

	if m.prompt != PromptNone {
		sb.WriteString(PromptStyle.Render("> "))
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
	} else {
		sb.WriteString(DimStyle.Render(m.status))
		sb.WriteString("\n")
	}

	if m.errMsg != "" {
		sb.WriteString(ErrorStyle.Render("⚠️ " + m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("Ctrl+C 退出"))
	sb.WriteString("\n")

	return DocStyle.Render(sb.String())
}

// headerLine 顶部状态行：玩家、桌名、定约
func (m *Model) headerLine() string {
	parts := []string{
		fmt.Sprintf("玩家: %s", m.client.PlayerName),
		fmt.Sprintf("牌桌: %s", m.client.TableName),
	}
	if m.trump != nil {
		parts = append(parts, fmt.Sprintf("定约: %s", m.trump.Display()))
	} else if m.leadingBid != "" {
		parts = append(parts, fmt.Sprintf("当前叫牌: %s", m.leadingBid))
	}
	return strings.Join(parts, "  |  ")
}

// renderHand 按花色分行渲染手牌，红色花色高亮
func (m *Model) renderHand() string {
	groups := m.hand.BySuit()

	var rows []string
	for _, suit := range []card.Suit{card.Spade, card.Club, card.Diamond, card.Heart} {
		cards, ok := groups[suit]
		if !ok {
			continue
		}
		var cells []string
		for _, c := range cards {
			cells = append(cells, m.renderCard(c))
		}
		rows = append(rows, fmt.Sprintf("%s  %s", suit, strings.Join(cells, " ")))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderCard(c card.Card) string {
	if c.Suit.Color() == card.Red {
		return RedStyle.Render(c.Display())
	}
	return BlackStyle.Render(c.Display())
}

// renderInfoLog 最近几条公告
func (m *Model) renderInfoLog() string {
	start := 0
	if len(m.infoLog) > infoLogLines {
		start = len(m.infoLog) - infoLogLines
	}
	var sb strings.Builder
	for _, line := range m.infoLog[start:] {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
