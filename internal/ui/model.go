// Package ui 实现由服务端提示驱动的终端客户端界面。
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jamiewatts/five-hundred/internal/client"
	"github.com/jamiewatts/five-hundred/internal/game/card"
	"github.com/jamiewatts/five-hundred/internal/logger"
	"github.com/jamiewatts/five-hundred/internal/protocol"
)

// Prompt 当前待应答的服务端请求
type Prompt int

const (
	PromptNone   Prompt = iota
	PromptBid           // 请求叫牌
	PromptLead          // 请求领出
	PromptFollow        // 请求跟牌
)

// 退出码，与历史客户端保持一致
const (
	ExitOK            = 0
	ExitProtocolError = 6
)

// 日志窗口行数
const infoLogLines = 8

// tea 消息
type (
	// ServerMsg 收到一条服务端消息
	ServerMsg struct{ Msg protocol.Message }
	// DisconnectedMsg 连接被关闭
	DisconnectedMsg struct{}
)

// Model 客户端主模型：渲染服务端驱动的提示并采集输入
type Model struct {
	client *client.Client

	hand       card.Hand
	trump      *card.Card
	prompt     Prompt
	leadingBid string     // 当前领先叫牌编码，空串为首叫
	followSuit card.Suit  // PromptFollow 时需跟的花色
	lastPlay   *card.Card // 已发送待确认的出牌
	infoLog    []string

	input    textinput.Model
	errMsg   string
	status   string
	width    int
	height   int
	quitting bool
	exitCode int
}

// NewModel 创建客户端模型，连接须已建立
func NewModel(c *client.Client) *Model {
	ti := textinput.New()
	ti.CharLimit = 4
	ti.Width = 20

	return &Model{
		client: c,
		input:  ti,
		status: "等待其他玩家加入...",
	}
}

// ExitCode 返回进程退出码
func (m *Model) ExitCode() int {
	return m.exitCode
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listenForMessages(), textinput.Blink)
}

func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return DisconnectedMsg{}
		}
		return ServerMsg{Msg: msg}
	}
}

// Update handles tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ServerMsg:
		cmd := m.handleServerMessage(msg.Msg)
		if cmd != nil {
			return m, cmd
		}
		cmds = append(cmds, m.listenForMessages())

	case DisconnectedMsg:
		if !m.quitting {
			m.quitting = true
			m.status = "与服务器的连接已断开"
		}
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.client.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			if m.prompt != PromptNone {
				m.submitInput()
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleServerMessage 处理一条服务端消息，返回非 nil 时结束程序
func (m *Model) handleServerMessage(msg protocol.Message) tea.Cmd {
	logger.LogInfo("收到消息: %s", msg)

	switch msg.Type {
	case protocol.MsgInfo:
		m.appendInfo(msg.Payload)
		if strings.HasSuffix(msg.Payload, "disconnected early") {
			m.quitting = true
			m.status = msg.Payload
			return tea.Quit
		}

	case protocol.MsgHand:
		hand, err := card.ParseHand(msg.Payload)
		if err != nil || len(hand) != 13 {
			return m.protocolError(fmt.Sprintf("手牌无效: %v", err))
		}
		m.hand = hand
		m.trump = nil
		m.leadingBid = ""
		m.status = "叫牌阶段"

	case protocol.MsgBid:
		m.leadingBid = msg.Payload
		m.showPrompt(PromptBid)

	case protocol.MsgTrump:
		c, err := card.Parse(msg.Payload)
		if err != nil {
			return m.protocolError(fmt.Sprintf("定约牌无效: %q", msg.Payload))
		}
		m.trump = &c
		m.status = fmt.Sprintf("定约 %s，王牌 %s", c.Display(), c.Suit)

	case protocol.MsgLead:
		m.showPrompt(PromptLead)

	case protocol.MsgFollow:
		if len(msg.Payload) != 1 {
			return m.protocolError(fmt.Sprintf("跟牌花色无效: %q", msg.Payload))
		}
		suit, err := card.SuitFromChar(msg.Payload[0])
		if err != nil {
			return m.protocolError(fmt.Sprintf("跟牌花色无效: %q", msg.Payload))
		}
		m.followSuit = suit
		m.showPrompt(PromptFollow)

	case protocol.MsgAck:
		if m.lastPlay == nil {
			return m.protocolError("收到意外的出牌确认")
		}
		m.hand.Remove(*m.lastPlay)
		m.lastPlay = nil

	case protocol.MsgOver:
		m.quitting = true
		m.status = "比赛结束"
		m.client.Close()
		return tea.Quit

	default:
		return m.protocolError(fmt.Sprintf("意外的消息标签: %c", msg.Type))
	}
	return nil
}

// protocolError 致命协议错误：记录并以退出码 6 结束
func (m *Model) protocolError(detail string) tea.Cmd {
	logger.LogError("协议错误: %s", detail)
	m.quitting = true
	m.exitCode = ExitProtocolError
	m.status = "Protocol Error."
	m.client.Close()
	return tea.Quit
}

// showPrompt 激活输入提示
func (m *Model) showPrompt(p Prompt) {
	m.prompt = p
	m.errMsg = ""
	m.input.Reset()
	m.input.Focus()

	switch p {
	case PromptBid:
		if m.leadingBid == "" {
			m.input.Placeholder = "Bid (如 4S)"
		} else {
			m.input.Placeholder = fmt.Sprintf("[%s] Bid 或 PP 放弃", m.leadingBid)
		}
	case PromptLead:
		m.input.Placeholder = "Lead (如 AH)"
	case PromptFollow:
		m.input.Placeholder = fmt.Sprintf("[%c] play", m.followSuit.Char())
	}
}

// submitInput 校验并发送当前输入。输入非法时仅提示并保持等待，
// 合法的应答才会发往服务器。
func (m *Model) submitInput() {
	raw := m.input.Value()

	switch m.prompt {
	case PromptBid:
		line, err := ValidateBidInput(raw, m.leadingBid)
		if err != nil {
			m.errMsg = err.Error()
			m.input.Reset()
			return
		}
		if err := m.client.SendLine(line); err != nil {
			m.errMsg = "发送失败"
			return
		}

	case PromptLead:
		c, err := ValidatePlayInput(raw, m.hand, nil)
		if err != nil {
			m.errMsg = err.Error()
			m.input.Reset()
			return
		}
		if err := m.client.SendLine(c.String()); err != nil {
			m.errMsg = "发送失败"
			return
		}
		m.lastPlay = &c

	case PromptFollow:
		c, err := ValidatePlayInput(raw, m.hand, &m.followSuit)
		if err != nil {
			m.errMsg = err.Error()
			m.input.Reset()
			return
		}
		if err := m.client.SendLine(c.String()); err != nil {
			m.errMsg = "发送失败"
			return
		}
		m.lastPlay = &c
	}

	m.prompt = PromptNone
	m.errMsg = ""
	m.input.Reset()
	m.input.Blur()
}

// appendInfo 追加一条信息日志
func (m *Model) appendInfo(text string) {
	m.infoLog = append(m.infoLog, text)
	if len(m.infoLog) > 64 {
		m.infoLog = m.infoLog[len(m.infoLog)-64:]
	}
}
