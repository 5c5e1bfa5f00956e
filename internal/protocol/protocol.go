// Package protocol 实现单行文本协议：每条消息一行，
// 首字符为类型标签，其余为载荷，换行结束。
package protocol

import (
	"errors"
	"fmt"
)

// 消息类型标签
const (
	MsgInfo   byte = 'M' // 服务端→客户端：信息广播
	MsgHand   byte = 'H' // 服务端→客户端：发牌，26 字符
	MsgBid    byte = 'B' // 服务端→客户端：请求叫牌，空载荷为首叫，否则为当前领先叫牌
	MsgTrump  byte = 'T' // 服务端→客户端：叫牌结束后的最终定约牌
	MsgLead   byte = 'L' // 服务端→客户端：请求领出
	MsgFollow byte = 'P' // 服务端→客户端：请求跟牌，载荷为需跟的花色
	MsgAck    byte = 'A' // 服务端→客户端：确认收到出牌
	MsgOver   byte = 'O' // 服务端→客户端：比赛结束，收到后须关闭连接
)

// Pass 客户端放弃叫牌的应答
const Pass = "PP"

// ErrDisconnected 对端关闭了连接
var ErrDisconnected = errors.New("对端已断开连接")

// validTags 服务端→客户端合法标签集合
var validTags = map[byte]bool{
	MsgInfo:   true,
	MsgHand:   true,
	MsgBid:    true,
	MsgTrump:  true,
	MsgLead:   true,
	MsgFollow: true,
	MsgAck:    true,
	MsgOver:   true,
}

// Message 一条带类型标签的协议消息
type Message struct {
	Type    byte
	Payload string
}

// NewMessage 构造消息
func NewMessage(msgType byte, payload string) Message {
	return Message{Type: msgType, Payload: payload}
}

// Encode 编码为不含换行符的单行
func (m Message) Encode() string {
	return string(m.Type) + m.Payload
}

// Decode 将一行文本解码为消息
func Decode(line string) (Message, error) {
	if len(line) == 0 {
		return Message{}, fmt.Errorf("空消息行")
	}
	msg := Message{Type: line[0], Payload: line[1:]}
	if !validTags[msg.Type] {
		return Message{}, fmt.Errorf("无效的消息标签: %c", msg.Type)
	}
	return msg, nil
}

func (m Message) String() string {
	return fmt.Sprintf("%c[%s]", m.Type, m.Payload)
}
