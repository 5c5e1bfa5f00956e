package server

import (
	"net"

	"github.com/google/uuid"

	"github.com/jamiewatts/five-hundred/internal/protocol"
)

// Player 一名已完成握手的玩家及其消息通道
type Player struct {
	ID   string // 连接标识，用于日志与排行榜
	Name string
	conn *protocol.Conn
}

// NewPlayer 创建玩家
func NewPlayer(name string, conn net.Conn) *Player {
	return &Player{
		ID:   newPlayerID(),
		Name: name,
		conn: protocol.NewConn(conn),
	}
}

// newPlayerID 生成连接标识
func newPlayerID() string {
	return uuid.NewString()
}

// Send 向玩家发送一条消息
func (p *Player) Send(msg protocol.Message) error {
	return p.conn.WriteMessage(msg)
}

// ReadLine 读取玩家的一行应答（叫牌与出牌均为裸两字符行）
func (p *Player) ReadLine() (string, error) {
	return p.conn.ReadLine()
}

// Close 关闭玩家连接
func (p *Player) Close() {
	_ = p.conn.Close()
}
