// Package client 实现连接游戏服务器的 TCP 行协议客户端。
package client

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/jamiewatts/five-hundred/internal/logger"
	"github.com/jamiewatts/five-hundred/internal/protocol"
)

const dialTimeout = 10 * time.Second

// Client 游戏客户端连接
type Client struct {
	Addr       string
	PlayerName string
	TableName  string

	conn    *protocol.Conn
	receive chan protocol.Message
	done    chan struct{}

	// 回调
	OnClose func()

	mu     sync.Mutex
	closed bool
}

// NewClient 创建客户端
func NewClient(addr, playerName, tableName string) *Client {
	return &Client{
		Addr:       addr,
		PlayerName: playerName,
		TableName:  tableName,
		receive:    make(chan protocol.Message, 64),
		done:       make(chan struct{}),
	}
}

// Connect 连接服务器并完成握手：依次发送玩家名和牌桌名两行
func (c *Client) Connect() error {
	nc, err := net.DialTimeout("tcp", c.Addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("连接 %s 失败: %w", c.Addr, err)
	}
	c.conn = protocol.NewConn(nc)

	if err := c.conn.WriteLine(c.PlayerName); err != nil {
		_ = c.conn.Close()
		return err
	}
	if err := c.conn.WriteLine(c.TableName); err != nil {
		_ = c.conn.Close()
		return err
	}

	go c.readPump()
	return nil
}

// readPump 从服务器读取消息并投递到接收通道
func (c *Client) readPump() {
	defer func() {
		c.Close()
		if c.OnClose != nil {
			c.OnClose()
		}
	}()

	for {
		msg, err := c.conn.ReadMessage()
		if err != nil {
			if !errors.Is(err, protocol.ErrDisconnected) {
				logger.LogError("读取服务器消息失败: %v", err)
			}
			return
		}

		select {
		case c.receive <- msg:
		case <-c.done:
			return
		}
	}
}

// Receive 接收消息（阻塞）
func (c *Client) Receive() (protocol.Message, error) {
	select {
	case msg := <-c.receive:
		return msg, nil
	case <-c.done:
		return protocol.Message{}, protocol.ErrDisconnected
	}
}

// SendLine 发送一行裸文本（叫牌与出牌应答不带标签）
func (c *Client) SendLine(line string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return protocol.ErrDisconnected
	}
	c.mu.Unlock()
	return c.conn.WriteLine(line)
}

// Close 关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.conn != nil
}
