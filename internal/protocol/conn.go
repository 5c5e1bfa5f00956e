package protocol

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"syscall"
)

// Conn 在字节流上收发换行分隔的协议帧
type Conn struct {
	raw net.Conn
	r   *bufio.Reader
	w   *bufio.Writer

	mu     sync.Mutex
	closed bool
}

// NewConn 包装一个网络连接
func NewConn(raw net.Conn) *Conn {
	return &Conn{
		raw: raw,
		r:   bufio.NewReader(raw),
		w:   bufio.NewWriter(raw),
	}
}

// ReadLine 读取一行（不含换行符）。对端关闭时返回 ErrDisconnected。
// 历史实现用字面量 "EOF" 表示断开，这里同样视为断开。
func (c *Conn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
			return "", ErrDisconnected
		}
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "EOF" {
		return "", ErrDisconnected
	}
	return line, nil
}

// ReadMessage 读取并解码一条服务端消息
func (c *Conn) ReadMessage() (Message, error) {
	line, err := c.ReadLine()
	if err != nil {
		return Message{}, err
	}
	return Decode(line)
}

// WriteLine 写出一行并立即冲刷。对端已关闭导致的写失败
// 与读路径一样归一为 ErrDisconnected。
func (c *Conn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrDisconnected
	}
	if _, err := c.w.WriteString(line + "\n"); err != nil {
		return mapWriteErr(err)
	}
	if err := c.w.Flush(); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

// mapWriteErr 识别对端关闭类的写错误
func mapWriteErr(err error) error {
	if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return ErrDisconnected
	}
	return err
}

// WriteMessage 编码并写出一条消息
func (c *Conn) WriteMessage(msg Message) error {
	return c.WriteLine(msg.Encode())
}

// Close 关闭底层连接
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.raw.Close()
}

// RemoteAddr 返回对端地址
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}
