package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jamiewatts/five-hundred/internal/config"
	"github.com/jamiewatts/five-hundred/internal/deck"
	"github.com/jamiewatts/five-hundred/internal/protocol"
	"github.com/jamiewatts/five-hundred/internal/server/storage"
)

// Server TCP 游戏服务器：接受连接、完成握手、交给匹配器。
// 会话一旦启动便独立运行，接受循环不再与其交互。
type Server struct {
	config      *config.Config
	decks       *deck.Repository
	matchmaker  *Matchmaker
	redis       *redis.Client
	leaderboard *storage.Leaderboard

	mu sync.Mutex
	ln net.Listener

	activeSessions atomic.Int32
}

// NewServer 创建服务器实例。Redis 不可用时排行榜自动降级为禁用。
func NewServer(cfg *config.Config, decks *deck.Repository) *Server {
	s := &Server{
		config: cfg,
		decks:  decks,
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("⚠️ Redis 连接失败，排行榜已禁用: %v", err)
			_ = rdb.Close()
		} else {
			s.redis = rdb
			s.leaderboard = storage.NewLeaderboard(rdb)
		}
	}

	s.matchmaker = NewMatchmaker(s.startSession)
	return s
}

// Start 开始监听并接受连接，阻塞直到监听器关闭
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", addr, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	log.Printf("🚀 服务器启动在 %s (已加载 %d 副牌)", ln.Addr(), s.decks.Len())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("接受连接失败: %w", err)
		}
		go s.handleConn(conn)
	}
}

// Addr 返回监听地址，未启动时为 nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// handleConn 完成握手：依次读取玩家名和牌桌名两行，
// 发送欢迎消息后交给匹配器。此后该连接归会话所有。
func (s *Server) handleConn(nc net.Conn) {
	pc := protocol.NewConn(nc)

	name, err := pc.ReadLine()
	if err != nil || name == "" {
		log.Printf("握手失败 (%s): 玩家名无效", nc.RemoteAddr())
		_ = pc.Close()
		return
	}
	table, err := pc.ReadLine()
	if err != nil || table == "" {
		log.Printf("握手失败 (%s): 牌桌名无效", nc.RemoteAddr())
		_ = pc.Close()
		return
	}

	player := &Player{ID: newPlayerID(), Name: name, conn: pc}
	if err := player.Send(protocol.NewMessage(protocol.MsgInfo, s.config.Server.Greeting)); err != nil {
		player.Close()
		return
	}

	s.matchmaker.Register(player, table)
}

// startSession 匹配器回调：牌桌凑满后启动独立的会话 goroutine
func (s *Server) startSession(table string, players []*Player) {
	sess := NewSession(table, players, s.decks, s.leaderboard)
	s.activeSessions.Add(1)
	go func() {
		defer s.activeSessions.Add(-1)
		sess.Run()
	}()
}

// ActiveSessions 返回进行中的会话数
func (s *Server) ActiveSessions() int {
	return int(s.activeSessions.Load())
}

// Shutdown 停止接受新连接并释放资源。已运行的会话自行结束。
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.ln != nil {
		_ = s.ln.Close()
	}
	s.mu.Unlock()

	if s.redis != nil {
		_ = s.redis.Close()
	}
	log.Println("服务器已关闭")
}
