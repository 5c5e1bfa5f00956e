package server

import (
	"log"
	"sync"
)

// tablePlayers 一局游戏需要的玩家数
const tablePlayers = 4

// pendingTable 等待凑满四人的牌桌
type pendingTable struct {
	name    string
	players []*Player // 按到达顺序
}

// Matchmaker 管理等待中的牌桌。注册表由互斥锁保护，
// 第四名玩家注册时牌桌被原子地移出注册表并移交给新会话，
// 之后的同名注册会创建全新的牌桌。
type Matchmaker struct {
	mu      sync.Mutex
	tables  map[string]*pendingTable
	onReady func(table string, players []*Player)
}

// NewMatchmaker 创建匹配器，onReady 在牌桌凑满四人时被调用
func NewMatchmaker(onReady func(table string, players []*Player)) *Matchmaker {
	return &Matchmaker{
		tables:  make(map[string]*pendingTable),
		onReady: onReady,
	}
}

// Register 将玩家注册到指定名称的牌桌，不存在则创建。
// 返回是否创建了新牌桌。凑满四人时牌桌在持锁期间移出注册表，
// 随后在锁外移交玩家。
func (m *Matchmaker) Register(p *Player, tableName string) bool {
	m.mu.Lock()

	t, exists := m.tables[tableName]
	if !exists {
		t = &pendingTable{name: tableName, players: make([]*Player, 0, tablePlayers)}
		m.tables[tableName] = t
	}
	t.players = append(t.players, p)
	seat := len(t.players)

	var ready []*Player
	if len(t.players) == tablePlayers {
		delete(m.tables, tableName)
		ready = t.players
	}
	m.mu.Unlock()

	log.Printf("👤 玩家 %s 加入牌桌 %s (%d/%d)", p.Name, tableName, seat, tablePlayers)

	if ready != nil {
		m.onReady(tableName, ready)
	}
	return !exists
}

// PendingTables 返回等待中的牌桌数量
func (m *Matchmaker) PendingTables() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables)
}

// PendingPlayers 返回指定牌桌当前的玩家数，牌桌不存在时返回 0
func (m *Matchmaker) PendingPlayers(tableName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tables[tableName]; ok {
		return len(t.players)
	}
	return 0
}
