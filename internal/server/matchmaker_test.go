package server

import (
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPlayer 用 net.Pipe 构造玩家，返回对端供测试驱动
func newTestPlayer(t *testing.T, name string) (*Player, net.Conn) {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	t.Cleanup(func() {
		serverSide.Close()
		clientSide.Close()
	})
	return NewPlayer(name, serverSide), clientSide
}

func TestMatchmakerPromotesFourth(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var readyTable string
	var readyPlayers []*Player

	m := NewMatchmaker(func(table string, players []*Player) {
		mu.Lock()
		defer mu.Unlock()
		readyTable = table
		readyPlayers = players
	})

	names := []string{"zoe", "ann", "mia", "bob"}
	for i, name := range names {
		p, _ := newTestPlayer(t, name)
		created := m.Register(p, "alpha")
		assert.Equal(t, i == 0, created, "only first registration creates the table")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "alpha", readyTable)
	require.Len(t, readyPlayers, 4)
	// 移交顺序与到达顺序一致
	for i, name := range names {
		assert.Equal(t, name, readyPlayers[i].Name)
	}
	// 凑满后牌桌移出注册表
	assert.Equal(t, 0, m.PendingTables())
	assert.Equal(t, 0, m.PendingPlayers("alpha"))
}

func TestMatchmakerTablesAreIndependent(t *testing.T) {
	t.Parallel()

	m := NewMatchmaker(func(string, []*Player) {})

	for i := 0; i < 3; i++ {
		p, _ := newTestPlayer(t, "a")
		m.Register(p, "alpha")
	}
	for i := 0; i < 2; i++ {
		p, _ := newTestPlayer(t, "b")
		m.Register(p, "beta")
	}

	assert.Equal(t, 2, m.PendingTables())
	assert.Equal(t, 3, m.PendingPlayers("alpha"))
	assert.Equal(t, 2, m.PendingPlayers("beta"))
	assert.Equal(t, 0, m.PendingPlayers("gamma"))
}

func TestMatchmakerSameNameStartsFresh(t *testing.T) {
	t.Parallel()

	ready := 0
	m := NewMatchmaker(func(string, []*Player) { ready++ })

	for i := 0; i < 4; i++ {
		p, _ := newTestPlayer(t, "x")
		m.Register(p, "alpha")
	}
	assert.Equal(t, 1, ready)

	// 同名牌桌重新从零开始
	p, _ := newTestPlayer(t, "y")
	created := m.Register(p, "alpha")
	assert.True(t, created)
	assert.Equal(t, 1, m.PendingPlayers("alpha"))
	assert.Equal(t, 1, ready)
}

func TestMatchmakerConcurrentRegistrations(t *testing.T) {
	t.Parallel()

	const tables = 8

	var mu sync.Mutex
	seen := make(map[string]int)
	m := NewMatchmaker(func(table string, players []*Player) {
		mu.Lock()
		defer mu.Unlock()
		seen[table]++
		assert.Len(t, players, 4)
	})

	var wg sync.WaitGroup
	for i := 0; i < tables; i++ {
		table := string(rune('a' + i))
		for j := 0; j < 4; j++ {
			p, _ := newTestPlayer(t, "p")
			wg.Add(1)
			go func() {
				defer wg.Done()
				m.Register(p, table)
			}()
		}
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, tables)
	for table, n := range seen {
		assert.Equal(t, 1, n, "table %s promoted more than once", table)
	}
	assert.Equal(t, 0, m.PendingTables())
}
