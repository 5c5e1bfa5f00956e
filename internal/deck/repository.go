// Package deck 管理启动时加载的预洗牌组，会话只读循环复用。
package deck

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jamiewatts/five-hundred/internal/game/card"
)

const (
	// DeckChars 一副牌的编码长度：52 张 × 2 字符
	DeckChars = 104
	// HandChars 一名玩家的手牌编码长度：13 张 × 2 字符
	HandChars = 26
)

// Repository 存放所有已加载的牌组。加载后不再修改，可被任意多个会话并发读取。
type Repository struct {
	decks []string
}

// Load 从文件加载牌组，每行一副牌，逐副校验
func Load(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开牌组文件失败: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取牌组文件失败: %w", err)
	}
	return FromLines(lines)
}

// FromLines 从内存中的牌组编码行构造仓库
func FromLines(lines []string) (*Repository, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("牌组文件为空")
	}
	decks := make([]string, 0, len(lines))
	for i, line := range lines {
		if err := Validate(line); err != nil {
			return nil, fmt.Errorf("第 %d 副牌无效: %w", i+1, err)
		}
		decks = append(decks, line)
	}
	return &Repository{decks: decks}, nil
}

// Validate 校验一副牌：104 字符、52 张合法且不重复的牌
func Validate(deck string) error {
	if len(deck) != DeckChars {
		return fmt.Errorf("牌组长度应为 %d，实际 %d", DeckChars, len(deck))
	}
	seen := make(map[card.Card]bool, 52)
	for i := 0; i < DeckChars; i += 2 {
		c, err := card.Parse(deck[i : i+2])
		if err != nil {
			return err
		}
		if seen[c] {
			return fmt.Errorf("牌 %s 重复出现", c)
		}
		seen[c] = true
	}
	return nil
}

// Len 返回牌组数量
func (r *Repository) Len() int {
	return len(r.decks)
}

// Deck 返回第 i 副牌，下标按牌组数量取模循环
func (r *Repository) Deck(i int) string {
	return r.decks[i%len(r.decks)]
}

// Hands 将一副牌按座位顺序切成四段连续的 13 张手牌编码
func Hands(deck string) [4]string {
	var hands [4]string
	for seat := 0; seat < 4; seat++ {
		hands[seat] = deck[seat*HandChars : (seat+1)*HandChars]
	}
	return hands
}
