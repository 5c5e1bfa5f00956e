package card

import (
	"fmt"
	"sort"
	"strings"
)

// Hand 定义一名玩家的手牌，无序多重集合，按值移除
type Hand []Card

// ParseHand 解析连接在一起的牌面编码串（每张牌两字符）
func ParseHand(codes string) (Hand, error) {
	if len(codes)%2 != 0 {
		return nil, fmt.Errorf("手牌编码长度必须为偶数: %d", len(codes))
	}
	hand := make(Hand, 0, len(codes)/2)
	for i := 0; i < len(codes); i += 2 {
		c, err := Parse(codes[i : i+2])
		if err != nil {
			return nil, err
		}
		hand = append(hand, c)
	}
	return hand, nil
}

// String 返回连接在一起的牌面编码串
func (h Hand) String() string {
	var sb strings.Builder
	sb.Grow(len(h) * 2)
	for _, c := range h {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Contains 检查手牌中是否有指定的牌
func (h Hand) Contains(c Card) bool {
	for _, hc := range h {
		if hc == c {
			return true
		}
	}
	return false
}

// HasSuit 检查手牌中是否还有指定花色的牌
func (h Hand) HasSuit(s Suit) bool {
	for _, hc := range h {
		if hc.Suit == s {
			return true
		}
	}
	return false
}

// Remove 按值移除一张牌，返回是否移除成功
func (h *Hand) Remove(c Card) bool {
	for i, hc := range *h {
		if hc == c {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}
	return false
}

// BySuit 按花色分组，每组内点数从大到小排序，用于客户端展示
func (h Hand) BySuit() map[Suit][]Card {
	groups := make(map[Suit][]Card, 4)
	for _, c := range h {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	for s := range groups {
		sort.Slice(groups[s], func(i, j int) bool {
			return groups[s][i].Rank > groups[s][j].Rank
		})
	}
	return groups
}
