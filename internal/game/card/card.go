package card

import (
	"fmt"
)

// Suit 定义花色，数值顺序即叫牌比较顺序（黑桃最低，红心最高）
type Suit int

// Rank 定义点数，数值顺序即墩内比较顺序
type Rank int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Spade Suit = iota // 黑桃
	Club              // 梅花
	Diamond           // 方块
	Heart             // 红心
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Club:    "♣",
	Diamond: "♦",
	Heart:   "♥",
}

// suitChars 花色与协议字符映射表
var suitChars = map[Suit]byte{
	Spade:   'S',
	Club:    'C',
	Diamond: 'D',
	Heart:   'H',
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Char 返回花色的协议字符
func (s Suit) Char() byte {
	if c, ok := suitChars[s]; ok {
		return c
	}
	return '?'
}

// Color 返回花色的颜色
func (s Suit) Color() CardColor {
	if s == Heart || s == Diamond {
		return Red
	}
	return Black
}

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// rankChars 点数与协议字符映射表
var rankChars = map[Rank]byte{
	Rank2:  '2',
	Rank3:  '3',
	Rank4:  '4',
	Rank5:  '5',
	Rank6:  '6',
	Rank7:  '7',
	Rank8:  '8',
	Rank9:  '9',
	Rank10: 'T',
	RankJ:  'J',
	RankQ:  'Q',
	RankK:  'K',
	RankA:  'A',
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[byte]Rank{}

// charToSuit 用于快速查找字符对应的 Suit
var charToSuit = map[byte]Suit{}

func init() {
	for r, c := range rankChars {
		charToRank[c] = r
	}
	for s, c := range suitChars {
		charToSuit[c] = s
	}
}

func (r Rank) String() string {
	if c, ok := rankChars[r]; ok {
		return string(c)
	}
	return "?"
}

// Char 返回点数的协议字符
func (r Rank) Char() byte {
	if c, ok := rankChars[r]; ok {
		return c
	}
	return '?'
}

// RankFromChar 将协议字符转换为 Rank
func RankFromChar(char byte) (Rank, error) {
	if rank, ok := charToRank[char]; ok {
		return rank, nil
	}
	return -1, fmt.Errorf("无法识别的点数: %c", char)
}

// SuitFromChar 将协议字符转换为 Suit
func SuitFromChar(char byte) (Suit, error) {
	if suit, ok := charToSuit[char]; ok {
		return suit, nil
	}
	return -1, fmt.Errorf("无法识别的花色: %c", char)
}

// Card 定义一张牌，不可变值类型
type Card struct {
	Rank Rank
	Suit Suit
}

// Parse 解析两字符牌面编码，点数在前花色在后，如 "4S"、"TD"、"9H"
func Parse(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("无效的牌面编码: %q", code)
	}
	rank, err := RankFromChar(code[0])
	if err != nil {
		return Card{}, err
	}
	suit, err := SuitFromChar(code[1])
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// String 返回两字符牌面编码
func (c Card) String() string {
	return string([]byte{c.Rank.Char(), c.Suit.Char()})
}

// Display 返回人类可读的牌面，如 "9♥"
func (c Card) Display() string {
	return c.Rank.String() + c.Suit.String()
}
