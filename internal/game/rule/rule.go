// Package rule 实现五百分的叫牌与出牌规则。
package rule

import (
	"github.com/jamiewatts/five-hundred/internal/game/card"
)

// MaxBid 最大叫牌，出现后立即结束叫牌阶段
var MaxBid = card.Card{Rank: card.Rank9, Suit: card.Heart}

// suitBase 定约基础分，按王牌花色
var suitBase = map[card.Suit]int{
	card.Spade:   20,
	card.Club:    30,
	card.Diamond: 40,
	card.Heart:   50,
}

// IsValidBid 检查一张牌是否是合法叫牌（点数 4-9，任意花色）
func IsValidBid(c card.Card) bool {
	return c.Rank >= card.Rank4 && c.Rank <= card.Rank9
}

// BeatsBid 检查 challenger 是否严格高于当前领先叫牌 lead。
// 先比点数，点数相同才比花色（黑桃<梅花<方块<红心）。
func BeatsBid(lead, challenger card.Card) bool {
	if challenger.Rank != lead.Rank {
		return challenger.Rank > lead.Rank
	}
	return challenger.Suit > lead.Suit
}

// ContractPoints 计算定约分值：(目标墩数-4)*50 + 花色基础分
func ContractPoints(bid card.Card) int {
	return (int(bid.Rank)-4)*50 + suitBase[bid.Suit]
}

// Contract 定约：叫牌胜者的承诺，叫牌结束后不再变化
type Contract struct {
	Bid    card.Card // 最终叫牌
	Seat   int       // 定约座位
	Team   int       // 定约队伍（0 或 1）
	Goal   int       // 目标墩数（4-9）
	Points int       // 定约分值
}

// NewContract 根据最终叫牌和定约座位派生定约
func NewContract(bid card.Card, seat int) Contract {
	return Contract{
		Bid:    bid,
		Seat:   seat,
		Team:   TeamOfSeat(seat),
		Goal:   int(bid.Rank),
		Points: ContractPoints(bid),
	}
}

// TeamOfSeat 返回座位所属队伍：座位 {0,2} 为队伍 0，{1,3} 为队伍 1
func TeamOfSeat(seat int) int {
	return seat % 2
}

// TrickWinner 判定一墩的胜者座位。plays 按座位下标存放四张已出的牌。
// 先在跟牌花色中取最大点数；若王牌花色不同于跟牌花色且有人出了王牌，
// 则最大的王牌改判获胜。
func TrickWinner(plays [4]card.Card, lead, trump card.Suit) int {
	winner := -1
	for seat, c := range plays {
		if c.Suit != lead {
			continue
		}
		if winner == -1 || c.Rank > plays[winner].Rank {
			winner = seat
		}
	}
	if trump == lead {
		return winner
	}
	for seat, c := range plays {
		if c.Suit != trump {
			continue
		}
		if winner == -1 || plays[winner].Suit != trump || c.Rank > plays[winner].Rank {
			winner = seat
		}
	}
	return winner
}

// ScoreDelta 返回一手牌结束后定约队伍的积分变化：
// 达到目标墩数加定约分，否则扣定约分。
func ScoreDelta(contract Contract, tricksWon int) int {
	if tricksWon >= contract.Goal {
		return contract.Points
	}
	return -contract.Points
}

// MatchWinner 根据定约队伍的累计积分判定比赛是否结束。
// 返回获胜队伍（0 或 1）和是否结束：超过 499 定约队伍胜，低于 -499 对方胜。
func MatchWinner(contract Contract, contractTeamPoints int) (int, bool) {
	switch {
	case contractTeamPoints > 499:
		return contract.Team, true
	case contractTeamPoints < -499:
		return 1 - contract.Team, true
	default:
		return -1, false
	}
}
