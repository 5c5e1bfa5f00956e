package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jamiewatts/five-hundred/internal/deck"
	"github.com/jamiewatts/five-hundred/internal/game/card"
	"github.com/jamiewatts/five-hundred/internal/game/rule"
	"github.com/jamiewatts/five-hundred/internal/protocol"
	"github.com/jamiewatts/five-hundred/internal/server/storage"
)

// tricksPerHand 每手牌的墩数
const tricksPerHand = 13

// seatState 一个座位的会话内状态，仅由会话 goroutine 访问
type seatState struct {
	player   *Player
	hand     card.Hand
	eligible bool // 叫牌资格
}

// Session 一张牌桌的完整对局：落座、发牌、叫牌、出牌、计分，
// 直到某队积分越过终局阈值。每个会话独占一个 goroutine，
// 所有收发严格按回合顺序进行，同一时刻只有一个未完成的请求。
type Session struct {
	id    string
	table string
	seats [4]*seatState

	decks  *deck.Repository
	cursor int

	contract rule.Contract
	wins     [2]int // 本手各队已赢墩数
	points   [2]int // 各队累计积分

	leaderboard *storage.Leaderboard // 可为 nil
}

// seatError 记录出错的座位，用于断线定位
type seatError struct {
	seat int
	err  error
}

func (e *seatError) Error() string {
	return fmt.Sprintf("座位 %d: %v", e.seat, e.err)
}

func (e *seatError) Unwrap() error {
	return e.err
}

// NewSession 创建会话并接管四名玩家
func NewSession(table string, players []*Player, decks *deck.Repository, lb *storage.Leaderboard) *Session {
	s := &Session{
		id:          uuid.NewString(),
		table:       table,
		decks:       decks,
		leaderboard: lb,
	}
	// 按名字典序重新落座，决定队伍配对 {0,2} 对 {1,3}
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	for i, p := range sorted {
		s.seats[i] = &seatState{player: p}
	}
	return s
}

// Run 运行会话到终局，是会话 goroutine 的入口
func (s *Session) Run() {
	defer s.closeAll()

	log.Printf("🎮 牌桌 %s 开局 (会话 %s): %s/%s 对 %s/%s", s.table, s.id,
		s.seats[0].player.Name, s.seats[2].player.Name,
		s.seats[1].player.Name, s.seats[3].player.Name)

	s.announceTeams()

	for {
		s.wins = [2]int{}
		s.deal()

		if err := s.runBidding(); err != nil {
			s.abort(err)
			return
		}

		leader := s.contract.Seat
		for trick := 0; trick < tricksPerHand; trick++ {
			winner, err := s.playTrick(leader)
			if err != nil {
				s.abort(err)
				return
			}
			leader = winner
		}

		s.applyScore()

		if winner, over := rule.MatchWinner(s.contract, s.points[s.contract.Team]); over {
			s.finish(winner)
			return
		}
	}
}

// announceTeams 广播两队阵容
func (s *Session) announceTeams() {
	s.broadcast(fmt.Sprintf("Team1: %s, %s", s.seats[0].player.Name, s.seats[2].player.Name), -1)
	s.broadcast(fmt.Sprintf("Team2: %s, %s", s.seats[1].player.Name, s.seats[3].player.Name), -1)
}

// deal 从牌组仓库取当前牌组，按座位切成四段连续手牌并下发，
// 服务端保留每个座位的手牌副本用于合法性检查
func (s *Session) deal() {
	deckStr := s.decks.Deck(s.cursor)
	s.cursor = (s.cursor + 1) % s.decks.Len()

	hands := deck.Hands(deckStr)
	for i, st := range s.seats {
		hand, err := card.ParseHand(hands[i])
		if err != nil {
			// 牌组在启动时已校验，到这里只可能是编程错误
			panic(fmt.Sprintf("牌组 %d 校验后仍解析失败: %v", s.cursor, err))
		}
		st.hand = hand
		_ = st.player.Send(protocol.NewMessage(protocol.MsgHand, hands[i]))
	}
}

// runBidding 执行叫牌阶段并确定定约。
// 所有座位开始时均有资格，按座位顺序轮询；放弃叫牌即失去资格。
// 有人叫出最高叫牌 9♥ 时立即结束；否则只剩一个有资格座位时结束。
func (s *Session) runBidding() error {
	for _, st := range s.seats {
		st.eligible = true
	}

	var lead *card.Card

	for s.eligibleCount() > 1 || lead == nil {
		for i, st := range s.seats {
			if !st.eligible {
				continue
			}
			if s.eligibleCount() == 1 && lead != nil {
				break
			}
			// 最后一个有资格的座位在没有任何叫牌时必须成约
			mustBid := s.eligibleCount() == 1 && lead == nil

			bid, passed, err := s.askBid(i, lead, mustBid)
			if err != nil {
				return err
			}
			if passed {
				st.eligible = false
				s.broadcast(fmt.Sprintf("%s passes", st.player.Name), i)
				continue
			}

			lead = &bid
			s.broadcast(fmt.Sprintf("%s bids %s", st.player.Name, bid), i)

			if bid == rule.MaxBid {
				// 最高叫牌，其余座位全部失去资格
				for j, o := range s.seats {
					o.eligible = j == i
				}
				break
			}
		}
	}

	holder := s.soleEligible()
	s.contract = rule.NewContract(*lead, holder)
	s.broadcastAll(protocol.NewMessage(protocol.MsgTrump, lead.String()))

	log.Printf("📜 牌桌 %s: %s 成约 %s (目标 %d 墩, %d 分)",
		s.table, s.seats[holder].player.Name, lead, s.contract.Goal, s.contract.Points)
	return nil
}

// askBid 向一个座位请求叫牌。
// 非法或不够高的叫牌不会进入对局状态，而是重发请求让该座位重试。
func (s *Session) askBid(seat int, lead *card.Card, mustBid bool) (card.Card, bool, error) {
	st := s.seats[seat]
	payload := ""
	if lead != nil {
		payload = lead.String()
	}

	for {
		if err := st.player.Send(protocol.NewMessage(protocol.MsgBid, payload)); err != nil {
			return card.Card{}, false, &seatError{seat: seat, err: err}
		}
		line, err := st.player.ReadLine()
		if err != nil {
			return card.Card{}, false, &seatError{seat: seat, err: err}
		}

		if line == protocol.Pass {
			if mustBid {
				log.Printf("⚠️ 牌桌 %s: %s 是最后的有资格座位，放弃无效", s.table, st.player.Name)
				continue
			}
			return card.Card{}, true, nil
		}

		bid, perr := card.Parse(line)
		if perr != nil || !rule.IsValidBid(bid) || (lead != nil && !rule.BeatsBid(*lead, bid)) {
			log.Printf("⚠️ 牌桌 %s: %s 的叫牌 %q 无效，重新询问", s.table, st.player.Name, line)
			continue
		}
		return bid, false, nil
	}
}

// eligibleCount 返回仍有叫牌资格的座位数
func (s *Session) eligibleCount() int {
	n := 0
	for _, st := range s.seats {
		if st.eligible {
			n++
		}
	}
	return n
}

// soleEligible 返回第一个仍有资格的座位
func (s *Session) soleEligible() int {
	for i, st := range s.seats {
		if st.eligible {
			return i
		}
	}
	return -1
}

// playTrick 进行一墩：领出者先出任意一张手牌，其余座位按顺序跟牌，
// 手中有跟牌花色时必须跟。返回胜者座位。
func (s *Session) playTrick(leader int) (int, error) {
	var plays [4]card.Card
	var lead card.Suit

	for i := 0; i < 4; i++ {
		seat := (leader + i) % 4
		st := s.seats[seat]

		var c card.Card
		var err error
		if i == 0 {
			c, err = s.askLead(seat)
			lead = c.Suit
		} else {
			c, err = s.askFollow(seat, lead)
		}
		if err != nil {
			return 0, err
		}

		st.hand.Remove(c)
		plays[seat] = c
		if err := st.player.Send(protocol.NewMessage(protocol.MsgAck, "")); err != nil {
			return 0, &seatError{seat: seat, err: err}
		}
		s.broadcast(fmt.Sprintf("%s plays %s", st.player.Name, c), seat)
	}

	winner := rule.TrickWinner(plays, lead, s.contract.Bid.Suit)
	s.broadcast(fmt.Sprintf("%s won", s.seats[winner].player.Name), -1)
	s.wins[rule.TeamOfSeat(winner)]++
	return winner, nil
}

// askLead 请求领出，牌必须合法且在该座位手中
func (s *Session) askLead(seat int) (card.Card, error) {
	st := s.seats[seat]
	for {
		if err := st.player.Send(protocol.NewMessage(protocol.MsgLead, "")); err != nil {
			return card.Card{}, &seatError{seat: seat, err: err}
		}
		line, err := st.player.ReadLine()
		if err != nil {
			return card.Card{}, &seatError{seat: seat, err: err}
		}

		c, perr := card.Parse(line)
		if perr != nil || !st.hand.Contains(c) {
			log.Printf("⚠️ 牌桌 %s: %s 领出 %q 无效，重新询问", s.table, st.player.Name, line)
			continue
		}
		return c, nil
	}
}

// askFollow 请求跟牌，手中还有跟牌花色时必须跟该花色
func (s *Session) askFollow(seat int, lead card.Suit) (card.Card, error) {
	st := s.seats[seat]
	for {
		if err := st.player.Send(protocol.NewMessage(protocol.MsgFollow, string(lead.Char()))); err != nil {
			return card.Card{}, &seatError{seat: seat, err: err}
		}
		line, err := st.player.ReadLine()
		if err != nil {
			return card.Card{}, &seatError{seat: seat, err: err}
		}

		c, perr := card.Parse(line)
		if perr != nil || !st.hand.Contains(c) || (c.Suit != lead && st.hand.HasSuit(lead)) {
			log.Printf("⚠️ 牌桌 %s: %s 跟牌 %q 无效，重新询问", s.table, st.player.Name, line)
			continue
		}
		return c, nil
	}
}

// applyScore 一手结束后结算定约队伍积分并广播两队总分
func (s *Session) applyScore() {
	delta := rule.ScoreDelta(s.contract, s.wins[s.contract.Team])
	s.points[s.contract.Team] += delta

	s.broadcast(fmt.Sprintf("Team 1=%d, Team 2=%d", s.points[0], s.points[1]), -1)
	log.Printf("🧮 牌桌 %s: 定约队伍 %+d 分 (%d/%d 墩)", s.table, delta,
		s.wins[s.contract.Team], s.contract.Goal)
}

// finish 广播胜者并正常终局
func (s *Session) finish(winnerTeam int) {
	s.broadcast(fmt.Sprintf("Winner is Team %d", winnerTeam+1), -1)
	s.broadcastAll(protocol.NewMessage(protocol.MsgOver, ""))
	s.recordResults(winnerTeam)
	log.Printf("🏁 牌桌 %s 结束，Team %d 获胜 (%d 对 %d)",
		s.table, winnerTeam+1, s.points[winnerTeam], s.points[1-winnerTeam])
}

// abort 异常终局：通知其余玩家后关闭。断线不尝试换人或续局，
// 整场比赛随之结束。
func (s *Session) abort(err error) {
	var se *seatError
	if errors.As(err, &se) && errors.Is(se.err, protocol.ErrDisconnected) {
		name := s.seats[se.seat].player.Name
		log.Printf("💔 牌桌 %s: %s 中途断线", s.table, name)
		s.broadcast(fmt.Sprintf("%s disconnected early", name), se.seat)
		s.broadcastAll(protocol.NewMessage(protocol.MsgOver, ""))
		return
	}
	log.Printf("❌ 牌桌 %s 异常终止: %v", s.table, err)
}

// recordResults 将比赛结果写入排行榜（未配置时跳过）
func (s *Session) recordResults(winnerTeam int) {
	if s.leaderboard == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i, st := range s.seats {
		team := rule.TeamOfSeat(i)
		err := s.leaderboard.RecordMatchResult(ctx, st.player.ID, st.player.Name,
			team == s.contract.Team, team == winnerTeam)
		if err != nil {
			log.Printf("记录比赛结果失败: %v", err)
		}
	}
}

// broadcast 以 M 消息广播信息文本，exclude 为要跳过的座位（-1 表示发给所有人）
func (s *Session) broadcast(text string, exclude int) {
	for i, st := range s.seats {
		if i == exclude {
			continue
		}
		_ = st.player.Send(protocol.NewMessage(protocol.MsgInfo, text))
	}
}

// broadcastAll 将任意消息发给全部四个座位
func (s *Session) broadcastAll(msg protocol.Message) {
	for _, st := range s.seats {
		_ = st.player.Send(msg)
	}
}

// closeAll 关闭全部四个连接
func (s *Session) closeAll() {
	for _, st := range s.seats {
		st.player.Close()
	}
}
