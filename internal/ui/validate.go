package ui

import (
	"fmt"
	"strings"

	"github.com/jamiewatts/five-hundred/internal/game/card"
	"github.com/jamiewatts/five-hundred/internal/game/rule"
	"github.com/jamiewatts/five-hundred/internal/protocol"
)

// ValidateBidInput 校验叫牌输入。leading 为当前领先叫牌编码，空串表示首叫。
// 返回要发送的应答行。首叫不允许放弃，后续叫牌必须严格高于领先叫牌。
func ValidateBidInput(raw, leading string) (string, error) {
	input := strings.ToUpper(strings.TrimSpace(raw))

	if input == protocol.Pass {
		if leading == "" {
			return "", fmt.Errorf("开叫不能放弃")
		}
		return protocol.Pass, nil
	}

	bid, err := card.Parse(input)
	if err != nil {
		return "", fmt.Errorf("无效的叫牌: %q", raw)
	}
	if !rule.IsValidBid(bid) {
		return "", fmt.Errorf("叫牌点数必须在 4-9 之间")
	}
	if leading != "" {
		lead, err := card.Parse(leading)
		if err == nil && !rule.BeatsBid(lead, bid) {
			return "", fmt.Errorf("%s 不高于当前叫牌 %s", bid, lead)
		}
	}
	return bid.String(), nil
}

// ValidatePlayInput 校验出牌输入。follow 非 nil 时为需要跟的花色：
// 手中还有该花色时必须跟。返回要打出的牌。
func ValidatePlayInput(raw string, hand card.Hand, follow *card.Suit) (card.Card, error) {
	input := strings.ToUpper(strings.TrimSpace(raw))

	c, err := card.Parse(input)
	if err != nil {
		return card.Card{}, fmt.Errorf("无效的牌: %q", raw)
	}
	if !hand.Contains(c) {
		return card.Card{}, fmt.Errorf("%s 不在你的手牌中", c)
	}
	if follow != nil && c.Suit != *follow && hand.HasSuit(*follow) {
		return card.Card{}, fmt.Errorf("必须跟 %s", follow)
	}
	return c, nil
}
