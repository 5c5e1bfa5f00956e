package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	playerStatsKey    = "player:stats:"
	leaderboardKey    = "leaderboard:score"
	dailyLeaderboard  = "leaderboard:daily:"
	weeklyLeaderboard = "leaderboard:weekly:"
)

// PlayerStats 玩家统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	// 总计
	TotalMatches int `json:"total_matches"` // 总场次
	Wins         int `json:"wins"`          // 胜场
	Losses       int `json:"losses"`        // 败场

	// 定约方/防守方分开统计
	ContractMatches int `json:"contract_matches"` // 定约方场次
	ContractWins    int `json:"contract_wins"`    // 定约方胜场
	DefenceMatches  int `json:"defence_matches"`  // 防守方场次
	DefenceWins     int `json:"defence_wins"`     // 防守方胜场

	// 积分
	Score int `json:"score"` // 当前积分

	// 连胜/连败
	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"` // 最大连胜

	// 时间
	LastPlayedAt int64 `json:"last_played_at"` // 最后比赛时间
	CreatedAt    int64 `json:"created_at"`     // 首次比赛时间
}

// 积分规则
const (
	WinOnContract  = 30  // 定约方获胜
	WinDefending   = 15  // 防守方获胜
	LoseOnContract = -20 // 定约方失败
	LoseDefending  = -10 // 防守方失败

	// 连胜加成
	StreakBonus3  = 5  // 3 连胜加成
	StreakBonus5  = 10 // 5 连胜加成
	StreakBonus10 = 20 // 10 连胜加成
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// Leaderboard 排行榜存储
type Leaderboard struct {
	redis *redis.Client
}

// NewLeaderboard 创建排行榜存储
func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{redis: client}
}

// GetPlayerStats 获取玩家统计，不存在时返回 (nil, nil)
func (lb *Leaderboard) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	key := playerStatsKey + playerID
	data, err := lb.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SavePlayerStats 保存玩家统计
func (lb *Leaderboard) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	key := playerStatsKey + stats.PlayerID
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lb.redis.Set(ctx, key, data, 0).Err()
}

// getOrCreateStats 获取或创建玩家统计
func (lb *Leaderboard) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lb.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  time.Now().Unix(),
		}
	}
	return stats, nil
}

// updateRoleStats 更新定约/防守统计并返回基础积分变化
func updateRoleStats(stats *PlayerStats, onContract, isWinner bool) int {
	switch {
	case onContract && isWinner:
		stats.ContractMatches++
		stats.ContractWins++
		return WinOnContract
	case onContract && !isWinner:
		stats.ContractMatches++
		return LoseOnContract
	case !onContract && isWinner:
		stats.DefenceMatches++
		stats.DefenceWins++
		return WinDefending
	default: // !onContract && !isWinner
		stats.DefenceMatches++
		return LoseDefending
	}
}

// updateWinLossStats 更新胜负统计和连胜/连败
func updateWinLossStats(stats *PlayerStats, isWinner bool) {
	if isWinner {
		stats.Wins++
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
	} else {
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
	}

	if stats.CurrentStreak > stats.MaxWinStreak {
		stats.MaxWinStreak = stats.CurrentStreak
	}
}

// calculateStreakBonus 计算连胜加成
func calculateStreakBonus(streak int) int {
	switch {
	case streak >= 10:
		return StreakBonus10
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// RecordMatchResult 记录一场比赛的结果
func (lb *Leaderboard) RecordMatchResult(ctx context.Context, playerID, playerName string, onContract, isWinner bool) error {
	stats, err := lb.getOrCreateStats(ctx, playerID, playerName)
	if err != nil {
		return err
	}

	// 更新基本信息
	stats.PlayerName = playerName
	stats.TotalMatches++
	stats.LastPlayedAt = time.Now().Unix()

	// 更新角色和胜负统计
	scoreChange := updateRoleStats(stats, onContract, isWinner)
	updateWinLossStats(stats, isWinner)

	// 计算连胜加成并更新积分
	scoreChange += calculateStreakBonus(stats.CurrentStreak)
	stats.Score = max(0, stats.Score+scoreChange)

	// 保存并更新排行榜
	if err := lb.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lb.UpdateLeaderboard(ctx, stats)
}

// UpdateLeaderboard 更新排行榜
func (lb *Leaderboard) UpdateLeaderboard(ctx context.Context, stats *PlayerStats) error {
	// 更新总排行榜
	if err := lb.redis.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(stats.Score),
		Member: stats.PlayerID,
	}).Err(); err != nil {
		return err
	}

	// 更新每日排行榜
	today := time.Now().Format("2006-01-02")
	dailyKey := dailyLeaderboard + today
	if err := lb.redis.ZAdd(ctx, dailyKey, redis.Z{
		Score:  float64(stats.Score),
		Member: stats.PlayerID,
	}).Err(); err != nil {
		return err
	}
	// 设置过期时间（2天）
	lb.redis.Expire(ctx, dailyKey, 48*time.Hour)

	// 更新每周排行榜
	year, week := time.Now().ISOWeek()
	weeklyKey := fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	if err := lb.redis.ZAdd(ctx, weeklyKey, redis.Z{
		Score:  float64(stats.Score),
		Member: stats.PlayerID,
	}).Err(); err != nil {
		return err
	}
	// 设置过期时间（8天）
	lb.redis.Expire(ctx, weeklyKey, 8*24*time.Hour)

	return nil
}

// GetLeaderboard 获取总排行榜（按积分从高到低）
func (lb *Leaderboard) GetLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	results, err := lb.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, ok := result.Member.(string)
		if !ok {
			continue
		}

		stats, err := lb.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}

		winRate := 0.0
		if stats.TotalMatches > 0 {
			winRate = float64(stats.Wins) / float64(stats.TotalMatches) * 100
		}

		entries = append(entries, &LeaderboardEntry{
			Rank:       i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Score:      int(result.Score),
			Wins:       stats.Wins,
			WinRate:    winRate,
		})
	}

	return entries, nil
}

// GetPlayerRank 获取玩家排名，未上榜返回 -1
func (lb *Leaderboard) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := lb.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}
