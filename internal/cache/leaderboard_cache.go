// Package cache provides an optional Redis fast path for the global
// leaderboard's all-time ranking. The relational store stays the source
// of truth; cache misses and errors fall back to a full SQL fold.
package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"wordstreak/internal/game"
	"wordstreak/internal/models"
)

const globalAllTimeKey = "leaderboard:global:alltime"

// LeaderboardCache mirrors all-time global scores in a Redis sorted set.
type LeaderboardCache struct {
	client *redis.Client
}

// New connects a leaderboard cache to the Redis instance at addr.
func New(addr string) *LeaderboardCache {
	return &LeaderboardCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// Ping verifies the Redis connection.
func (c *LeaderboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// AddScore accumulates a newly recorded entry's score onto the user's
// all-time total.
func (c *LeaderboardCache) AddScore(ctx context.Context, userID int64, score int) error {
	member := strconv.FormatInt(userID, 10)
	return c.client.ZIncrBy(ctx, globalAllTimeKey, float64(score), member).Err()
}

// RemoveUser drops a user from the cached ranking, used on account
// deletion.
func (c *LeaderboardCache) RemoveUser(ctx context.Context, userID int64) error {
	member := strconv.FormatInt(userID, 10)
	return c.client.ZRem(ctx, globalAllTimeKey, member).Err()
}

// WindowedRanking reads the truncated all-time view straight from the
// sorted set: the top scorer plus the viewer's neighborhood. The bool
// result is false when the viewer is not cached and the caller should
// fall back to the relational fold.
func (c *LeaderboardCache) WindowedRanking(ctx context.Context, userID int64, before, after int) (*game.WindowedRanking, bool, error) {
	member := strconv.FormatInt(userID, 10)

	rank, err := c.client.ZRevRank(ctx, globalAllTimeKey, member).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read rank: %w", err)
	}

	top, err := c.rangeScores(ctx, 0, 0, userID)
	if err != nil {
		return nil, false, err
	}
	if len(top) == 0 {
		return nil, false, nil
	}

	start := rank - int64(before)
	if start < 0 {
		start = 0
	}
	window, err := c.rangeScores(ctx, start, rank+int64(after), userID)
	if err != nil {
		return nil, false, err
	}

	return &game.WindowedRanking{TopScore: top[0], Scores: window}, true, nil
}

// rangeScores reads a contiguous rank range with positions assigned
// from the set's own ordering.
func (c *LeaderboardCache) rangeScores(ctx context.Context, start, stop int64, currentUserID int64) ([]models.RankedScore, error) {
	members, err := c.client.ZRevRangeWithScores(ctx, globalAllTimeKey, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rank range: %w", err)
	}

	scores := make([]models.RankedScore, 0, len(members))
	for i, m := range members {
		userID, err := strconv.ParseInt(fmt.Sprint(m.Member), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed cache member %v: %w", m.Member, err)
		}
		scores = append(scores, models.RankedScore{
			UserID:           userID,
			Score:            int(m.Score),
			Position:         int(start) + i + 1,
			IsForCurrentUser: userID == currentUserID,
		})
	}
	return scores, nil
}
