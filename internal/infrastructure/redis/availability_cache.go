package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// AvailabilityCacheInterface は予約済み座席数キャッシュの操作を抽象化する
type AvailabilityCacheInterface interface {
	GetBookedCount(ctx context.Context, screeningID string) (int, error)
	SetBookedCount(ctx context.Context, screeningID string, count int, ttl time.Duration) error
	Invalidate(ctx context.Context, screeningID string) error
}

// AvailabilityCache は上映ごとの予約済み座席数のキャッシュを管理する
// 空席状況は常に予約テーブルから導出されるため、キャッシュは件数のヒントに留める
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache は新しいAvailabilityCacheインスタンスを作成する
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// GetBookedCount は上映の予約済み座席数をキャッシュから取得する
func (c *AvailabilityCache) GetBookedCount(ctx context.Context, screeningID string) (int, error) {
	key := c.bookedCountKey(screeningID)
	val, err := c.client.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// SetBookedCount は上映の予約済み座席数をキャッシュに保存する
func (c *AvailabilityCache) SetBookedCount(ctx context.Context, screeningID string, count int, ttl time.Duration) error {
	key := c.bookedCountKey(screeningID)
	err := c.client.Set(ctx, key, count, ttl).Err()
	if err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は上映のキャッシュを無効化する
// 予約の作成・キャンセル・期限切れで呼び出す
func (c *AvailabilityCache) Invalidate(ctx context.Context, screeningID string) error {
	key := c.bookedCountKey(screeningID)
	err := c.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) bookedCountKey(screeningID string) string {
	return fmt.Sprintf("screenings:booked:%s", screeningID)
}

var _ AvailabilityCacheInterface = (*AvailabilityCache)(nil)
