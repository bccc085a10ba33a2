package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-booking/internal/pkg/metrics"
)

// BookingExpirer は期限切れ予約を失効させるインターフェース
type BookingExpirer interface {
	ExpireOverdueBookings(ctx context.Context) (int, error)
}

// ExpiredBookingCleaner は期限切れ予約を定期的に失効させるワーカー
// 失効は読み取り時にも遅延確定されるため、このワーカーは補助的なもの
type ExpiredBookingCleaner struct {
	bookingService BookingExpirer
	metrics        *metrics.Metrics
	interval       time.Duration
	stopCh         chan struct{}
	doneCh         chan struct{}
}

// NewExpiredBookingCleaner は新しいクリーナーを作成
func NewExpiredBookingCleaner(
	bs BookingExpirer,
	m *metrics.Metrics,
	interval time.Duration,
) *ExpiredBookingCleaner {
	return &ExpiredBookingCleaner{
		bookingService: bs,
		metrics:        m,
		interval:       interval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start はクリーナーを開始
func (c *ExpiredBookingCleaner) Start(ctx context.Context) {
	logger.Info("期限切れ予約クリーナー開始",
		zap.Duration("interval", c.interval),
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("期限切れ予約クリーナー停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("期限切れ予約クリーナー停止（シグナル受信）")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// Stop はクリーナーを停止
func (c *ExpiredBookingCleaner) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// cleanup は期限切れ予約を失効させる
func (c *ExpiredBookingCleaner) cleanup(ctx context.Context) {
	log := logger.Get()
	log.Debug("期限切れ予約のクリーンアップ開始")

	count, err := c.bookingService.ExpireOverdueBookings(ctx)
	if err != nil {
		log.Error("期限切れ予約のクリーンアップ失敗", zap.Error(err))
		return
	}

	if count > 0 {
		if c.metrics != nil {
			c.metrics.ExpiredBookingsTotal.Add(float64(count))
		}
		log.Info("期限切れ予約を失効", zap.Int("count", count))
	} else {
		log.Debug("期限切れ予約なし")
	}
}
