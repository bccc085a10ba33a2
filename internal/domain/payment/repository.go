package payment

import (
	"context"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
)

// Repository は支払いリポジトリのインターフェース
type Repository interface {
	// Create は新しい支払いを作成する（予約の確定と同一トランザクションで行うため tx 必須）
	Create(ctx context.Context, tx transaction.Tx, p *Payment) error

	// GetByID はIDから支払いを取得する
	GetByID(ctx context.Context, id string) (*Payment, error)

	// GetByBookingID は予約IDから支払いを取得する
	// 1予約1支払いの存在チェックにも使用する
	GetByBookingID(ctx context.Context, bookingID string) (*Payment, error)

	// Update は支払いのステータスを更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, p *Payment) error
}
