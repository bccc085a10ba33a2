package booking

import (
	"context"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は予約とその座席関連を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetByID はIDから予約（座席付き）を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// GetByUserID はユーザーIDから予約一覧を新しい順で取得する
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*Booking, error)

	// Update は予約のステータスを更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetActiveByScreeningID は上映に紐づくアクティブな予約（保留中・確定済み）を
	// 座席付きで取得する。競合判定は挿入と同一トランザクション内で行うため tx を取る
	GetActiveByScreeningID(ctx context.Context, tx transaction.Tx, screeningID string) ([]*Booking, error)

	// CountActiveByScreeningID は上映に紐づくアクティブな予約数を返す
	CountActiveByScreeningID(ctx context.Context, screeningID string) (int, error)

	// CountActiveBySeatID は座席を参照するアクティブな予約数を返す
	CountActiveBySeatID(ctx context.Context, seatID string) (int, error)

	// GetOverduePending は期限を過ぎた保留中の予約を取得する
	GetOverduePending(ctx context.Context) ([]*Booking, error)
}
