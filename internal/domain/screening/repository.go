package screening

import (
	"context"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
)

// Repository は上映リポジトリのインターフェース
type Repository interface {
	// Create は新しい上映を作成する
	Create(ctx context.Context, s *Screening) error

	// GetByID はIDから上映を取得する
	GetByID(ctx context.Context, id string) (*Screening, error)

	// GetByIDForUpdate はIDから上映を行ロック付きで取得する
	// 予約作成トランザクション内で使用し、同時予約の競合判定を直列化する
	GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*Screening, error)

	// List は上映一覧を開始時刻順で取得する
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]*Screening, error)

	// GetByMovieID は映画IDから上映一覧を取得する
	GetByMovieID(ctx context.Context, movieID string) ([]*Screening, error)

	// CountActiveByMovieID は映画に紐づく有効な上映数を返す
	CountActiveByMovieID(ctx context.Context, movieID string) (int, error)

	// CountActiveByAuditoriumID は上映ホールに紐づく有効な上映数を返す
	CountActiveByAuditoriumID(ctx context.Context, auditoriumID string) (int, error)

	// Update は上映を更新する
	Update(ctx context.Context, s *Screening) error
}
