package seat

import "context"

// Repository は座席リポジトリのインターフェース
type Repository interface {
	// Create は新しい座席を作成する
	Create(ctx context.Context, s *Seat) error

	// GetByID はIDから座席を取得する
	GetByID(ctx context.Context, id string) (*Seat, error)

	// GetByAuditoriumID はホールIDから座席一覧を行・番号順で取得する
	GetByAuditoriumID(ctx context.Context, auditoriumID string, includeInactive bool) ([]*Seat, error)

	// FindByPosition は (ホール, 行, 番号) から座席を取得する
	// 作成時の重複チェックに使用する。存在しない場合は ErrSeatNotFound
	FindByPosition(ctx context.Context, auditoriumID, row string, number int) (*Seat, error)

	// Update は座席を更新する
	Update(ctx context.Context, s *Seat) error
}
