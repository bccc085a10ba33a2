package movie

import "context"

// Repository は映画リポジトリのインターフェース
type Repository interface {
	// Create は新しい映画を作成する
	Create(ctx context.Context, m *Movie) error

	// GetByID はIDから映画を取得する
	GetByID(ctx context.Context, id string) (*Movie, error)

	// List は映画一覧を公開日の新しい順で取得する
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]*Movie, error)

	// Update は映画を更新する
	Update(ctx context.Context, m *Movie) error
}
