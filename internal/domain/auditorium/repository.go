package auditorium

import "context"

// Repository は上映ホールリポジトリのインターフェース
type Repository interface {
	// Create は新しいホールを作成する
	Create(ctx context.Context, a *Auditorium) error

	// GetByID はIDからホールを取得する
	GetByID(ctx context.Context, id string) (*Auditorium, error)

	// List はホール一覧を名前順で取得する
	List(ctx context.Context, includeInactive bool) ([]*Auditorium, error)

	// CountSeats はホールの座席数を返す
	CountSeats(ctx context.Context, auditoriumID string) (int, error)

	// Update はホールを更新する
	Update(ctx context.Context, a *Auditorium) error
}
