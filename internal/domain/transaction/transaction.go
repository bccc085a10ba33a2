package transaction

import "context"

// Tx はトランザクション境界を表すインターフェース
// ドメイン層・アプリケーション層がインフラ層（sqlx等）に依存しないための抽象化
type Tx interface {
	// Commit はトランザクションを確定する
	Commit() error
	// Rollback はトランザクションを破棄する
	// コミット済みの場合は no-op として扱われる
	Rollback() error
}

// Manager はトランザクションの開始を担うインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
}
