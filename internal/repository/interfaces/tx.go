package interfaces

import "context"

// Transactor 在同一个数据库事务中执行 fn，fn 返回错误时回滚
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
