package interfaces

import "errors"

// ErrDuplicate 写入违反唯一约束，调用方按冲突处理
var ErrDuplicate = errors.New("duplicate entry")
