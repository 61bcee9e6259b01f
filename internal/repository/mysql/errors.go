package mysql

import (
	"errors"
	"fmt"
	"petshop-backend/internal/repository/interfaces"

	driver "github.com/go-sql-driver/mysql"
)

// MySQL 唯一键冲突
const errDuplicateEntry = 1062

// wrapWriteError 唯一键冲突同时包装 interfaces.ErrDuplicate 和驱动错误
func wrapWriteError(msg string, err error) error {
	var mysqlErr *driver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
		return fmt.Errorf("%s: %w: %w", msg, interfaces.ErrDuplicate, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
