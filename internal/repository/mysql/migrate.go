package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"petshop-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

//go:embed schema.sql
var schema string

// Migrate 逐条执行建表语句，驱动默认不允许多语句
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range splitStatements(schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	util.Logger.Info("数据库表结构已同步", zap.Int("statements", len(splitStatements(schema))))
	return nil
}

func splitStatements(sqlText string) []string {
	var stmts []string
	for _, part := range strings.Split(sqlText, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
