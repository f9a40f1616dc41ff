package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/company_compare/internal/conf"
)

// Data 数据层资源，db 为 nil 表示未配置数据库
type Data struct {
	db *sql.DB
}

// NewData 打开数据库连接并初始化表结构
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil || c.Database == nil || c.Database.Source == "" {
		helper.Info("database not configured, comparison history is disabled")
		return &Data{}, func() {}, nil
	}

	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS comparisons (
			id BIGSERIAL PRIMARY KEY,
			company1 TEXT NOT NULL,
			company2 TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to init comparisons table: %w", err)
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}
