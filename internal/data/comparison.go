package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/company_compare/internal/biz"
)

type comparisonRepo struct {
	data *Data
	log  *log.Helper
}

func NewComparisonRepo(data *Data, logger log.Logger) biz.ComparisonRepo {
	return &comparisonRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *comparisonRepo) Save(ctx context.Context, c *biz.Comparison) error {
	if r.data.db == nil {
		return nil
	}
	// PostgreSQL 文本字段不支持 NULL 字节
	result := strings.ReplaceAll(c.Result, "\x00", "")

	return r.data.db.QueryRowContext(ctx,
		`INSERT INTO comparisons (company1, company2, result, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.Company1, c.Company2, result, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *comparisonRepo) ListRecent(ctx context.Context, limit int) ([]*biz.Comparison, error) {
	if r.data.db == nil {
		return []*biz.Comparison{}, nil
	}

	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, company1, company2, created_at FROM comparisons ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*biz.Comparison{}
	for rows.Next() {
		c := &biz.Comparison{}
		if err := rows.Scan(&c.ID, &c.Company1, &c.Company2, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *comparisonRepo) Get(ctx context.Context, id int64) (*biz.Comparison, error) {
	if r.data.db == nil {
		return nil, kerrors.NotFound("COMPARISON_NOT_FOUND", "comparison history is disabled")
	}

	c := &biz.Comparison{}
	err := r.data.db.QueryRowContext(ctx,
		`SELECT id, company1, company2, result, created_at FROM comparisons WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Company1, &c.Company2, &c.Result, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kerrors.NotFound("COMPARISON_NOT_FOUND", "comparison not found")
		}
		return nil, err
	}
	return c, nil
}
