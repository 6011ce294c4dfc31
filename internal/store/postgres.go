package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"relief-api/internal/logger"
)

// PostgresRepository：relief_centers 表的读写；表结构由 migrate.EnsureSchema 维护
type PostgresRepository struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *PostgresRepository { return &PostgresRepository{db: db} }

func (p *PostgresRepository) DB() *sql.DB { return p.db }

func (p *PostgresRepository) List(ctx context.Context) ([]Resource, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, name, type, latitude, longitude, address, phone, hours, last_updated
        FROM relief_centers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list relief centers: %w", err)
	}
	defer rows.Close()
	out := make([]Resource, 0)
	for rows.Next() {
		var r Resource
		var cat string
		var phone, hours sql.NullString
		if err := rows.Scan(&r.ID, &r.Name, &cat, &r.Latitude, &r.Longitude, &r.Address, &phone, &hours, &r.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan relief center: %w", err)
		}
		r.Category = Category(cat)
		if phone.Valid {
			r.Phone = &phone.String
		}
		if hours.Valid {
			r.Hours = &hours.String
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relief centers: %w", err)
	}
	logger.L().Debug("db_list_done", "count", len(out))
	return out, nil
}

func (p *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM relief_centers").Scan(&n); err != nil {
		return 0, fmt.Errorf("count relief centers: %w", err)
	}
	return n, nil
}

// Insert：单事务批量写入，id 冲突时忽略，便于重复执行种子
func (p *PostgresRepository) Insert(ctx context.Context, recs []Resource) error {
	for _, r := range recs {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("resource %q: %w", r.Name, err)
		}
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO relief_centers(id, name, type, latitude, longitude, address, phone, hours, last_updated)
        VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range recs {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Name, string(r.Category), r.Latitude, r.Longitude, r.Address,
			nullable(r.Phone), nullable(r.Hours), r.LastUpdated); err != nil {
			return fmt.Errorf("insert relief center %q: %w", r.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.L().Debug("db_insert_done", "count", len(recs))
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
