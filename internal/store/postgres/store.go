// Package postgres implements the Store interface directly against the
// Neon Postgres schema, bypassing the remote HTTP API.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

// Config controls the Postgres connection pool.
type Config struct {
	DSN      string
	MaxConns int32
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Store persists scholarships and run logs in the beasiswa/logs tables.
type Store struct {
	pool   querier
	logger *zap.Logger
}

// NewStore connects a pgx pool using the provided config.
func NewStore(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("storage.postgres.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

// NewStoreWithPool constructs a Store from an existing pool (primarily for testing).
func NewStoreWithPool(pool querier, logger *zap.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// ClearScholarships deletes all rows from the beasiswa table.
func (s *Store) ClearScholarships(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM beasiswa`); err != nil {
		return fmt.Errorf("clear beasiswa: %w", err)
	}
	return nil
}

// SaveScholarships replaces the stored set with the given batch. The replace
// is delete-then-insert, not transactional, matching the remote API's
// behavior for the same operation.
func (s *Store) SaveScholarships(ctx context.Context, list []beasiswa.Scholarship) error {
	if err := s.ClearScholarships(ctx); err != nil {
		return err
	}
	const insert = `
		INSERT INTO beasiswa (judul, deskripsi, deadline, link, kategori, sumber)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, record := range list {
		_, err := s.pool.Exec(ctx, insert,
			record.Name,
			record.Description,
			record.Deadline,
			record.RegistrationLink,
			string(record.Category),
			record.SourceURL,
		)
		if err != nil {
			return fmt.Errorf("insert beasiswa %q: %w", record.Name, err)
		}
	}
	s.logger.Info("batch saved to postgres", zap.Int("records", len(list)))
	return nil
}

// ListScholarships returns a {"data":[...]} payload matching the remote API's
// response shape so the control surface can proxy either provider.
func (s *Store) ListScholarships(ctx context.Context, category string) ([]byte, error) {
	query := `SELECT judul, deskripsi, deadline, link, kategori, sumber, updated_at FROM beasiswa`
	args := []any{}
	if category != "" {
		query += ` WHERE kategori = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list beasiswa: %w", err)
	}
	defer rows.Close()

	records := []beasiswa.Scholarship{}
	for rows.Next() {
		var (
			record    beasiswa.Scholarship
			kategori  string
			updatedAt time.Time
		)
		err := rows.Scan(
			&record.Name,
			&record.Description,
			&record.Deadline,
			&record.RegistrationLink,
			&kategori,
			&record.SourceURL,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan beasiswa row: %w", err)
		}
		record.Category = beasiswa.Category(kategori)
		record.UpdatedAt = updatedAt.Format(beasiswa.UpdatedAtLayout)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beasiswa rows: %w", err)
	}

	payload, err := json.Marshal(map[string]any{"data": records})
	if err != nil {
		return nil, fmt.Errorf("marshal beasiswa payload: %w", err)
	}
	return payload, nil
}

// CountScholarships reports the number of stored rows.
func (s *Store) CountScholarships(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM beasiswa`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count beasiswa: %w", err)
	}
	return count, nil
}

// ClearLogs deletes the previous run's log rows.
func (s *Store) ClearLogs(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM logs`); err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}
	return nil
}

// SaveLogs appends run log entries to the logs table.
func (s *Store) SaveLogs(ctx context.Context, entries []beasiswa.LogEntry) error {
	const insert = `INSERT INTO logs (message, level, timestamp) VALUES ($1, $2, $3)`
	for _, entry := range entries {
		_, err := s.pool.Exec(ctx, insert, entry.Message, string(entry.Level), entry.Timestamp)
		if err != nil {
			return fmt.Errorf("insert log entry: %w", err)
		}
	}
	return nil
}
