package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"trustgate/internal/audit"
)

// Store wraps the Postgres pool used for the audit log.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres, verifies the connection and applies migrations.
func Open(ctx context.Context, connString string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// migrate creates the audit table if it does not exist. The table is
// append-only from this service's point of view: no update or delete path
// exists here, retention is an external policy concern.
func (s *Store) migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS email_validation_logs (
		id UUID PRIMARY KEY,
		email_hash CHAR(64) NOT NULL,
		domain TEXT NOT NULL,
		validation_score INT NOT NULL,
		status TEXT NOT NULL,
		rejection_reason TEXT,
		is_disposable BOOLEAN NOT NULL,
		is_free_provider BOOLEAN NOT NULL,
		has_mx_record BOOLEAN NOT NULL,
		domain_age_days INT,
		risk_factors TEXT[] NOT NULL DEFAULT '{}',
		ip_address TEXT NOT NULL,
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("migration failed (email_validation_logs): %w", err)
	}
	return nil
}

// InsertValidationLog appends one audit row. Satisfies audit.Sink.
func (s *Store) InsertValidationLog(ctx context.Context, e audit.Entry) error {
	query := `
		INSERT INTO email_validation_logs (
			id, email_hash, domain, validation_score, status, rejection_reason,
			is_disposable, is_free_provider, has_mx_record, domain_age_days,
			risk_factors, ip_address, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := s.pool.Exec(ctx, query,
		e.ID,
		e.EmailHash,
		e.Domain,
		e.ValidationScore,
		string(e.Status),
		e.RejectionReason,
		e.IsDisposable,
		e.IsFreeProvider,
		e.HasMXRecord,
		e.DomainAgeDays,
		e.RiskFactors,
		e.IPAddress,
		e.UserAgent,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert validation log: %w", err)
	}
	return nil
}
