package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// CleanupInterval is how often expired session rows are purged
	CleanupInterval = time.Minute
)

// PostgresStore keeps session records in a sessions table, one JSONB row per
// token. Update takes a row lock for the read-modify-write, so the
// per-session serialization holds across multiple server instances.
type PostgresStore struct {
	pool   *pgxpool.Pool
	ttl    time.Duration
	logger *slog.Logger

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewPostgresStore(pool *pgxpool.Pool, ttl time.Duration, logger *slog.Logger) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}

	s := &PostgresStore{
		pool:        pool,
		ttl:         ttl,
		logger:      logger,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s, nil
}

// Close stops the background cleanup goroutine.
func (s *PostgresStore) Close() {
	close(s.stopCleanup)
	s.wg.Wait()
}

func (s *PostgresStore) Get(ctx context.Context, token string) (Record, error) {
	var data []byte

	err := s.pool.QueryRow(ctx, `
		SELECT data
		FROM sessions
		WHERE token = $1 AND expires_at > now()`, token).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("query session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return rec, nil
}

func (s *PostgresStore) Update(ctx context.Context, token string, fn func(rec *Record) error) (txErr error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	// The no-op conflict update still acquires the row lock, which
	// serializes concurrent updates of the same token.
	var data []byte
	err = tx.QueryRow(ctx, `
		INSERT INTO sessions (token, data, expires_at)
		VALUES ($1, '{}', $2)
		ON CONFLICT (token) DO UPDATE SET token = excluded.token
		RETURNING data`, token, time.Now().Add(s.ttl)).Scan(&data)
	if err != nil {
		return fmt.Errorf("lock session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	if err := fn(&rec); err != nil {
		return err
	}

	data, err = json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE sessions
		SET data = $2, expires_at = $3, updated_at = now()
		WHERE token = $1`, token, data, time.Now().Add(s.ttl))
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (s *PostgresStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.deleteExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *PostgresStore) deleteExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		s.logger.Error("session cleanup failed", "error", err)
		return
	}

	if tag.RowsAffected() > 0 {
		s.logger.Debug("expired sessions removed", "count", tag.RowsAffected())
	}
}
