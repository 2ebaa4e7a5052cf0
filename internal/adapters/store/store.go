// Package store is the SQLite-backed message data store.
//
// The handle is created without touching the database. ProbeDeep opens the
// connection pool and applies migrations; every other operation requires a
// successful ProbeDeep first and returns domain.ErrUnavailable otherwise.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/sqlitedb"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const defaultIdleConns = 2

var _ ports.DataStore = (*Store)(nil)

// Store implements ports.DataStore on SQLite.
type Store struct {
	opts   sqlitedb.Options
	logger *slog.Logger

	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// New creates an unconnected store handle.
func New(cfg config.DatastoreConfig, logger *slog.Logger) *Store {
	return &Store{
		opts: sqlitedb.Options{
			Path:         cfg.Path,
			MaxOpenConns: cfg.MaxOpenConns,
			BusyTimeout:  cfg.BusyTimeout,
		},
		logger: logging.OrDiscard(logger).With(slog.String("dependency", domain.DependencyData.String())),
	}
}

// Name implements ports.Dependency.
func (s *Store) Name() domain.Dependency { return domain.DependencyData }

// ProbeDeep opens the database on first use, applies migrations and runs a
// query against the messages table.
func (s *Store) ProbeDeep(ctx context.Context) error {
	db, err := s.connect(ctx)
	if err != nil {
		return err
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM messages LIMIT 1").Scan(&n); err != nil {
		return fmt.Errorf("data store deep check: %w", err)
	}
	return nil
}

// ProbeOnce pings the established pool. It never opens a connection pool.
func (s *Store) ProbeOnce(ctx context.Context) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("data store ping: %w", err)
	}
	return nil
}

// ResetConnection drops idle pooled connections so the next query dials
// fresh. In-memory databases are left alone since their data lives in the
// connection.
func (s *Store) ResetConnection() {
	db, err := s.handle()
	if err != nil || sqlitedb.IsMemory(s.opts.Path) {
		return
	}
	db.SetMaxIdleConns(0)
	db.SetMaxIdleConns(defaultIdleConns)
	s.logger.Debug("data store connections reset")
}

// Close closes the pool. Later calls return domain.ErrClosed.
func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrClosed
	}
	s.closed = true
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("close data store: %w", err)
	}
	return nil
}

// SaveMessage implements ports.DataStore.
func (s *Store) SaveMessage(ctx context.Context, msg *message.Message) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	err = sqlitedb.RetryOnBusy(ctx, func() error {
		_, execErr := db.ExecContext(ctx, `
			INSERT INTO messages (id, recipient, subject, body, status, attempts, last_error, created_at, updated_at, sent_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			msg.ID, msg.To, msg.Subject, msg.Body, string(msg.Status), msg.Attempts, msg.LastError,
			msg.CreatedAt.UnixNano(), msg.UpdatedAt.UnixNano(), nullableTime(msg.SentAt),
		)
		return execErr
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("message %s: %w", msg.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// UpdateMessage implements ports.DataStore.
func (s *Store) UpdateMessage(ctx context.Context, msg *message.Message) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	var res sql.Result
	err = sqlitedb.RetryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = db.ExecContext(ctx, `
			UPDATE messages
			SET status = ?, attempts = ?, last_error = ?, updated_at = ?, sent_at = ?
			WHERE id = ?`,
			string(msg.Status), msg.Attempts, msg.LastError, msg.UpdatedAt.UnixNano(), nullableTime(msg.SentAt), msg.ID,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("message %s: %w", msg.ID, domain.ErrNotFound)
	}
	return nil
}

// GetMessage implements ports.DataStore.
func (s *Store) GetMessage(ctx context.Context, id string) (*message.Message, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, recipient, subject, body, status, attempts, last_error, created_at, updated_at, sent_at
		FROM messages WHERE id = ?`, id)
	msg, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return msg, nil
}

// ListMessages implements ports.DataStore. Results are newest first.
func (s *Store) ListMessages(ctx context.Context, filter message.Filter) ([]message.Message, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, recipient, subject, body, status, attempts, last_error, created_at, updated_at, sent_at FROM messages`
	args := make([]any, 0, 2)
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, filter.EffectiveLimit())

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := make([]message.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

func (s *Store) connect(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrClosed
	}
	if s.db != nil {
		return s.db, nil
	}

	db, err := sqlitedb.Open(ctx, s.opts)
	if err != nil {
		return nil, fmt.Errorf("connect data store: %w", err)
	}
	if err := sqlitedb.Migrate(ctx, db, migrationFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate data store: %w", err)
	}
	s.db = db
	s.logger.Info("data store connected", slog.String("path", s.opts.Path))
	return db, nil
}

func (s *Store) handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.closed:
		return nil, domain.ErrClosed
	case s.db == nil:
		return nil, fmt.Errorf("data store not connected: %w", domain.ErrUnavailable)
	default:
		return s.db, nil
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*message.Message, error) {
	var (
		msg              message.Message
		status           string
		created, updated int64
		sent             sql.NullInt64
	)
	if err := row.Scan(&msg.ID, &msg.To, &msg.Subject, &msg.Body, &status, &msg.Attempts,
		&msg.LastError, &created, &updated, &sent); err != nil {
		return nil, err
	}
	msg.Status = message.Status(status)
	msg.CreatedAt = time.Unix(0, created).UTC()
	msg.UpdatedAt = time.Unix(0, updated).UTC()
	if sent.Valid {
		t := time.Unix(0, sent.Int64).UTC()
		msg.SentAt = &t
	}
	return &msg, nil
}

func nullableTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY")
}
