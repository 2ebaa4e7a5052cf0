// Package queue is a durable work queue stored in SQLite and consumed by a
// pool of polling workers inside this process.
//
// Jobs move waiting -> active -> (deleted | waiting | failed). A job whose
// handler succeeds is deleted and emits completed then removed. A handler
// error emits error and schedules a retry with linear backoff until
// max_attempts is reached; the final failure keeps the row in state failed
// and emits failed. When a worker finds nothing to claim after doing work,
// drained is emitted once.
package queue

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/sqlitedb"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const (
	stateWaiting = "waiting"
	stateActive  = "active"
	stateFailed  = "failed"
)

// ErrProcessorRegistered is returned by a second RegisterProcessor call.
var ErrProcessorRegistered = errors.New("queue processor already registered")

var _ ports.WorkQueue = (*Queue)(nil)

// Queue implements ports.WorkQueue.
type Queue struct {
	opts         sqlitedb.Options
	pollInterval time.Duration
	concurrency  int
	maxAttempts  int
	logger       *slog.Logger
	now          func() time.Time

	mu        sync.RWMutex
	db        *sql.DB
	closed    bool
	handler   ports.JobHandler
	listeners map[ports.QueueEvent][]ports.QueueEventListener

	paused atomic.Bool
	busy   atomic.Bool

	stop       chan struct{}
	cancelWork context.CancelFunc
	wg         sync.WaitGroup
}

// New creates an unconnected queue handle. Workers start on RegisterProcessor.
func New(cfg config.QueueConfig, logger *slog.Logger) *Queue {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = time.Second
	}

	return &Queue{
		opts: sqlitedb.Options{
			Path:         cfg.Path,
			MaxOpenConns: concurrency + 1,
			BusyTimeout:  cfg.BusyTimeout,
		},
		pollInterval: poll,
		concurrency:  concurrency,
		maxAttempts:  maxAttempts,
		logger:       logging.OrDiscard(logger).With(slog.String("dependency", domain.DependencyQueue.String())),
		now:          time.Now,
		listeners:    make(map[ports.QueueEvent][]ports.QueueEventListener),
		stop:         make(chan struct{}),
	}
}

// Name implements ports.Dependency.
func (q *Queue) Name() domain.Dependency { return domain.DependencyQueue }

// ProbeDeep opens the database on first use, applies migrations and counts
// waiting jobs.
func (q *Queue) ProbeDeep(ctx context.Context) error {
	db, err := q.connect(ctx)
	if err != nil {
		return err
	}
	var waiting int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM jobs WHERE state = ?", stateWaiting).Scan(&waiting); err != nil {
		return fmt.Errorf("queue deep check: %w", err)
	}
	q.logger.Debug("queue deep check", slog.Int("waiting", waiting))
	return nil
}

// ProbeOnce pings the established pool.
func (q *Queue) ProbeOnce(ctx context.Context) error {
	db, err := q.handle()
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("queue ping: %w", err)
	}
	return nil
}

// Enqueue implements ports.WorkQueue.
func (q *Queue) Enqueue(ctx context.Context, messageID string) (ports.Job, error) {
	db, err := q.handle()
	if err != nil {
		return ports.Job{}, err
	}

	now := q.now().UTC()
	var res sql.Result
	err = sqlitedb.RetryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = db.ExecContext(ctx, `
			INSERT INTO jobs (message_id, state, enqueued_at, available_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			messageID, stateWaiting, now.UnixNano(), now.UnixNano(), now.UnixNano())
		return execErr
	})
	if err != nil {
		return ports.Job{}, fmt.Errorf("enqueue job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ports.Job{}, fmt.Errorf("enqueue job id: %w", err)
	}
	return ports.Job{ID: id, MessageID: messageID, EnqueuedAt: now}, nil
}

// Pause stops workers from claiming new jobs. Jobs already claimed finish.
func (q *Queue) Pause(_ context.Context) error {
	q.mu.RLock()
	closed := q.closed
	q.mu.RUnlock()
	if closed {
		return domain.ErrClosed
	}
	if q.paused.CompareAndSwap(false, true) {
		q.logger.Info("queue paused")
	}
	return nil
}

// On subscribes listener to event.
func (q *Queue) On(event ports.QueueEvent, listener ports.QueueEventListener) {
	if listener == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.listeners[event] = append(q.listeners[event], listener)
}

// RegisterProcessor attaches handler and starts the worker pool. Workers
// tolerate an unconnected database and start claiming once ProbeDeep has
// connected it.
func (q *Queue) RegisterProcessor(handler ports.JobHandler) error {
	if handler == nil {
		return errors.New("queue processor is nil")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return domain.ErrClosed
	}
	if q.handler != nil {
		return ErrProcessorRegistered
	}
	q.handler = handler

	ctx, cancel := context.WithCancel(context.Background())
	q.cancelWork = cancel
	for range q.concurrency {
		q.wg.Add(1)
		go q.work(ctx)
	}
	q.logger.Info("queue processor registered", slog.Int("concurrency", q.concurrency))
	return nil
}

// Close stops the workers, waits for in-flight jobs bounded by ctx, then
// closes the database, even when ctx expires first. Later calls return
// domain.ErrClosed.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return domain.ErrClosed
	}
	q.closed = true
	close(q.stop)
	cancel := q.cancelWork
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	// Past the deadline the workers are canceled and the pool is closed
	// anyway; their late writes fail against the closed pool.
	var waitErr error
	select {
	case <-done:
	case <-ctx.Done():
		waitErr = fmt.Errorf("wait for queue workers: %w", ctx.Err())
	}
	if cancel != nil {
		cancel()
	}

	q.mu.Lock()
	db := q.db
	q.db = nil
	q.mu.Unlock()
	if db == nil {
		return waitErr
	}
	if err := db.Close(); err != nil {
		return errors.Join(waitErr, fmt.Errorf("close queue: %w", err))
	}
	return waitErr
}

func (q *Queue) work(ctx context.Context) {
	defer q.wg.Done()

	ticker := time.NewTicker(q.pollInterval)
	defer ticker.Stop()

	for {
		for !q.paused.Load() && !q.stopped() && q.processNext(ctx) {
		}
		select {
		case <-q.stop:
			return
		case <-ticker.C:
		}
	}
}

func (q *Queue) stopped() bool {
	select {
	case <-q.stop:
		return true
	default:
		return false
	}
}

// processNext claims and runs one job. It reports whether a job was run.
func (q *Queue) processNext(ctx context.Context) bool {
	db, err := q.handle()
	if err != nil {
		return false
	}

	job, ok, err := q.claim(ctx, db)
	if err != nil {
		q.logger.Warn("claim job failed", slog.Any("error", err))
		q.emit(ctx, ports.QueueEventInfo{Event: ports.EventError, Err: err})
		return false
	}
	if !ok {
		if q.busy.CompareAndSwap(true, false) {
			q.emit(ctx, ports.QueueEventInfo{Event: ports.EventDrained})
		}
		return false
	}
	q.busy.Store(true)

	runErr := q.run(ctx, job)
	q.settle(ctx, db, job, runErr)
	return true
}

func (q *Queue) claim(ctx context.Context, db *sql.DB) (ports.Job, bool, error) {
	now := q.now().UTC().UnixNano()
	var (
		job      ports.Job
		enqueued int64
	)
	err := sqlitedb.RetryOnBusy(ctx, func() error {
		return db.QueryRowContext(ctx, `
			UPDATE jobs SET state = ?, attempts = attempts + 1, updated_at = ?
			WHERE id = (
				SELECT id FROM jobs WHERE state = ? AND available_at <= ? ORDER BY id LIMIT 1
			)
			RETURNING id, message_id, attempts, enqueued_at`,
			stateActive, now, stateWaiting, now,
		).Scan(&job.ID, &job.MessageID, &job.Attempts, &enqueued)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Job{}, false, nil
	}
	if err != nil {
		return ports.Job{}, false, fmt.Errorf("claim job: %w", err)
	}
	job.EnqueuedAt = time.Unix(0, enqueued).UTC()
	return job, true, nil
}

func (q *Queue) run(ctx context.Context, job ports.Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %d panicked: %v", job.ID, r)
		}
	}()

	q.mu.RLock()
	handler := q.handler
	q.mu.RUnlock()
	return handler(ctx, job)
}

func (q *Queue) settle(ctx context.Context, db *sql.DB, job ports.Job, runErr error) {
	now := q.now().UTC()
	jobCopy := job

	if runErr == nil {
		if err := sqlitedb.RetryOnBusy(ctx, func() error {
			_, err := db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", job.ID)
			return err
		}); err != nil {
			q.logger.Error("delete completed job", slog.Int64("job_id", job.ID), slog.Any("error", err))
			q.emit(ctx, ports.QueueEventInfo{Event: ports.EventError, Job: &jobCopy, Err: err})
			return
		}
		q.emit(ctx, ports.QueueEventInfo{Event: ports.EventCompleted, Job: &jobCopy})
		q.emit(ctx, ports.QueueEventInfo{Event: ports.EventRemoved, Job: &jobCopy})
		return
	}

	state, event := stateWaiting, ports.EventError
	available := now.Add(time.Duration(job.Attempts) * q.pollInterval)
	if job.Attempts >= q.maxAttempts {
		state, event = stateFailed, ports.EventFailed
	}

	if err := sqlitedb.RetryOnBusy(ctx, func() error {
		_, err := db.ExecContext(ctx, `
			UPDATE jobs SET state = ?, last_error = ?, available_at = ?, updated_at = ?
			WHERE id = ?`,
			state, runErr.Error(), available.UnixNano(), now.UnixNano(), job.ID)
		return err
	}); err != nil {
		q.logger.Error("record job failure", slog.Int64("job_id", job.ID), slog.Any("error", err))
	}
	q.emit(ctx, ports.QueueEventInfo{Event: event, Job: &jobCopy, Err: runErr})
}

func (q *Queue) emit(ctx context.Context, info ports.QueueEventInfo) {
	q.mu.RLock()
	listeners := append([]ports.QueueEventListener(nil), q.listeners[info.Event]...)
	q.mu.RUnlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					q.logger.Error("queue listener panicked",
						slog.String("event", string(info.Event)), slog.Any("panic", r))
				}
			}()
			l(ctx, info)
		}()
	}
}

func (q *Queue) connect(ctx context.Context) (*sql.DB, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, domain.ErrClosed
	}
	if q.db != nil {
		return q.db, nil
	}

	db, err := sqlitedb.Open(ctx, q.opts)
	if err != nil {
		return nil, fmt.Errorf("connect queue: %w", err)
	}
	if err := sqlitedb.Migrate(ctx, db, migrationFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate queue: %w", err)
	}
	// Jobs left active by a previous process never finished.
	if _, err := db.ExecContext(ctx, "UPDATE jobs SET state = ? WHERE state = ?", stateWaiting, stateActive); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("requeue stale jobs: %w", err)
	}
	q.db = db
	q.logger.Info("queue connected", slog.String("path", q.opts.Path))
	return db, nil
}

func (q *Queue) handle() (*sql.DB, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	switch {
	case q.closed:
		return nil, domain.ErrClosed
	case q.db == nil:
		return nil, fmt.Errorf("queue not connected: %w", domain.ErrUnavailable)
	default:
		return q.db, nil
	}
}
