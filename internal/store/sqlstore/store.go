package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"names_demo/internal/db"
	"names_demo/internal/domain"
	"names_demo/internal/model"
)

type Options struct {
	Dialect     Dialect
	DSN         string
	LockTimeout time.Duration
	SeedNames   []string
	Observer    Observer
}

// Store owns the single connection behind the names table. Every use of
// the connection happens while holding sem.
type Store struct {
	pool    *sql.DB
	conn    *sql.Conn
	queries *db.Queries
	dialect Dialect

	sem         *semaphore.Weighted
	lockTimeout time.Duration
	active      atomic.Int32
	peak        atomic.Int32

	seeded    int
	obs       Observer
	log       *zap.Logger
	closeOnce sync.Once
	closeErr  error
}

// New opens one connection, creates the schema and inserts the seed set.
// Any failure is wrapped in domain.ErrStartup; the caller decides whether
// to exit.
func New(ctx context.Context, opts Options, logger *zap.Logger) (*Store, error) {
	if opts.Dialect.Driver == "" {
		opts.Dialect = SQLite
	}
	if opts.Dialect.Name == SQLite.Name {
		if opts.DSN == "" {
			opts.DSN = ":memory:"
		}
		if !isMemoryDSN(opts.DSN) {
			logger.Error("store dsn rejected", zap.String("dialect", opts.Dialect.Name), zap.String("dsn", opts.DSN))
			return nil, fmt.Errorf("%w: sqlite dsn %q is not in-memory", domain.ErrStartup, opts.DSN)
		}
	}
	if opts.SeedNames == nil {
		opts.SeedNames = domain.DefaultSeedNames()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	pool, err := sql.Open(opts.Dialect.Driver, opts.DSN)
	if err != nil {
		logger.Error("store open failed", zap.String("dialect", opts.Dialect.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: open: %w", domain.ErrStartup, err)
	}
	pool.SetMaxOpenConns(1)
	pool.SetMaxIdleConns(1)
	pool.SetConnMaxLifetime(0)
	pool.SetConnMaxIdleTime(0)

	conn, err := pool.Conn(ctx)
	if err != nil {
		_ = pool.Close()
		logger.Error("store connect failed", zap.String("dialect", opts.Dialect.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: connect: %w", domain.ErrStartup, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = pool.Close()
		logger.Error("store ping failed", zap.String("dialect", opts.Dialect.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: ping: %w", domain.ErrStartup, err)
	}

	s := &Store{
		pool:        pool,
		conn:        conn,
		queries:     db.New(conn),
		dialect:     opts.Dialect,
		sem:         semaphore.NewWeighted(1),
		lockTimeout: opts.LockTimeout,
		obs:         opts.Observer,
		log:         logger,
	}
	if err := s.initialize(ctx, opts.SeedNames); err != nil {
		_ = s.Close()
		logger.Error("store initialize failed", zap.String("dialect", opts.Dialect.Name), zap.Error(err))
		return nil, err
	}
	logger.Info("store ready",
		zap.String("dialect", opts.Dialect.Name),
		zap.Int("records", s.seeded),
	)
	return s, nil
}

// initialize creates the names table and seeds it in order. It runs once,
// from New; a second call fails because the table already exists.
func (s *Store) initialize(ctx context.Context, names []string) error {
	release, err := s.acquire(ctx, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStartup, err)
	}
	defer release()

	if _, err := s.conn.ExecContext(ctx, s.dialect.Schema); err != nil {
		return fmt.Errorf("%w: create schema: %w", domain.ErrStartup, err)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin seed: %w", domain.ErrStartup, err)
	}
	q := s.queries.WithTx(tx)
	for _, name := range names {
		if _, err := q.InsertName(ctx, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: seed %q: %w", domain.ErrStartup, name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit seed: %w", domain.ErrStartup, err)
	}
	s.seeded = len(names)
	return nil
}

// ListRecords returns every record ordered by id. The lock is held only
// while the rows are read and copied out. ctx bounds the lock wait only:
// cancelling a query interrupts the shared connection, which can hit the
// next holder (sqlite) or drop the session (mysql).
func (s *Store) ListRecords(ctx context.Context) ([]model.Record, error) {
	ctx, span := otel.Tracer("sqlstore").Start(ctx, "sqlstore.list_records")
	span.SetAttributes(attribute.String("db.system", s.dialect.Name))
	defer span.End()

	release, err := s.acquire(ctx, s.lockTimeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lock wait exceeded")
		return nil, err
	}
	defer release()

	rows, err := s.queries.ListNames(context.WithoutCancel(ctx))
	if err != nil {
		s.obs.QueryFailed()
		span.RecordError(err)
		span.SetStatus(codes.Error, "list names failed")
		s.log.Error("sql list names failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.Record{ID: row.ID, Name: row.Name})
	}
	span.SetAttributes(attribute.Int("db.rows", len(records)))
	return records, nil
}

func (s *Store) Dialect() string {
	return s.dialect.Name
}

// Seeded reports how many records were inserted at startup.
func (s *Store) Seeded() int {
	return s.seeded
}

// Close releases the connection and the pool. Later calls return the
// result of the first.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = errors.Join(s.conn.Close(), s.pool.Close())
	})
	return s.closeErr
}
