// Package postgres holds the PostgreSQL connection shared by the book, customer and sale repositories.
package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
)

const pingTimeout = 5 * time.Second

// Pool configures the database/sql connection pool. Zero values keep the driver defaults.
type Pool struct {
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifeMinutes int
}

// DefaultPool é o pool padrão (25, 5, 5 min)
var DefaultPool = Pool{MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifeMinutes: 5}

type Store struct {
	db *sqlx.DB
}

// Open connects through pgx and pings the server before returning.
func Open(ctx context.Context, dsn string, pool Pool) (*Store, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifeMinutes) * time.Minute)
	}
	s := &Store{db: db}
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return s, nil
}

// NewStore wraps an already open connection, e.g. one built by sqlmock.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

// ServerTime asks the server for its clock, proving a full round trip works.
func (s *Store) ServerTime(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := s.db.QueryRowxContext(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("querying server time: %w", err)
	}
	return now.UTC(), nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
