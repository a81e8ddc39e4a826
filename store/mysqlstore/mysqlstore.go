// Package mysqlstore keeps the version 1 node identifier in a MySQL table.
package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/Lzww0608/uuidshim/internal/logging"
)

// DefaultTable is the table used when WithTable is not given.
const DefaultTable = "uuid_node"

var (
	logger = logging.New("mysqlstore")

	tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

	// ErrInvalidTable is returned for table names that are not plain identifiers.
	ErrInvalidTable = errors.New("mysqlstore: invalid table name")
)

// Store implements uuidshim.NodeStore on top of a MySQL table keyed by cache key.
type Store struct {
	db    *sql.DB
	table string

	getQuery string
	setQuery string
}

// Option configures a Store.
type Option func(*Store)

// WithTable overrides DefaultTable.
func WithTable(name string) Option {
	return func(s *Store) {
		s.table = name
	}
}

// New wraps an open database handle.
func New(db *sql.DB, opts ...Option) (*Store, error) {
	s := &Store{db: db, table: DefaultTable}
	for _, opt := range opts {
		opt(s)
	}

	if !tableName.MatchString(s.table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, s.table)
	}

	s.getQuery = fmt.Sprintf("SELECT node FROM `%s` WHERE cache_key = ?", s.table)
	s.setQuery = fmt.Sprintf(
		"INSERT INTO `%s` (cache_key, node) VALUES (?, ?) ON DUPLICATE KEY UPDATE node = VALUES(node)",
		s.table,
	)
	return s, nil
}

// Open connects through the MySQL driver using cfg. The connection is lazy;
// call EnsureSchema or DB().PingContext to verify it.
func Open(cfg *mysql.Config, opts ...Option) (*Store, error) {
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)

	// The store issues one lookup per generator, a small pool is enough.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s, err := New(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Sugar().Infow("built mysql node store", "addr", cfg.Addr, "db", cfg.DBName, "table", s.table)

	return s, nil
}

// OpenDSN is Open with a DSN in the go-sql-driver format,
// e.g. user:pass@tcp(127.0.0.1:3306)/app.
func OpenDSN(dsn string, opts ...Option) (*Store, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mysql DSN: %w", err)
	}
	return Open(cfg, opts...)
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the node table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS `%s` ("+
			"cache_key VARCHAR(191) NOT NULL PRIMARY KEY, "+
			"node BIGINT UNSIGNED NOT NULL)",
		s.table,
	)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// Get returns the node stored under key.
func (s *Store) Get(ctx context.Context, key string) (uint64, bool, error) {
	var node uint64
	err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&node)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get node: %w", err)
	}
	return node, true, nil
}

// Set stores node under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, node uint64) error {
	if _, err := s.db.ExecContext(ctx, s.setQuery, key, node); err != nil {
		return fmt.Errorf("failed to set node: %w", err)
	}
	return nil
}
