// Package zkstore keeps the version 1 node identifier in a ZooKeeper znode so
// that every generator registered against the same ensemble shares one node.
package zkstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"

	"github.com/Lzww0608/uuidshim/internal/logging"
)

// DefaultRoot is the parent znode used when WithRoot is not given.
const DefaultRoot = "/uuidshim"

var logger = logging.New("zkstore")

// Conn is the subset of *zk.Conn used by Store.
type Conn interface {
	Get(path string) ([]byte, *zk.Stat, error)
	Set(path string, data []byte, version int32) (*zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
	Exists(path string) (bool, *zk.Stat, error)
}

// Store implements uuidshim.NodeStore on top of ZooKeeper. The zk client
// has no context support, so ctx is only checked before each call.
type Store struct {
	conn Conn
	root string
	acl  []zk.ACL
}

// Option configures a Store.
type Option func(*Store)

// WithRoot sets the parent znode. It must be an absolute path.
func WithRoot(root string) Option {
	return func(s *Store) {
		s.root = root
	}
}

// WithACL sets the ACL used for created znodes. It defaults to world:anyone with all permissions.
func WithACL(acl []zk.ACL) Option {
	return func(s *Store) {
		s.acl = acl
	}
}

// New wraps an existing connection.
func New(conn Conn, opts ...Option) (*Store, error) {
	s := &Store{
		conn: conn,
		root: DefaultRoot,
		acl:  zk.WorldACL(zk.PermAll),
	}
	for _, opt := range opts {
		opt(s)
	}

	if !strings.HasPrefix(s.root, "/") || s.root == "/" {
		return nil, fmt.Errorf("zkstore: root %q must be an absolute, non-root path", s.root)
	}
	s.root = path.Clean(s.root)
	return s, nil
}

// Connect dials the ensemble and wraps the connection in a Store. The
// returned close function releases the session.
func Connect(servers []string, sessionTimeout time.Duration, opts ...Option) (*Store, func(), error) {
	conn, _, err := zk.Connect(servers, sessionTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("connect zk failed: %w", err)
	}

	s, err := New(conn, opts...)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	logger.Sugar().Infow("built zookeeper node store", "servers", servers, "root", s.root)

	return s, conn.Close, nil
}

func (s *Store) path(key string) string {
	return s.root + "/" + key
}

// Get returns the node stored under key.
func (s *Store) Get(ctx context.Context, key string) (uint64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	data, _, err := s.conn.Get(s.path(key))
	if errors.Is(err, zk.ErrNoNode) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get node info failed: %w", err)
	}

	node, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("decode node info failed: %w", err)
	}
	return node, true, nil
}

// Set stores node under key, creating the root and key znodes if needed.
func (s *Store) Set(ctx context.Context, key string, node uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensurePath(s.root); err != nil {
		return err
	}

	data := []byte(strconv.FormatUint(node, 10))
	p := s.path(key)

	_, err := s.conn.Create(p, data, 0, s.acl)
	if errors.Is(err, zk.ErrNodeExists) {
		_, err = s.conn.Set(p, data, -1)
	}
	if err != nil {
		return fmt.Errorf("register node info failed: %w", err)
	}
	return nil
}

// ensurePath creates every missing znode along p.
func (s *Store) ensurePath(p string) error {
	current := ""
	for _, part := range strings.Split(strings.TrimPrefix(p, "/"), "/") {
		current += "/" + part

		exists, _, err := s.conn.Exists(current)
		if err != nil {
			return fmt.Errorf("check node existence failed: %w", err)
		}
		if exists {
			continue
		}

		_, err = s.conn.Create(current, []byte{}, 0, s.acl)
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return fmt.Errorf("create %s failed: %w", current, err)
		}
	}
	return nil
}
