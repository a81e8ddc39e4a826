package zkstore

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lzww0608/uuidshim"
)

// memConn is an in-memory znode tree.
type memConn struct {
	mu      sync.Mutex
	nodes   map[string][]byte
	failGet error
	creates []string
}

func newMemConn() *memConn {
	return &memConn{nodes: map[string][]byte{}}
}

func (c *memConn) Get(p string) ([]byte, *zk.Stat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet != nil {
		return nil, nil, c.failGet
	}
	data, ok := c.nodes[p]
	if !ok {
		return nil, nil, zk.ErrNoNode
	}
	return data, &zk.Stat{}, nil
}

func (c *memConn) Set(p string, data []byte, _ int32) (*zk.Stat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.nodes[p]; !ok {
		return nil, zk.ErrNoNode
	}
	c.nodes[p] = data
	return &zk.Stat{}, nil
}

func (c *memConn) Create(p string, data []byte, _ int32, _ []zk.ACL) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.nodes[p]; ok {
		return "", zk.ErrNodeExists
	}
	parent := p[:strings.LastIndex(p, "/")]
	if _, ok := c.nodes[parent]; parent != "" && !ok {
		return "", zk.ErrNoNode
	}
	c.nodes[p] = data
	c.creates = append(c.creates, p)
	return p, nil
}

func (c *memConn) Exists(p string) (bool, *zk.Stat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.nodes[p]
	return ok, &zk.Stat{}, nil
}

func TestNewValidatesRoot(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		wantErr bool
	}{
		{"default", DefaultRoot, false},
		{"nested", "/services/ids/", false},
		{"relative", "uuidshim", true},
		{"slash only", "/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(newMemConn(), WithRoot(tt.root))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	s, err := New(newMemConn())
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), uuidshim.NodeKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreSetCreatesPathThenOverwrites(t *testing.T) {
	ctx := context.Background()
	conn := newMemConn()
	s, err := New(conn, WithRoot("/services/ids"))
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, uuidshim.NodeKey, 7))
	assert.Equal(t, []string{"/services", "/services/ids", "/services/ids/" + uuidshim.NodeKey}, conn.creates)

	require.NoError(t, s.Set(ctx, uuidshim.NodeKey, 8))

	node, ok, err := s.Get(ctx, uuidshim.NodeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(8), node)
}

func TestStoreGetRejectsGarbage(t *testing.T) {
	conn := newMemConn()
	conn.nodes[DefaultRoot] = nil
	conn.nodes[DefaultRoot+"/"+uuidshim.NodeKey] = []byte("not-a-number")

	s, err := New(conn)
	require.NoError(t, err)

	_, _, err = s.Get(context.Background(), uuidshim.NodeKey)
	assert.Error(t, err)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	s, err := New(newMemConn())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = s.Get(ctx, uuidshim.NodeKey)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Set(ctx, uuidshim.NodeKey, 1), context.Canceled)
}

func TestGeneratorFallsBackWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	conn := newMemConn()
	conn.failGet = errors.New("zk: connection closed")

	s, err := New(conn)
	require.NoError(t, err)

	gen := uuidshim.NewGenerator(uuidshim.WithNodeStore(s))
	first, err := gen.Node(ctx)
	require.NoError(t, err)

	second, err := uuidshim.NewGenerator().Node(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, first)
}

func TestGeneratorSharesNodeThroughStore(t *testing.T) {
	ctx := context.Background()
	s, err := New(newMemConn())
	require.NoError(t, err)

	a, err := uuidshim.NewGenerator(uuidshim.WithNodeStore(s)).NewTime(ctx)
	require.NoError(t, err)
	b, err := uuidshim.NewGenerator(uuidshim.WithNodeStore(s)).NewTime(ctx)
	require.NoError(t, err)

	nodeA, err := a.Node()
	require.NoError(t, err)
	nodeB, err := b.Node()
	require.NoError(t, err)
	assert.Equal(t, nodeA, nodeB)
}

func TestIntegrationConnect(t *testing.T) {
	servers := os.Getenv("ZK_SERVERS")
	if servers == "" {
		t.Skip("ZK_SERVERS is not set")
	}

	root := "/uuidshim-test-" + strings.ReplaceAll(uuidshim.Must(uuidshim.NewV4()).String(), "-", "")
	s, closeConn, err := Connect(strings.Split(servers, ","), 5*time.Second, WithRoot(root))
	require.NoError(t, err)
	t.Cleanup(closeConn)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, uuidshim.NodeKey, 0xfeedface))

	node, ok, err := s.Get(ctx, uuidshim.NodeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(0xfeedface), node)
}
