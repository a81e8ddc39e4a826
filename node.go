package uuidshim

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"

	"go.uber.org/zap"
)

// NodeKey is the key under which generators share the version 1 node identifier.
const NodeKey = "__uuidshim_node"

// NodeStore is an external key-value cache that lets several generators, or
// several processes on one host, agree on the version 1 node identifier.
// Stores are best-effort: a Get and a later Set are not atomic.
type NodeStore interface {
	// Get returns the stored node. ok is false if nothing is stored under key.
	Get(ctx context.Context, key string) (node uint64, ok bool, err error)
	// Set stores node under key.
	Set(ctx context.Context, key string, node uint64) error
}

// processNode is the node used when no NodeStore is configured or the store fails.
// It is always drawn from crypto/rand, never from a generator's reader.
var processNode localNode

type localNode struct {
	mu   sync.Mutex
	node uint64
	set  bool
}

func (n *localNode) get() (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.set {
		node, err := randomNode(rand.Reader)
		if err != nil {
			return 0, err
		}
		n.node = node
		n.set = true
	}
	return n.node, nil
}

// Node returns the 48-bit node identifier used for version 1 UUIDs. It is
// read from the NodeStore if one is configured; a missing value is generated
// and written back. If the store is unavailable the process-wide node is used.
func (g *Generator) Node(ctx context.Context) (uint64, error) {
	if g.store != nil {
		v, err, _ := g.lookups.Do(NodeKey, func() (interface{}, error) {
			return g.storedNode(ctx)
		})
		if err == nil {
			return v.(uint64), nil
		}
		g.logger.Debug("node store unavailable, using process node", zap.Error(err))
	}
	return processNode.get()
}

func (g *Generator) storedNode(ctx context.Context) (uint64, error) {
	if g.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.storeTimeout)
		defer cancel()
	}

	node, ok, err := g.store.Get(ctx, NodeKey)
	if err != nil {
		return 0, err
	}
	if ok {
		return node & nodeMask, nil
	}

	node, err = randomNode(g.randReader)
	if err != nil {
		return 0, err
	}
	if err := g.store.Set(ctx, NodeKey, node); err != nil {
		return 0, err
	}
	return node, nil
}

func randomNode(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[2:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}
