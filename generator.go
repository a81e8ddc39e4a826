package uuidshim

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Lzww0608/uuidshim/internal/logging"
)

const (
	// epochOffset is the number of 100-ns intervals between the UUID epoch
	// 1582-10-15 00:00:00 and the Unix epoch 1970-01-01 00:00:00.
	epochOffset = 0x01B21DD213814000

	intervalsPerSecond = 10_000_000
)

// Kind selects the generation algorithm used by Create and Generator.New.
// The values match the numeric constants of the uuid extension API, so
// KindName aliases KindTime and KindDCE aliases KindRandom.
type Kind int

const (
	KindDefault Kind = 0
	KindTime    Kind = 1
	KindRandom  Kind = 4

	KindName = KindTime
	KindDCE  = KindRandom
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindTime:
		return "time"
	case KindRandom:
		return "random"
	default:
		return "unknown"
	}
}

// Generator creates version 1 and version 4 UUIDs. It is safe for concurrent use.
type Generator struct {
	randReader   io.Reader
	now          func() time.Time
	store        NodeStore
	storeTimeout time.Duration
	logger       *zap.Logger

	lookups singleflight.Group
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandReader sets the random source for UUID bits, clock sequences and
// nodes written to a NodeStore. It defaults to crypto/rand.Reader. The
// process-wide fallback node is not affected.
func WithRandReader(r io.Reader) Option {
	return func(g *Generator) {
		g.randReader = r
	}
}

// WithClock sets the wall clock used for version 1 timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithNodeStore shares the version 1 node identifier through an external store.
// Without one, the node is cached for the lifetime of the process.
func WithNodeStore(s NodeStore) Option {
	return func(g *Generator) {
		g.store = s
	}
}

// WithStoreTimeout bounds each node store lookup. Zero means no extra deadline.
func WithStoreTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.storeTimeout = d
	}
}

// WithLogger sets the logger that receives warnings about unknown kinds.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator creates a generator with crypto/rand as the random source
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		randReader:   rand.Reader,
		now:          time.Now,
		storeTimeout: 100 * time.Millisecond,
		logger:       logging.New("uuidshim"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGeneratorWithReader creates a generator with a custom random source.
// This is primarily useful for testing with deterministic random sources.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return NewGenerator(WithRandReader(r))
}

// New generates a UUID of the given kind. Unknown kinds log a warning and
// fall back to a random UUID.
func (g *Generator) New(ctx context.Context, kind Kind) (UUID, error) {
	switch kind {
	case KindTime:
		return g.NewTime(ctx)
	case KindDefault, KindRandom:
		return g.NewRandom()
	default:
		g.logger.Warn("unknown UUID kind requested, using random",
			zap.Int("kind", int(kind)),
		)
		return g.NewRandom()
	}
}

// NewRandom generates a version 4 UUID.
func (g *Generator) NewRandom() (UUID, error) {
	var uuid UUID
	if _, err := io.ReadFull(g.randReader, uuid[:]); err != nil {
		return uuid, err
	}

	// Version 4 = 0100
	uuid[6] = (uuid[6] & 0x0f) | 0x40
	// Set variant to RFC 4122 (10xx xxxx)
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return uuid, nil
}

// NewTime generates a version 1 UUID. The clock sequence is random rather
// than a per-process counter, so two UUIDs built in the same 100-ns tick on
// the same node collide only if their 14 random bits do.
func (g *Generator) NewTime(ctx context.Context) (UUID, error) {
	ts := timestamp(g.now())

	var seq [2]byte
	if _, err := io.ReadFull(g.randReader, seq[:]); err != nil {
		return Nil, err
	}

	node, err := g.Node(ctx)
	if err != nil {
		return Nil, err
	}

	return FromFields(Fields{
		TimeLow:          uint32(ts),
		TimeMid:          uint16(ts >> 32),
		TimeHiAndVersion: uint16(ts>>48)&0x0fff | 0x1000,
		ClockSeq:         binary.BigEndian.Uint16(seq[:])&0x3fff | 0x8000,
		Node:             node,
	}), nil
}

// timestamp converts t to 100-ns intervals since the UUID epoch at
// microsecond resolution.
func timestamp(t time.Time) uint64 {
	usec := int64(t.Nanosecond() / 1000)
	return uint64(t.Unix()*intervalsPerSecond + usec*10 + epochOffset)
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = uuidshim.Must(uuidshim.NewV4())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// defaultGenerator is the package-level generator used by Create and the New* functions
var defaultGenerator atomic.Pointer[Generator]

func init() {
	defaultGenerator.Store(NewGenerator())
}

// Default returns the generator used by the package-level functions.
func Default() *Generator {
	return defaultGenerator.Load()
}

// SetDefault replaces the generator used by the package-level functions,
// for example to attach a NodeStore. A nil g restores a fresh default.
func SetDefault(g *Generator) {
	if g == nil {
		g = NewGenerator()
	}
	defaultGenerator.Store(g)
}

// New generates a UUID of the default kind (version 4) using the default generator.
func New() (UUID, error) {
	return Default().New(context.Background(), KindDefault)
}

// NewV1 generates a version 1 UUID using the default generator.
func NewV1() (UUID, error) {
	return Default().NewTime(context.Background())
}

// NewV4 generates a version 4 UUID using the default generator.
func NewV4() (UUID, error) {
	return Default().NewRandom()
}
