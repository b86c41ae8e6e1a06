package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrMissingURI means no connection string was configured. It is fatal.
var ErrMissingURI = errors.New("database: MONGODB_URL is not set")

const (
	defaultDatabase               = "threads"
	defaultConnectTimeout         = 30 * time.Second
	defaultServerSelectionTimeout = 10 * time.Second
	disconnectTimeout             = 10 * time.Second
)

// Options configures a Connector.
type Options struct {
	URI                    string
	Database               string
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

// Connector owns the process-wide MongoDB client. The first Connect dials;
// concurrent callers share that attempt and later callers reuse the client
// until a lifecycle event marks it invalid.
type Connector struct {
	opts Options
	log  *zap.Logger

	group singleflight.Group
	live  atomic.Bool

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database

	monitorsOnce  sync.Once
	serverMonitor *event.ServerMonitor
	poolMonitor   *event.PoolMonitor

	dial func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)
	ping func(ctx context.Context, client *mongo.Client) error
}

func NewConnector(opts Options, log *zap.Logger) *Connector {
	if opts.Database == "" {
		opts.Database = defaultDatabase
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}
	if opts.ServerSelectionTimeout <= 0 {
		opts.ServerSelectionTimeout = defaultServerSelectionTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Connector{
		opts: opts,
		log:  log.Named("database"),
		dial: func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			return mongo.Connect(ctx, opts)
		},
		ping: func(ctx context.Context, client *mongo.Client) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
}

// Connect returns the live database, establishing the connection when there
// is none. It fails with ErrMissingURI when unconfigured and with a
// *ConnectionError when the server cannot be reached.
func (c *Connector) Connect(ctx context.Context) (*mongo.Database, error) {
	if c.opts.URI == "" {
		return nil, ErrMissingURI
	}
	if db := c.liveDB(); db != nil {
		return db, nil
	}

	// The shared attempt is not bound to any one caller's context; each
	// caller still stops waiting when its own context ends.
	ch := c.group.DoChan("connect", func() (any, error) {
		return c.establish()
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Database), nil
	case <-ctx.Done():
		return nil, &ConnectionError{Kind: KindTimeout, Err: ctx.Err()}
	}
}

// liveDB returns the database while the connection is marked live. A
// Disconnect racing the flag check leaves db nil, which means "not live".
func (c *Connector) liveDB() *mongo.Database {
	if !c.live.Load() {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// IsConnected reports whether the last known state of the client is healthy.
func (c *Connector) IsConnected() bool {
	return c.live.Load()
}

func (c *Connector) establish() (*mongo.Database, error) {
	if db := c.liveDB(); db != nil {
		return db, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.ConnectTimeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	// A client that was flagged invalid may have recovered on its own.
	if c.client != nil {
		if err := c.ping(ctx, c.client); err == nil {
			c.live.Store(true)
			c.log.Info("mongodb connection recovered")
			return c.db, nil
		}
		c.log.Warn("dropping stale mongodb client")
		_ = c.client.Disconnect(context.Background())
		c.client, c.db = nil, nil
	}

	c.registerMonitors()
	clientOpts := options.Client().
		ApplyURI(c.opts.URI).
		SetServerSelectionTimeout(c.opts.ServerSelectionTimeout).
		SetServerMonitor(c.serverMonitor).
		SetPoolMonitor(c.poolMonitor)

	c.log.Info("connecting to mongodb", zap.String("database", c.opts.Database))
	client, err := c.dial(ctx, clientOpts)
	if err != nil {
		return nil, c.connectionFailed(err)
	}
	if err := c.ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, c.connectionFailed(err)
	}

	c.client = client
	c.db = client.Database(c.opts.Database)
	c.live.Store(true)
	c.log.Info("connected to mongodb", zap.String("database", c.opts.Database))
	return c.db, nil
}

func (c *Connector) connectionFailed(err error) error {
	cerr := &ConnectionError{Kind: classify(err), Err: err}
	c.log.Error("mongodb connection failed", zap.String("kind", string(cerr.Kind)), zap.Error(err))
	return cerr
}

// registerMonitors builds the lifecycle handlers once; every client the
// connector dials shares them.
func (c *Connector) registerMonitors() {
	c.monitorsOnce.Do(func() {
		c.serverMonitor = &event.ServerMonitor{
			ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
				c.invalidate("heartbeat failed", e.Failure)
			},
			TopologyClosed: func(*event.TopologyClosedEvent) {
				c.invalidate("topology closed", nil)
			},
		}
		c.poolMonitor = &event.PoolMonitor{
			Event: func(e *event.PoolEvent) {
				if e.Type == event.PoolCleared {
					c.invalidate("pool cleared", nil)
				}
			},
		}
	})
}

// invalidate makes the next Connect verify the client instead of trusting it.
func (c *Connector) invalidate(reason string, cause error) {
	if c.live.Swap(false) {
		c.log.Warn("mongodb connection marked invalid", zap.String("reason", reason), zap.Error(cause))
	}
}

// Disconnect closes the client if one was established.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, disconnectTimeout)
		defer cancel()
	}
	err := c.client.Disconnect(ctx)
	c.client, c.db = nil, nil
	c.live.Store(false)
	if err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}
