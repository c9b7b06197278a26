package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const (
	DefaultHeartbeat      = 10 * time.Second
	DefaultReconnectDelay = 3 * time.Second

	realtimePath = "/websocket/websocket"
)

type Subscriber func(domain.Event)

type RealtimeOptions struct {
	ServerURL      string
	Heartbeat      time.Duration
	ReconnectDelay time.Duration
	Logger         *zap.Logger
	OnStatus       func(domain.ConnectionStatus)
}

type subscriberEntry struct {
	id uint64
	fn Subscriber
}

// RealtimeChannel keeps an authenticated pub/sub session to the server and
// fans decoded events out to subscribers. It owns its reconnect loop; the
// attempt counter is only reported, it never stops the loop.
type RealtimeChannel struct {
	dialer   ports.PubSubDialer
	sessions ports.SessionProvider
	opts     RealtimeOptions
	logger   *zap.Logger

	mu            sync.Mutex
	subscribers   map[domain.EventKind][]subscriberEntry
	nextID        uint64
	conn          ports.PubSubConn
	subscriptions map[string]ports.PubSubSubscription
	status        domain.ConnectionStatus
	cancel        context.CancelFunc
	done          chan struct{}
}

func NewRealtimeChannel(dialer ports.PubSubDialer, sessions ports.SessionProvider, opts RealtimeOptions) *RealtimeChannel {
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = DefaultHeartbeat
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RealtimeChannel{
		dialer:        dialer,
		sessions:      sessions,
		opts:          opts,
		logger:        logger.Named("realtime"),
		subscribers:   map[domain.EventKind][]subscriberEntry{},
		subscriptions: map[string]ports.PubSubSubscription{},
	}
}

// Subscribe registers fn for kind and returns a function removing it.
func (c *RealtimeChannel) Subscribe(kind domain.EventKind, fn Subscriber) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subscribers[kind] = append(c.subscribers[kind], subscriberEntry{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		entries := c.subscribers[kind]
		for i, entry := range entries {
			if entry.id == id {
				c.subscribers[kind] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Endpoint derives the websocket endpoint from the configured server URL.
func Endpoint(serverURL string) (string, error) {
	if strings.TrimSpace(serverURL) == "" {
		return "", domain.ErrServerURLMissing
	}

	parsed, err := url.Parse(strings.TrimSpace(serverURL))
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}

	switch parsed.Scheme {
	case "https", "wss":
		parsed.Scheme = "wss"
	case "http", "ws":
		parsed.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", parsed.Scheme)
	}

	parsed.Path = realtimePath
	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.User = nil
	return parsed.String(), nil
}

func (c *RealtimeChannel) authHeader(ctx context.Context) (http.Header, error) {
	if c.sessions == nil {
		return nil, domain.ErrNotAuthenticated
	}

	session, err := c.sessions.SessionToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve session token: %w", err)
	}
	if session.Raw == "" {
		return nil, domain.ErrSessionTokenMissing
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+session.Raw)
	return header, nil
}

// Start verifies the configuration and session, then keeps the channel
// connected in the background until Disconnect or ctx ends.
func (c *RealtimeChannel) Start(ctx context.Context) error {
	endpoint, err := Endpoint(c.opts.ServerURL)
	if err != nil {
		return fmt.Errorf("connect realtime channel: %w", err)
	}
	if _, err := c.authHeader(ctx); err != nil {
		return fmt.Errorf("connect realtime channel: %w", err)
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return nil
	}
	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go func() {
		defer close(done)
		c.run(loopCtx, endpoint)
	}()

	return nil
}

func (c *RealtimeChannel) run(ctx context.Context, endpoint string) {
	for {
		conn, err := c.connect(ctx, endpoint)
		if err == nil {
			c.setStatus(func(s *domain.ConnectionStatus) {
				s.Connected = true
				s.LastError = nil
			})

			select {
			case <-ctx.Done():
				c.dropConnection(conn)
				_ = conn.Disconnect()
				return
			case <-conn.Done():
			}

			c.dropConnection(conn)
			err = errors.New("connection closed")
		}
		if ctx.Err() != nil {
			return
		}

		c.logger.Warn("realtime connection lost, reconnecting",
			zap.Error(err),
			zap.Duration("delay", c.opts.ReconnectDelay),
		)
		c.setStatus(func(s *domain.ConnectionStatus) {
			s.Connected = false
			s.Attempts++
			s.LastError = err
		})

		timer := time.NewTimer(c.opts.ReconnectDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (c *RealtimeChannel) connect(ctx context.Context, endpoint string) (ports.PubSubConn, error) {
	header, err := c.authHeader(ctx)
	if err != nil {
		return nil, err
	}

	conn, err := c.dialer.Dial(ctx, endpoint, header, c.opts.Heartbeat)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	if err := c.SubscribeDestinations(); err != nil {
		c.dropConnection(conn)
		_ = conn.Disconnect()
		return nil, err
	}

	c.logger.Info("realtime channel connected", zap.String("endpoint", endpoint))
	return conn, nil
}

// SubscribeDestinations subscribes the live connection to every per-user
// destination not yet subscribed. Calling it again is a no-op.
func (c *RealtimeChannel) SubscribeDestinations() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	destinations := make([]string, 0, len(domain.Destinations))
	for destination := range domain.Destinations {
		destinations = append(destinations, destination)
	}
	sort.Strings(destinations)

	for _, destination := range destinations {
		if _, ok := c.subscriptions[destination]; ok {
			continue
		}

		sub, err := c.conn.Subscribe(destination)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", destination, err)
		}
		c.subscriptions[destination] = sub
		go c.pump(destination, sub)
	}

	return nil
}

func (c *RealtimeChannel) pump(destination string, sub ports.PubSubSubscription) {
	kind := domain.Destinations[destination]
	for msg := range sub.Messages() {
		if msg.Err != nil {
			c.logger.Warn("realtime subscription error", zap.String("destination", destination), zap.Error(msg.Err))
			continue
		}
		c.Dispatch(kind, msg.Body)
	}
}

// Dispatch decodes body and hands the event to every subscriber of kind.
// Malformed bodies are logged and dropped.
func (c *RealtimeChannel) Dispatch(kind domain.EventKind, body []byte) {
	event, err := domain.DecodeEvent(kind, body)
	if err != nil {
		c.logger.Warn("dropping realtime message", zap.String("kind", string(kind)), zap.Error(err))
		return
	}

	c.mu.Lock()
	entries := append([]subscriberEntry(nil), c.subscribers[kind]...)
	c.mu.Unlock()

	for _, entry := range entries {
		c.deliver(entry, event)
	}
}

func (c *RealtimeChannel) deliver(entry subscriberEntry, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("realtime subscriber panicked", zap.String("kind", string(event.Kind)), zap.Any("panic", r))
		}
	}()
	entry.fn(event)
}

// dropConnection forgets conn and its subscriptions if it is still current.
func (c *RealtimeChannel) dropConnection(conn ports.PubSubConn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != conn {
		return
	}
	c.conn = nil
	c.subscriptions = map[string]ports.PubSubSubscription{}
}

func (c *RealtimeChannel) setStatus(update func(*domain.ConnectionStatus)) {
	c.mu.Lock()
	update(&c.status)
	status := c.status
	c.mu.Unlock()

	if c.opts.OnStatus != nil {
		c.opts.OnStatus(status)
	}
}

func (c *RealtimeChannel) Status() domain.ConnectionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// Disconnect stops the reconnect loop, unsubscribes everything and closes the
// transport.
func (c *RealtimeChannel) Disconnect() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	conn := c.conn
	subscriptions := c.subscriptions
	c.conn = nil
	c.subscriptions = map[string]ports.PubSubSubscription{}
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	var errs []error
	for destination, sub := range subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			errs = append(errs, fmt.Errorf("unsubscribe %s: %w", destination, err))
		}
	}
	if conn != nil {
		if err := conn.Disconnect(); err != nil {
			errs = append(errs, fmt.Errorf("disconnect: %w", err))
		}
	}

	if done != nil {
		<-done
	}

	c.setStatus(func(s *domain.ConnectionStatus) {
		s.Connected = false
	})

	return errors.Join(errs...)
}
