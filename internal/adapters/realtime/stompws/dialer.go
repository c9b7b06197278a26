package stompws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/go-stomp/stomp/v3"
	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const handshakeTimeout = 15 * time.Second

// Dialer opens STOMP sessions over a websocket.
type Dialer struct {
	WebSocket *websocket.Dialer
	Logger    *zap.Logger
}

var _ ports.PubSubDialer = (*Dialer)(nil)

func NewDialer(logger *zap.Logger) *Dialer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dialer{
		WebSocket: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		Logger: logger,
	}
}

// Dial performs the websocket handshake with header, then the STOMP CONNECT
// exchange with symmetric heartbeat.
func (d *Dialer) Dial(ctx context.Context, endpoint string, header http.Header, heartbeat time.Duration) (ports.PubSubConn, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	ws, resp, err := d.WebSocket.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake: status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket handshake: %w", err)
	}

	s := newStream(ws)
	stompConn, err := connect(ctx, s, parsed.Hostname(), heartbeat)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("stomp connect: %w", err), s.Close())
	}

	d.Logger.Debug("stomp session established",
		zap.String("endpoint", endpoint),
		zap.String("server", stompConn.Server()),
		zap.String("session", stompConn.Session()),
	)

	return &conn{stomp: stompConn, stream: s, logger: d.Logger}, nil
}

// connect runs the CONNECT handshake and abandons it when ctx ends first.
func connect(ctx context.Context, s *stream, host string, heartbeat time.Duration) (*stomp.Conn, error) {
	type result struct {
		conn *stomp.Conn
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		c, err := stomp.Connect(s,
			stomp.ConnOpt.Host(host),
			stomp.ConnOpt.HeartBeat(heartbeat, heartbeat),
		)
		ch <- result{conn: c, err: err}
	}()

	select {
	case <-ctx.Done():
		_ = s.Close()
		return nil, ctx.Err()
	case r := <-ch:
		return r.conn, r.err
	}
}

type conn struct {
	stomp  *stomp.Conn
	stream *stream
	logger *zap.Logger

	once sync.Once
	err  error
}

func (c *conn) Subscribe(destination string) (ports.PubSubSubscription, error) {
	sub, err := c.stomp.Subscribe(destination, stomp.AckAuto)
	if err != nil {
		return nil, err
	}
	return newSubscription(sub), nil
}

func (c *conn) Done() <-chan struct{} {
	return c.stream.Done()
}

// Disconnect sends DISCONNECT when the session is still live and closes
// the socket. Later calls return the first result.
func (c *conn) Disconnect() error {
	c.once.Do(func() {
		select {
		case <-c.stream.Done():
			c.err = nil
		default:
			if err := c.stomp.Disconnect(); err != nil {
				c.logger.Debug("stomp disconnect", zap.Error(err))
			}
			c.err = c.stream.Close()
		}
	})
	return c.err
}

type subscription struct {
	sub      *stomp.Subscription
	messages chan ports.PubSubMessage
}

func newSubscription(sub *stomp.Subscription) *subscription {
	s := &subscription{sub: sub, messages: make(chan ports.PubSubMessage)}
	go s.forward()
	return s
}

func (s *subscription) forward() {
	defer close(s.messages)
	for msg := range s.sub.C {
		if msg == nil {
			continue
		}
		s.messages <- ports.PubSubMessage{
			Destination: msg.Destination,
			Body:        msg.Body,
			Err:         msg.Err,
		}
	}
}

func (s *subscription) Messages() <-chan ports.PubSubMessage {
	return s.messages
}

func (s *subscription) Unsubscribe() error {
	if !s.sub.Active() {
		return nil
	}
	return s.sub.Unsubscribe()
}
