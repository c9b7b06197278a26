package stompws

import (
	"errors"
	"io"
	"sync"

	"github.com/fasthttp/websocket"
)

// stream exposes a websocket as the byte stream a STOMP client expects.
// Each write becomes one text message; reads concatenate message payloads.
type stream struct {
	conn *websocket.Conn

	readMu sync.Mutex
	reader io.Reader

	writeMu sync.Mutex

	once sync.Once
	done chan struct{}
}

var _ io.ReadWriteCloser = (*stream)(nil)

func newStream(conn *websocket.Conn) *stream {
	return &stream{conn: conn, done: make(chan struct{})}
}

func (s *stream) Read(p []byte) (int, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()

	for {
		if s.reader == nil {
			_, reader, err := s.conn.NextReader()
			if err != nil {
				s.finish()
				return 0, err
			}
			s.reader = reader
		}

		n, err := s.reader.Read(p)
		if errors.Is(err, io.EOF) {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *stream) Write(p []byte) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *stream) Close() error {
	var err error
	s.once.Do(func() {
		s.writeMu.Lock()
		_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()
		err = s.conn.Close()
		close(s.done)
	})
	return err
}

// finish marks the stream done after the peer went away.
func (s *stream) finish() {
	s.once.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *stream) Done() <-chan struct{} {
	return s.done
}
