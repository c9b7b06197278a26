package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const maxLineBytes = 4 << 20

// Emitter writes one JSON object per line: the payload's fields plus a
// "command" field naming the message.
type Emitter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ ports.Emitter = (*Emitter)(nil)

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

func (e *Emitter) Emit(command string, payload any) error {
	line, err := Encode(command, payload)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write %s message: %w", command, err)
	}
	return nil
}

// Encode builds the envelope for one message. Payloads that are not JSON
// objects are carried under "payload".
func Encode(command string, payload any) ([]byte, error) {
	name, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("encode command name: %w", err)
	}

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", command, err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(`{"command":`)
	buf.Write(name)

	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
	case trimmed[0] == '{':
		inner := bytes.TrimSpace(trimmed[1 : len(trimmed)-1])
		if len(inner) > 0 {
			buf.WriteByte(',')
			buf.Write(inner)
		}
	default:
		buf.WriteString(`,"payload":`)
		buf.Write(trimmed)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Handler receives decoded inbound commands with the full message as payload.
type Handler interface {
	Handle(ctx context.Context, command string, payload json.RawMessage) error
}

// BlockingHandler is implemented by handlers with commands that wait on
// subprocesses or the network. Those commands run on their own goroutine;
// all others run in arrival order on the read loop.
type BlockingHandler interface {
	Handler
	Blocking(command string) bool
}

type envelope struct {
	Command string `json:"command"`
}

// Serve reads commands from r until EOF or ctx ends. Commands are handled
// one at a time in arrival order, except blocking ones reported by a
// BlockingHandler. Serve waits for those before returning.
func Serve(ctx context.Context, r io.Reader, handler Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	blocking, _ := handler.(BlockingHandler)

	var wg sync.WaitGroup
	defer wg.Wait()

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := bytes.Clone(scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read bridge input: %w", err)
					}
				default:
				}
				return nil
			}

			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}

			var env envelope
			if err := json.Unmarshal(line, &env); err != nil || env.Command == "" {
				logger.Warn("dropping malformed bridge message", zap.ByteString("line", truncate(line)), zap.Error(err))
				continue
			}

			if blocking != nil && blocking.Blocking(env.Command) {
				wg.Add(1)
				go func(command string, payload json.RawMessage) {
					defer wg.Done()
					dispatch(ctx, handler, command, payload, logger)
				}(env.Command, json.RawMessage(line))
				continue
			}
			dispatch(ctx, handler, env.Command, json.RawMessage(line), logger)
		}
	}
}

func dispatch(ctx context.Context, handler Handler, command string, payload json.RawMessage, logger *zap.Logger) {
	if err := handler.Handle(ctx, command, payload); err != nil {
		logger.Debug("bridge command failed", zap.String("command", command), zap.Error(err))
	}
}

func truncate(line []byte) []byte {
	const limit = 256
	if len(line) <= limit {
		return line
	}
	return line[:limit]
}
