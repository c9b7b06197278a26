package ports

import (
	"context"
	"net/http"
	"time"
)

type PubSubMessage struct {
	Destination string
	Body        []byte
	Err         error
}

type PubSubSubscription interface {
	Messages() <-chan PubSubMessage
	Unsubscribe() error
}

// PubSubConn is one live pub/sub session. Done is closed when the session
// ends for any reason.
type PubSubConn interface {
	Subscribe(destination string) (PubSubSubscription, error)
	Done() <-chan struct{}
	Disconnect() error
}

type PubSubDialer interface {
	Dial(ctx context.Context, endpoint string, header http.Header, heartbeat time.Duration) (PubSubConn, error)
}
