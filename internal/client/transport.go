package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
)

// Transport is the bidirectional frame stream a Session talks over.
// *websocket.Conn satisfies it.
type Transport interface {
	// ReadMessage returns the next whole frame
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v any) error
	Close() error
}

// Dial opens a websocket to serverURL identifying the caller by user id and display name
func Dial(ctx context.Context, serverURL, userID, name string) (*websocket.Conn, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	q := u.Query()
	if userID != "" {
		q.Set("user", userID)
	}
	if name != "" {
		q.Set("name", name)
	}
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", u.Redacted(), err)
	}

	return conn, nil
}
