package progress

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/scenepack/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEvent is the event emitted for each update when none is configured.
const DefaultEvent = "export_progress"

const connectTimeout = 15 * time.Second

// SocketIOConfig locates the editor to report to.
type SocketIOConfig struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
}

// SocketIO emits every update as an event to a socket.io server.
type SocketIO struct {
	logger     *slog.Logger
	event      string
	runID      string
	emit       func(event string, payload map[string]any)
	disconnect func()
}

// DialSocketIO connects to the server and returns an observer emitting on
// that connection. The connection is established before returning.
func DialSocketIO(ctx context.Context, cfg SocketIOConfig, runID string) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("observer", "socketio", "url", cfg.URL)
	logger.Info("Connecting progress observer...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid socket.io URL %q", cfg.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Progress observer connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}

	event := cfg.Event
	if event == "" {
		event = DefaultEvent
	}
	return &SocketIO{
		logger: logger,
		event:  event,
		runID:  runID,
		emit: func(event string, payload map[string]any) {
			io.Emit(event, payload)
		},
		disconnect: func() { io.Disconnect() },
	}, nil
}

// Update emits {"run_id", "percent", "message"} under the configured event.
func (s *SocketIO) Update(percent int, message string) {
	s.logger.Debug("Emitting progress", "event", s.event, "percent", percent)
	s.emit(s.event, map[string]any{
		"run_id":  s.runID,
		"percent": percent,
		"message": message,
	})
}

// Close disconnects from the server.
func (s *SocketIO) Close() {
	if s.disconnect != nil {
		s.disconnect()
	}
}
