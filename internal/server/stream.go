package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"

	requestlog "github.com/nfrund/classmeta/internal/middleware"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

const (
	// streamBuffer is the headroom for live registrations on top of the
	// replay a client receives when it connects.
	streamBuffer = 64
	// streamWriteTimeout bounds a single write to a client.
	streamWriteTimeout = 10 * time.Second
)

// streamListener forwards registrations to one websocket client.
type streamListener struct {
	registry *typeregistry.Registry
	send     chan typeregistry.Descriptor
	cancel   context.CancelFunc
	overflow atomic.Bool
}

// OnRegister never blocks. A client whose buffer is full is too slow to
// keep up; it is cut off instead of stalling the registering goroutine.
func (l *streamListener) OnRegister(c *typeregistry.Class) {
	d, err := l.registry.Describe(c)
	if err != nil {
		// Reclaimed or replaced between notification and lookup.
		return
	}
	select {
	case l.send <- d:
	default:
		l.overflow.Store(true)
		l.cancel()
	}
}

// streamRegistrations sends every registered class, then every new
// registration, as JSON descriptors until the client disconnects or falls
// behind.
func (s *Server) streamRegistrations(c echo.Context) error {
	logger := requestlog.FromContext(c.Request().Context())
	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		InsecureSkipVerify: true, // In production, check origin.
	})
	if err != nil {
		logger.Error("Failed to upgrade registrations WebSocket", "error", err)
		return err
	}

	// Clients only listen; CloseRead handles their control frames and
	// cancels ctx when they disconnect.
	ctx, cancel := context.WithCancel(conn.CloseRead(c.Request().Context()))
	defer cancel()

	l := &streamListener{
		registry: s.registry,
		send:     make(chan typeregistry.Descriptor, s.registry.Len()+streamBuffer),
		cancel:   cancel,
	}

	go s.writePump(ctx, cancel, conn, l.send)

	if err := s.registry.AddListener(l); err != nil {
		logger.Warn("Registration replay failed", "error", err)
	}

	<-ctx.Done()
	s.registry.RemoveListener(l)

	if l.overflow.Load() {
		logger.Warn("Dropping slow registrations WebSocket client", "remote", c.RealIP())
		conn.Close(websocket.StatusPolicyViolation, "client too slow")
		return nil
	}
	conn.Close(websocket.StatusNormalClosure, "")
	logger.Debug("Registrations WebSocket closed", "remote", c.RealIP())
	return nil
}

func (s *Server) writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, send <-chan typeregistry.Descriptor) {
	defer cancel()
	for {
		select {
		case d := <-send:
			writeCtx, done := context.WithTimeout(ctx, streamWriteTimeout)
			err := wsjson.Write(writeCtx, conn, d)
			done()
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error("Registrations writePump error", "error", err)
				}
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
