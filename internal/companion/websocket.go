package companion

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"bearing-alert.klederson.com/internal/message"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SourceWebSocket names frames received over the WebSocket endpoint.
const SourceWebSocket = "ws"

const (
	socketBufferSize  = 1024
	messageBufferSize = 10
	maxReadSize       = 4 * message.InboxSize
	writeWait         = 5 * time.Second
)

var upgrader = &websocket.Upgrader{ReadBufferSize: socketBufferSize, WriteBufferSize: socketBufferSize}

// DisplayUpdate is the JSON document pushed to /display clients.
type DisplayUpdate struct {
	Heading string `json:"heading"`
	Bearing string `json:"bearing"`
}

// WSServer accepts companion frames on /companion and mirrors the display
// fields to any client connected to /display. It implements engine.Display.
type WSServer struct {
	program Sender
	logger  *zap.SugaredLogger
	srv     *http.Server
	room    *room

	mu      sync.Mutex
	display DisplayUpdate
}

// NewWSServer creates a server that listens on addr once started.
func NewWSServer(addr string, logger *zap.SugaredLogger) *WSServer {
	s := &WSServer{
		logger: logger,
	}
	s.room = newRoom(s.snapshot)
	go s.room.run()
	mux := http.NewServeMux()
	mux.HandleFunc("/companion", s.serveCompanion)
	mux.HandleFunc("/display", s.serveDisplay)
	s.srv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return s
}

// Handler exposes the HTTP handler, for tests and embedding.
func (s *WSServer) Handler() http.Handler {
	return s.srv.Handler
}

// Start binds the listener and serves in the background.
func (s *WSServer) Start(p Sender) error {
	s.program = p
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.srv.Addr)
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorw("websocket server stopped", "error", err)
			if s.program != nil {
				s.program.Send(ErrorMsg{Source: SourceWebSocket, Err: err})
			}
		}
	}()
	s.logger.Infow("websocket server listening", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the server down.
func (s *WSServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
	s.room.stop()
}

// SetHeadingText mirrors the heading field.
func (s *WSServer) SetHeadingText(text string) {
	s.mu.Lock()
	s.display.Heading = text
	update := s.display
	s.mu.Unlock()
	s.room.broadcast(update)
}

// SetBearingText mirrors the bearing field.
func (s *WSServer) SetBearingText(text string) {
	s.mu.Lock()
	s.display.Bearing = text
	update := s.display
	s.mu.Unlock()
	s.room.broadcast(update)
}

func (s *WSServer) serveCompanion(w http.ResponseWriter, req *http.Request) {
	socket, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Warnw("companion upgrade failed", "error", err)
		return
	}
	defer socket.Close()
	socket.SetReadLimit(maxReadSize)
	s.logger.Infow("companion connected", "remote", req.RemoteAddr)

	for {
		kind, data, err := socket.ReadMessage()
		if err != nil {
			if reason, dropped := readDropReason(err); dropped {
				s.send(DropMsg{Source: SourceWebSocket, Reason: reason})
			}
			s.logger.Infow("companion disconnected", "remote", req.RemoteAddr, "error", err)
			return
		}
		if kind != websocket.BinaryMessage {
			s.send(DropMsg{Source: SourceWebSocket, Reason: message.DropInvalidArgs})
			continue
		}
		s.send(FrameMsg{Source: SourceWebSocket, Frame: data})
	}
}

// readDropReason reports whether a failed read lost an inbound message. Only
// a normal or going-away close ends the stream cleanly.
func readDropReason(err error) (message.DropReason, bool) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		return message.DropBufferOverflow, true
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		return 0, false
	default:
		return message.DropClosed, true
	}
}

func (s *WSServer) serveDisplay(w http.ResponseWriter, req *http.Request) {
	socket, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Warnw("display upgrade failed", "error", err)
		return
	}
	c := &client{
		socket: socket,
		send:   make(chan []byte, messageBufferSize),
	}

	if !s.room.add(c) {
		socket.Close()
		return
	}
	defer s.room.remove(c)
	go c.write()
	c.read()
}

func (s *WSServer) snapshot() DisplayUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

func (s *WSServer) send(msg tea.Msg) {
	if s.program != nil {
		s.program.Send(msg)
	}
}

// room fans display updates out to every connected /display client. A joining
// client first gets the current fields, taken on the room goroutine so no
// update can fall between the snapshot and the join.
type room struct {
	current func() DisplayUpdate
	forward chan []byte
	join    chan *client
	leave   chan *client
	done    chan struct{}
	once    sync.Once
	clients map[*client]bool
}

func newRoom(current func() DisplayUpdate) *room {
	return &room{
		current: current,
		forward: make(chan []byte, messageBufferSize),
		join:    make(chan *client),
		leave:   make(chan *client),
		done:    make(chan struct{}),
		clients: make(map[*client]bool),
	}
}

func (r *room) run() {
	for {
		select {
		case <-r.done:
			for c := range r.clients {
				delete(r.clients, c)
				close(c.send)
			}
			return
		case c := <-r.join:
			r.clients[c] = true
			if data, err := json.Marshal(r.current()); err == nil {
				c.send <- data
			}
		case c := <-r.leave:
			if r.clients[c] {
				delete(r.clients, c)
				close(c.send)
			}
		case msg := <-r.forward:
			for c := range r.clients {
				select {
				case c.send <- msg:
				default:
					// slow client, it will catch up on the next update
				}
			}
		}
	}
}

func (r *room) add(c *client) bool {
	select {
	case r.join <- c:
		return true
	case <-r.done:
		return false
	}
}

func (r *room) remove(c *client) {
	select {
	case r.leave <- c:
	case <-r.done:
	}
}

// broadcast never blocks the caller; updates are dropped when the room is
// backed up.
func (r *room) broadcast(u DisplayUpdate) {
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	select {
	case r.forward <- data:
	default:
	}
}

func (r *room) stop() {
	r.once.Do(func() { close(r.done) })
}

type client struct {
	socket *websocket.Conn
	send   chan []byte
}

// read discards anything the display client sends and returns when it goes away.
func (c *client) read() {
	defer c.socket.Close()
	for {
		if _, _, err := c.socket.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) write() {
	defer c.socket.Close()
	for msg := range c.send {
		_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.socket.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
