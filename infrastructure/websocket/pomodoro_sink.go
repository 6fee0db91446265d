package websocket

import (
	"sync"

	"study-tracker/domain/dto"
	"study-tracker/domain/services"
	"study-tracker/pkg/pomodoro"
)

// jsonConn is the part of *websocket.Conn a sink writes to
type jsonConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// ConnSink pushes pomodoro messages to one websocket connection. Writes
// come from the read loop and the ticker goroutine, so they are serialized.
type ConnSink struct {
	mu     sync.Mutex
	conn   jsonConn
	closed bool
}

func NewConnSink(conn jsonConn) *ConnSink {
	return &ConnSink{conn: conn}
}

var _ services.PomodoroSink = (*ConnSink)(nil)

func (s *ConnSink) SendState(state pomodoro.State) error {
	return s.write(dto.NewPomodoroStateMessage(state))
}

func (s *ConnSink) SendComplete(c pomodoro.Completion) error {
	return s.write(dto.NewPomodoroCompleteMessage(c))
}

func (s *ConnSink) SendError(msg string) error {
	return s.write(dto.NewPomodoroErrorMessage(msg))
}

// Send writes any message, e.g. a pong
func (s *ConnSink) Send(v interface{}) error {
	return s.write(v)
}

func (s *ConnSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

func (s *ConnSink) write(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSinkClosed
	}
	return s.conn.WriteJSON(v)
}

type sinkError string

func (e sinkError) Error() string { return string(e) }

const errSinkClosed = sinkError("websocket sink is closed")
