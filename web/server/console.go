package server

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConsoleMessage represents a log entry forwarded to a web client
type ConsoleMessage struct {
	Message   string                 `json:"message"`
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"` // "info", "warn", "error"
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// consoleCore is a zapcore.Core that sends entries to a console channel
type consoleCore struct {
	zapcore.LevelEnabler
	fields      []zapcore.Field
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger returns base extended to also send info and higher entries
// for one render to consoleChan. Sends never block: when the channel is full
// the console copy of the entry is dropped.
func NewWebLogger(base *zap.Logger, renderID string, consoleChan chan<- ConsoleMessage) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	console := &consoleCore{LevelEnabler: zapcore.InfoLevel, consoleChan: consoleChan}
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, console)
	})).With(zap.String("renderID", renderID))
}

func (c *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field{}, c.fields...), fields...)
	return &clone
}

func (c *consoleCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *consoleCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	select {
	case c.consoleChan <- ConsoleMessage{
		Message:   entry.Message,
		Timestamp: entry.Time,
		Level:     entry.Level.String(),
		Fields:    enc.Fields,
	}:
	default:
	}
	return nil
}

func (c *consoleCore) Sync() error { return nil }

// drainConsole returns the messages already buffered in ch
func drainConsole(ch <-chan ConsoleMessage) []ConsoleMessage {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
