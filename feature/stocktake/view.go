package stocktake

import (
	"sync"

	"stocktake/core/session"
	"stocktake/feature/stocktake/models"

	"go.uber.org/zap"
)

// BufferView collects session messages so they can be returned with the
// response of the request that caused them. Highlights are not buffered;
// HTTP clients read found state from the records endpoints.
type BufferView struct {
	mu       sync.Mutex
	messages []models.Message
}

// NewBufferView creates an empty view.
func NewBufferView() *BufferView {
	return &BufferView{}
}

func (v *BufferView) DisplayRecords([][]string) {}

func (v *BufferView) RecordFound(string, session.RecordKind) {}

func (v *BufferView) DisplayMessage(title, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = append(v.messages, models.Message{Title: title, Text: message})
}

// Drain returns and clears the buffered messages.
func (v *BufferView) Drain() []models.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.messages
	v.messages = nil
	if out == nil {
		out = []models.Message{}
	}
	return out
}

// LogNotifier writes feedback events to the log. The server has no speaker;
// scanner clients react to the scan response instead.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier logging at debug level.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(event session.Event) {
	n.logger.Debug("Feedback event", zap.String("event", string(event)))
}
