// Package notify carries the transient user-facing notices the back-office
// shows after each workflow: "Venda registrada com sucesso!", "Produto sem
// estoque!" and so on. Notices are short-lived banners, not persistent
// records — the hub-backed notifier pushes them to connected admin clients
// over WebSocket and mirrors them into the log.
package notify

import (
	"encoding/json"
	"time"

	"github.com/lspratas/atelier/pkg/logger"
	"github.com/lspratas/atelier/pkg/ws"
)

// Level is the visual class of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// DisplayFor is the suggested on-screen lifetime of a notice.
const DisplayFor = 3 * time.Second

// Notice is one transient banner. Message is a generic, user-facing string;
// backend error detail never travels through a Notice.
type Notice struct {
	Level     Level  `json:"type"`
	Message   string `json:"message"`
	At        int64  `json:"at"` // unix millis
	DisplayMS int64  `json:"displayMs"`
}

// Notifier receives notices emitted by workflows.
type Notifier interface {
	Push(n Notice)
}

// Success emits a success notice.
func Success(n Notifier, message string) {
	n.Push(Notice{
		Level:     LevelSuccess,
		Message:   message,
		At:        time.Now().UnixMilli(),
		DisplayMS: DisplayFor.Milliseconds(),
	})
}

// Error emits an error notice.
func Error(n Notifier, message string) {
	n.Push(Notice{
		Level:     LevelError,
		Message:   message,
		At:        time.Now().UnixMilli(),
		DisplayMS: DisplayFor.Milliseconds(),
	})
}

// HubNotifier broadcasts notices to every connected WebSocket client.
type HubNotifier struct {
	Hub *ws.Hub
}

// NewHubNotifier wraps a running hub.
func NewHubNotifier(hub *ws.Hub) *HubNotifier {
	return &HubNotifier{Hub: hub}
}

func (h *HubNotifier) Push(n Notice) {
	payload, err := json.Marshal(n)
	if err != nil {
		logger.Error("notify: marshal", "error", err)
		return
	}

	select {
	case h.Hub.Broadcast <- payload:
	default:
		// Hub saturated — a dropped banner is acceptable.
	}

	if n.Level == LevelError {
		logger.Warn("notice", "message", n.Message)
	} else {
		logger.Info("notice", "message", n.Message)
	}
}

// Discard swallows notices. Useful for CLI contexts and tests.
type Discard struct{}

func (Discard) Push(Notice) {}
