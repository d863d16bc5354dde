package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/batchenc/internal/adapter/http/templates"
	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/service"
)

type SnapshotSource interface {
	Snapshot() domain.BatchSnapshot
}

type SSEHandler struct {
	eventBus *service.EventBus
	batches  SnapshotSource
}

func NewSSEHandler(eventBus *service.EventBus, batches SnapshotSource) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		batches:  batches,
	}
}

// sseState remembers what a client was last sent.
type sseState struct {
	dashboard string
	snapshot  string
}

// renderDashboardHTML renders the live panel fragment swapped in by the page.
func (h *SSEHandler) renderDashboardHTML(snap domain.BatchSnapshot) (string, error) {
	var buf bytes.Buffer
	if err := templates.LivePanel(snap).Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sseWrite writes an SSE event, handling multi-line data correctly.
func sseWrite(w http.ResponseWriter, eventName string, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// sendAllEvents sends the "dashboard" and "snapshot" events, skipping any
// whose payload is unchanged since prev.
func (h *SSEHandler) sendAllEvents(w http.ResponseWriter, snap domain.BatchSnapshot, prev *sseState) (*sseState, error) {
	next := &sseState{}
	if prev != nil {
		*next = *prev
	}

	html, err := h.renderDashboardHTML(snap)
	if err != nil {
		return prev, err
	}
	if html != next.dashboard {
		sseWrite(w, "dashboard", html)
		next.dashboard = html
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return next, err
	}
	if string(data) != next.snapshot {
		sseWrite(w, "snapshot", string(data))
		next.snapshot = string(data)
	}

	return next, nil
}

// sendKeepAlive writes an SSE comment to keep the connection active.
func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch := h.eventBus.Subscribe(service.TopicAll)
		defer h.eventBus.Unsubscribe(service.TopicAll, ch)

		state, _ := h.sendAllEvents(w, h.batches.Snapshot(), nil)

		ctx := r.Context()
		keepAlive := time.NewTicker(15 * time.Second)
		defer keepAlive.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-keepAlive.C:
				sendKeepAlive(w)
			case _, ok := <-ch:
				if !ok {
					return
				}
				drain(ch)
				state, _ = h.sendAllEvents(w, h.batches.Snapshot(), state)
			}
		}
	}
}

// drain discards queued events; one refresh covers them all.
func drain(ch chan service.Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
