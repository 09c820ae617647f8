package sse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// writeTimeout bounds each event write so a stalled parent connection is
// eventually dropped.
const writeTimeout = time.Minute

// ProfileChecker reports whether a profile exists. A nil checker accepts any id.
type ProfileChecker func(profileID string) bool

// Handler serves the live stream at GET /api/v1/live. The optional
// profile_id query parameter narrows the stream to one child.
type Handler struct {
	manager *Manager
	exists  ProfileChecker
	logger  *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(manager *Manager, exists ProfileChecker, logger *slog.Logger) *Handler {
	return &Handler{manager: manager, exists: exists, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profileID := r.URL.Query().Get("profile_id")
	if profileID != "" && h.exists != nil && !h.exists(profileID) {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	stream, err := openStream(w)
	if err != nil {
		h.logger.Error("live stream unsupported", "error", err)
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	client, err := h.manager.Connect(profileID)
	if err != nil {
		h.logger.Error("failed to register live client", "error", err)
		return
	}
	defer h.manager.Disconnect(client.ID)

	log := h.logger.With("client_id", client.ID)
	hello := map[string]string{"client_id": client.ID, "profile_id": profileID}
	if err := stream.send("connected", hello); err != nil {
		log.Debug("live client gone before hello", "error", err)
		return
	}

	for {
		select {
		case ev, ok := <-client.Events():
			if !ok {
				return
			}
			if err := stream.send(string(ev.Type), ev); err != nil {
				log.Debug("live client write failed", "error", err)
				return
			}
		case <-client.Closed():
			return
		case <-r.Context().Done():
			return
		}
	}
}

// stream writes text/event-stream frames and flushes each one.
type stream struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

func openStream(w http.ResponseWriter) (*stream, error) {
	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		return nil, err
	}
	return &stream{w: w, rc: rc}, nil
}

func (s *stream) send(name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}
	// Not every ResponseWriter supports deadlines.
	_ = s.rc.SetWriteDeadline(time.Now().Add(writeTimeout))

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, payload); err != nil {
		return err
	}
	return s.rc.Flush()
}
