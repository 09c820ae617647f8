// Package sse streams dashboard updates to connected parents over
// Server-Sent Events.
package sse

import (
	"time"

	"github.com/snapsense/snapsense-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventActivity carries a live activity event from the toy.
	EventActivity EventType = "activity"
	// EventDashboard carries a refreshed dashboard view.
	EventDashboard EventType = "dashboard"
	// EventSelection announces a change of the selected profile.
	EventSelection EventType = "selection"
	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// ProfileID scopes delivery. Empty means every client.
	ProfileID string `json:"-"`
}

// ActivityEventData is the payload of activity events.
type ActivityEventData struct {
	Event domain.ActivityEvent `json:"event"`
}

// DashboardEventData is the payload of dashboard events.
type DashboardEventData struct {
	View *domain.DashboardView `json:"view"`
}

// SelectionEventData is the payload of selection events. ProfileID is empty
// when the selection was cleared.
type SelectionEventData struct {
	ProfileID string `json:"profile_id"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewActivityEvent creates an activity event scoped to the event's profile.
func NewActivityEvent(ev domain.ActivityEvent) Event {
	return Event{
		Type:      EventActivity,
		Data:      ActivityEventData{Event: ev},
		Timestamp: time.Now(),
		ProfileID: ev.ProfileID,
	}
}

// NewDashboardEvent creates a dashboard refresh event.
func NewDashboardEvent(view *domain.DashboardView) Event {
	return Event{
		Type:      EventDashboard,
		Data:      DashboardEventData{View: view},
		Timestamp: time.Now(),
		ProfileID: view.ProfileID,
	}
}

// NewSelectionEvent creates a selection event for every client.
func NewSelectionEvent(profileID string) Event {
	return Event{
		Type:      EventSelection,
		Data:      SelectionEventData{ProfileID: profileID},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Data:      HeartbeatEventData{ServerTime: time.Now()},
		Timestamp: time.Now(),
	}
}
