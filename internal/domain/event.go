package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	EventNewAlert              EventType = "new_alert"
	EventThreatAlert           EventType = "threat_alert"
	EventUrgentReport          EventType = "urgent_report"
	EventLocationUpdate        EventType = "location_update"
	EventConnectionEstablished EventType = "connection_established"
)

// EventPayload is implemented by exactly one payload type per EventType.
type EventPayload interface {
	EventType() EventType
}

type NewAlertPayload struct{ Alert }

func (NewAlertPayload) EventType() EventType { return EventNewAlert }

type ThreatAlertPayload struct{ Threat }

func (ThreatAlertPayload) EventType() EventType { return EventThreatAlert }

type UrgentReportPayload struct{ Report }

func (UrgentReportPayload) EventType() EventType { return EventUrgentReport }

type LocationUpdatePayload struct{ LocationSample }

func (LocationUpdatePayload) EventType() EventType { return EventLocationUpdate }

type ConnectionEstablishedPayload struct{}

func (ConnectionEstablishedPayload) EventType() EventType { return EventConnectionEstablished }

type BroadcastEvent struct {
	Type      EventType
	Payload   EventPayload
	Timestamp time.Time
}

func NewEvent(payload EventPayload, at time.Time) BroadcastEvent {
	return BroadcastEvent{Type: payload.EventType(), Payload: payload, Timestamp: at.UTC()}
}

type wireEvent struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func (ev BroadcastEvent) MarshalJSON() ([]byte, error) {
	if ev.Payload == nil || ev.Payload.EventType() != ev.Type {
		return nil, fmt.Errorf("event %q: payload does not match type", ev.Type)
	}
	w := wireEvent{Type: ev.Type, Timestamp: ev.Timestamp}
	if ev.Type != EventConnectionEstablished {
		data, err := json.Marshal(ev.Payload)
		if err != nil {
			return nil, err
		}
		w.Data = data
	}
	return json.Marshal(w)
}

func (ev *BroadcastEvent) UnmarshalJSON(b []byte) error {
	var w wireEvent
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	var payload EventPayload
	switch w.Type {
	case EventNewAlert:
		var p NewAlertPayload
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return err
		}
		payload = p
	case EventThreatAlert:
		var p ThreatAlertPayload
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return err
		}
		payload = p
	case EventUrgentReport:
		var p UrgentReportPayload
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return err
		}
		payload = p
	case EventLocationUpdate:
		var p LocationUpdatePayload
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return err
		}
		payload = p
	case EventConnectionEstablished:
		payload = ConnectionEstablishedPayload{}
	default:
		return fmt.Errorf("unknown event type %q", w.Type)
	}

	*ev = BroadcastEvent{Type: w.Type, Payload: payload, Timestamp: w.Timestamp}
	return nil
}
