package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	// Statement events
	EventStatementCreated   = "hr.statement.created"
	EventStatementCancelled = "hr.statement.cancelled"

	// Access events
	EventAccessDenied = "hr.access.denied"
)

// Exchange names
const (
	ExchangeHREvents = "hr.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Statement Events

// StatementCreatedEvent is published when an employee files a statement
type StatementCreatedEvent struct {
	StatementID int64  `json:"statement_id"`
	EmployeeID  int64  `json:"employee_id"`
	Category    string `json:"category"`
}

// StatementCancelledEvent is published when a statement is cancelled
type StatementCancelledEvent struct {
	StatementID int64 `json:"statement_id"`
	EmployeeID  int64 `json:"employee_id"`
	CancelledBy int64 `json:"cancelled_by"`
}

// Access Events

// AccessDeniedEvent is published when a read is refused by the scope resolver
type AccessDeniedEvent struct {
	ActorID    int64  `json:"actor_id"`
	Permission string `json:"permission"`
	TargetID   int64  `json:"target_id,omitempty"`
	TeamID     int64  `json:"team_id,omitempty"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}
