package installer

// EventType classifies an installation progress event.
type EventType string

const (
	EventStatus  EventType = "status"
	EventOutput  EventType = "output"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event reports installation progress. Output events carry a single line of
// command output in Line, all other types carry Message.
type Event struct {
	RunID   string    `json:"runId"`
	Type    EventType `json:"type"`
	ToolID  string    `json:"toolId,omitempty"`
	Message string    `json:"message,omitempty"`
	Line    string    `json:"line,omitempty"`
}
