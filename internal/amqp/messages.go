package amqp

import (
	"encoding/json"
	"time"
)

// ErrorReportMessage is one reported client error, as published on the queue.
type ErrorReportMessage struct {
	Label      string    `json:"label"`
	Error      string    `json:"error"`
	ErrorType  string    `json:"error_type,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewErrorReportMessage creates a report stamped with the current time.
func NewErrorReportMessage(label string, err error, errorType string, statusCode int) *ErrorReportMessage {
	msg := &ErrorReportMessage{
		Label:      label,
		ErrorType:  errorType,
		StatusCode: statusCode,
		Timestamp:  time.Now().UTC(),
	}
	if err != nil {
		msg.Error = err.Error()
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *ErrorReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ErrorReportMessageFromJSON creates a message from JSON bytes
func ErrorReportMessageFromJSON(data []byte) (*ErrorReportMessage, error) {
	var msg ErrorReportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
