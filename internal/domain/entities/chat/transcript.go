// Package chat defines the chatbot transcript entities.
package chat

import "time"

// Message is a single turn in a session transcript.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"` // "llm" or "fallback", assistant turns only
	CreatedAt time.Time `json:"createdAt"`
}

// Transcript is the running conversation for one session.
type Transcript struct {
	SessionID string     `json:"sessionId"`
	Messages  []Message  `json:"messages"`
	Created   time.Time  `json:"created"`
	Changed   *time.Time `json:"changed,omitempty"`
}
