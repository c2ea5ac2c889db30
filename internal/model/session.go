package model

import "time"

// Scope describes the set of tasks a session is bound to.
type Scope struct {
	Type       ScopeType `json:"type"`
	RootTaskID string    `json:"rootTaskId,omitempty"`
	Phase      string    `json:"phase,omitempty"`
}

// Session is a scoped work context bound to a terminal/process.
type Session struct {
	ID        string        `json:"id"`
	Status    SessionStatus `json:"status"`
	Scope     Scope         `json:"scope"`
	Focus     Focus         `json:"focus"`
	Agent     string        `json:"agent,omitempty"`
	Name      string        `json:"name,omitempty"`
	StartedAt time.Time     `json:"startedAt"`
	EndedAt   *time.Time    `json:"endedAt,omitempty"`
}

// SessionStore is the contents of sessions.json.
type SessionStore struct {
	Meta     StoreMeta  `json:"_meta"`
	Sessions []*Session `json:"sessions"`
}

// Binding is the contents of .current-session: which session the current
// terminal/process is bound to.
type Binding struct {
	SessionID string    `json:"sessionId"`
	BoundAt   time.Time `json:"boundAt"`
}
