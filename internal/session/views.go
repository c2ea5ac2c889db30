package session

import "github.com/taskwarden/warden/internal/model"

// List returns every known session (read-only view).
func List(sessions []*model.Session) []*model.Session { return sessions }

// Show returns the session with the given id, or nil.
func Show(sessions []*model.Session, id string) *model.Session {
	for _, s := range sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Status summarizes a session for the `session status` view.
type Status struct {
	ID           string
	SessionStatus model.SessionStatus
	Scope        model.Scope
	CurrentTask  string
	ScopeSize    int
}

// Info builds the Status view for a session.
func Info(s *model.Session, scopeIDs []string) Status {
	return Status{
		ID:            s.ID,
		SessionStatus: s.Status,
		Scope:         s.Scope,
		CurrentTask:   s.Focus.CurrentTask,
		ScopeSize:     len(scopeIDs),
	}
}
