package session

import (
	"time"

	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/paths"
	"github.com/taskwarden/warden/internal/store"
)

// Bind writes the binding file pointing the current terminal/process at sessionID.
func Bind(p *paths.Paths, sessionID string, now time.Time) error {
	b := model.Binding{SessionID: sessionID, BoundAt: now}
	return store.SaveJSON(p.Binding(), b, store.SaveOptions{Now: now})
}

// CurrentBinding reads the binding file, returning a zero Binding (not an
// error) if the current terminal/process has never bound a session.
func CurrentBinding(p *paths.Paths) (model.Binding, error) {
	var b model.Binding
	err := store.LoadJSON(p.Binding(), &b)
	if core, ok := err.(*model.CoreError); ok && core.Kind == model.KindInput {
		return model.Binding{}, nil
	}
	return b, err
}

// Switch updates the binding file only, per spec.md §4.8's switch(sessionId).
func Switch(p *paths.Paths, sessionID string, now time.Time) error {
	return Bind(p, sessionID, now)
}
