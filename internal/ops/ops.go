// Package ops implements the application operations: tracker and task
// CRUD, dashboard and detail views, habit calendars, settings, backup
// export/import, and AI suggestions. Every operation takes a *Session
// and an input struct and returns an output struct, so the CLI, MCP,
// and web surfaces share one code path.
package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fantrack/fantrack/internal/config"
	"github.com/fantrack/fantrack/internal/store"
	"github.com/fantrack/fantrack/internal/suggest"
	"github.com/fantrack/fantrack/internal/tracker"
)

// Session holds the live application state. The tracker collection and
// settings are authoritative in memory; every mutation persists through
// the store on a best-effort basis. A Session is not safe for concurrent
// use; each surface serializes access to it.
type Session struct {
	Store    *store.Store
	Cfg      *config.Config
	Suggest  suggest.Client
	Trackers []tracker.Tracker
	Settings tracker.AppSettings

	staged  *StagedImport
	pending *PendingAction
}

// NewSession loads persisted state into a fresh session. A nil store
// yields an empty session that simply never persists.
func NewSession(st *store.Store, cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Session{
		Store:    st,
		Cfg:      cfg,
		Trackers: st.LoadTrackers(),
		Settings: st.LoadSettings(),
	}
}

// persistTrackers saves the tracker collection. Store errors are logged
// inside the store and never surface here.
func (s *Session) persistTrackers() {
	s.Store.SaveTrackers(s.Trackers)
}

// persistSettings saves the settings document.
func (s *Session) persistSettings() {
	s.Store.SaveSettings(s.Settings)
}

// findTracker returns the tracker with the given id.
func (s *Session) findTracker(id string) (tracker.Tracker, bool) {
	return tracker.Find(s.Trackers, id)
}

// entropy is shared so ids minted within the same millisecond still
// increase monotonically.
var entropy = ulid.Monotonic(rand.Reader, 0)

// newID generates a new ULID. IDs are lexicographically ordered by
// creation time, so sorting by id doubles as sorting by creation order.
func newID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// nowMillis returns the current time in epoch milliseconds, the unit
// used for tracker creation timestamps.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// cleanText trims surrounding whitespace from user-entered text.
func cleanText(s string) string {
	return strings.TrimSpace(s)
}
