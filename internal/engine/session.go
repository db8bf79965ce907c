package engine

import (
	"sync"

	"github.com/google/uuid"

	"medrating/internal/dto"
)

// State is the conversation position within one of the linear flows. Idle
// means no flow is active; browsing never stores a state.
type State int

const (
	StateIdle State = iota

	// Registration
	StateConsent
	StateFullName
	StateCity
	StatePhone
	StateConfirm

	// Review
	StateRating
	StateReviewText

	// Support
	StateSubject
	StateMessage
)

// Scratch accumulates partially collected form fields for the active flow.
type Scratch struct {
	// Registration
	FullName string
	Cities   []dto.GeoPositionView
	CityID   *uuid.UUID
	CityName string
	Phone    *string

	// Review
	AuthorID uuid.UUID
	DoctorID uuid.UUID
	Rating   int

	// Support
	Subject string

	// Browsing context for back-navigation. CategoryID is set when the
	// doctor list was entered through a category; RankedDoctors when it was
	// entered through the rating leaderboard.
	CategoryID    *uuid.UUID
	RankedDoctors bool
}

type Session struct {
	State   State
	Scratch Scratch
}

// SessionStore keeps per-user conversation contexts in process memory.
// Events for one user are serialized by the gateway, but different users'
// events may be handled concurrently, so access is guarded.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Get returns the user's session, creating an idle one on first touch.
func (s *SessionStore) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{State: StateIdle}
		s.sessions[userID] = sess
	}
	return sess
}

// Clear drops the user's conversation context entirely.
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
