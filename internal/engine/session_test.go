package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreGetCreatesIdleSession(t *testing.T) {
	store := NewSessionStore()

	sess := store.Get(1)
	assert.Equal(t, StateIdle, sess.State)

	// Same pointer on the second touch, mutations persist.
	sess.State = StateFullName
	assert.Equal(t, StateFullName, store.Get(1).State)
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore()
	store.Get(1).State = StateRating

	store.Clear(1)

	assert.Equal(t, StateIdle, store.Get(1).State)
}

func TestSessionStoreIsolatesUsers(t *testing.T) {
	store := NewSessionStore()
	store.Get(1).State = StateSubject

	assert.Equal(t, StateIdle, store.Get(2).State)
}
