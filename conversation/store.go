// Package conversation holds the in-memory message list a chat widget renders.
package conversation

import (
	"sync"

	"github.com/08Ankit28/AI-Guru/models"
)

// Store is an ordered, append-only list of messages. It lives as long as the
// process (or the websocket connection that owns it) and is never persisted.
type Store struct {
	mu       sync.RWMutex
	messages []models.Message
}

// NewStore creates a store seeded with the given messages
func NewStore(seed ...models.Message) *Store {
	messages := make([]models.Message, 0, len(seed)+8)
	messages = append(messages, seed...)
	return &Store{messages: messages}
}

// Append adds a message to the end of the conversation
func (s *Store) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
}

// Messages returns a copy of every message in insertion order
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Tail returns a copy of the last n messages.
func (s *Store) Tail(n int) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []models.Message{}
	}
	msgs := s.messages
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Len returns the number of messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
