package core

import (
	"strings"
	"sync"
)

// TokenStore holds the current push-routing tokens, one slot per kind. The
// platform may invalidate a token at any moment; readers must treat an absent
// token as "not registered yet or revoked", not as an error.
type TokenStore struct {
	mu     sync.RWMutex
	values map[TokenKind]string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{values: make(map[TokenKind]string)}
}

func (s *TokenStore) Set(kind TokenKind, value string) {
	if s == nil {
		return
	}
	value = strings.TrimSpace(value)
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, kind)
		return
	}
	s.values[kind] = value
}

// Invalidate drops the token for kind. Invalidating an absent token is a
// no-op.
func (s *TokenStore) Invalidate(kind TokenKind) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.values, kind)
	s.mu.Unlock()
}

func (s *TokenStore) Get(kind TokenKind) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[kind]
	return value, ok
}
