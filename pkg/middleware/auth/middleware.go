package auth

import (
	"crypto/rsa"
	"sync"
	"time"
)

type Middleware struct {
	cookieName string
	devBypass  bool
	devCaps    []string

	// Assertion verification
	assertIssuer   string
	assertAudience string
	assertLeeway   time.Duration

	// guarded by mu
	mu        sync.RWMutex
	assertKey *rsa.PublicKey
}

func (m *Middleware) getKey() *rsa.PublicKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assertKey
}

// SetAssertionKey installs the RS256 verification key. Provide loads it from
// env at startup; tests inject their own.
func (m *Middleware) SetAssertionKey(k *rsa.PublicKey) {
	m.mu.Lock()
	m.assertKey = k
	m.mu.Unlock()
}
