package database

import "sync"

// Accounts tracks which users linked their remote X account and the
// bearer token to post with. Session state only, never persisted.
type Accounts struct {
	mu     sync.Mutex
	tokens map[string]string
}

// NewAccounts returns an empty account registry.
func NewAccounts() *Accounts {
	return &Accounts{tokens: make(map[string]string)}
}

// Connect stores the remote token for a user.
func (a *Accounts) Connect(vanity string, token string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tokens[vanity] = token
}

// Disconnect forgets the user's remote token.
func (a *Accounts) Disconnect(vanity string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.tokens, vanity)
}

// Token returns the stored token and whether the account is linked.
func (a *Accounts) Token(vanity string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	token, ok := a.tokens[vanity]

	return token, ok
}
