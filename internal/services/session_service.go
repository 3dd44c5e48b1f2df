package services

import (
	"sync"

	"github.com/frazakram/gym/internal/models"
)

const (
	ProviderAnthropic = "Anthropic"
	ProviderOpenAI    = "OpenAI"
)

func knownProvider(name string) bool {
	return name == ProviderAnthropic || name == ProviderOpenAI
}

// sessionState is one user's ephemeral state: the selected backend, API keys
// entered for this session and the last generated plan. None of it is ever
// written to storage.
type sessionState struct {
	provider string
	keys     map[string]string
	lastPlan *models.GeneratedPlan
}

// SessionService keeps per-user session state in process memory. Entries are
// created on login (or lazily on first authenticated use after a restart) and
// dropped on logout; there is no cross-user visibility.
type SessionService struct {
	mu          sync.RWMutex
	sessions    map[int64]*sessionState
	defaultKeys map[string]string
}

// NewSessionService takes the process-wide default API keys from config,
// keyed by provider name. A session key set by the user overrides the default
// for that user only.
func NewSessionService(defaultKeys map[string]string) *SessionService {
	keys := make(map[string]string, len(defaultKeys))
	for provider, key := range defaultKeys {
		if knownProvider(provider) && key != "" {
			keys[provider] = key
		}
	}
	return &SessionService{
		sessions:    make(map[int64]*sessionState),
		defaultKeys: keys,
	}
}

func (s *SessionService) Start(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(userID)
}

// End discards all session state for the user, including entered API keys
// and the last generated plan.
func (s *SessionService) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// SetProvider selects the model backend for the user's session and, when key
// is nonempty, attaches a session-scoped API key for it.
func (s *SessionService) SetProvider(userID int64, provider, key string) error {
	if !knownProvider(provider) {
		return ErrUnknownProvider
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.getOrCreateLocked(userID)
	state.provider = provider
	if key != "" {
		state.keys[provider] = key
	}
	return nil
}

// SelectedProvider returns the backend chosen for the session, defaulting to
// Anthropic when the user never picked one.
func (s *SessionService) SelectedProvider(userID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.sessions[userID]; ok && state.provider != "" {
		return state.provider
	}
	return ProviderAnthropic
}

// ResolveKey returns the API key to use for the provider: the session key if
// the user entered one, else the configured default, else "".
func (s *SessionService) ResolveKey(userID int64, provider string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.sessions[userID]; ok {
		if key := state.keys[provider]; key != "" {
			return key
		}
	}
	return s.defaultKeys[provider]
}

// KeyAvailability reports, per provider, whether a key is usable for the
// session. Key material itself is never exposed.
func (s *SessionService) KeyAvailability(userID int64) map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	available := map[string]bool{
		ProviderAnthropic: s.defaultKeys[ProviderAnthropic] != "",
		ProviderOpenAI:    s.defaultKeys[ProviderOpenAI] != "",
	}
	if state, ok := s.sessions[userID]; ok {
		for provider, key := range state.keys {
			if key != "" {
				available[provider] = true
			}
		}
	}
	return available
}

// SetLastPlan replaces the session's last generated plan; prior plans are
// not kept.
func (s *SessionService) SetLastPlan(userID int64, plan *models.GeneratedPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(userID).lastPlan = plan
}

func (s *SessionService) LastPlan(userID int64) *models.GeneratedPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.sessions[userID]; ok {
		return state.lastPlan
	}
	return nil
}

func (s *SessionService) getOrCreateLocked(userID int64) *sessionState {
	state, ok := s.sessions[userID]
	if !ok {
		state = &sessionState{keys: make(map[string]string)}
		s.sessions[userID] = state
	}
	return state
}
