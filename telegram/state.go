package telegram

import "sync"

// Phase tracks where a chat is in the two-step submission flow.
type Phase int

const (
	// PhaseIdle means no submission is in progress.
	PhaseIdle Phase = iota
	// PhaseAwaitingTitle means the bot asked for a title.
	PhaseAwaitingTitle
	// PhaseAwaitingBody means the title was received and the bot is
	// waiting for the body text.
	PhaseAwaitingBody
)

type chatState struct {
	Phase Phase
	Title string
}

// StateStore keeps the per-chat conversation state. Safe for concurrent
// use; webhook handlers and the poll loop share one store.
type StateStore struct {
	mu     sync.Mutex
	states map[int64]chatState
}

func NewStateStore() *StateStore {
	return &StateStore{states: map[int64]chatState{}}
}

// Get returns the current phase and pending title for a chat.
func (s *StateStore) Get(chatID int64) (Phase, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.states[chatID]
	return st.Phase, st.Title
}

// AwaitTitle starts a new submission, discarding any pending one.
func (s *StateStore) AwaitTitle(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = chatState{Phase: PhaseAwaitingTitle}
}

// AwaitBody records the received title and moves to the body step.
func (s *StateStore) AwaitBody(chatID int64, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = chatState{Phase: PhaseAwaitingBody, Title: title}
}

// Reset returns a chat to the idle phase.
func (s *StateStore) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}
