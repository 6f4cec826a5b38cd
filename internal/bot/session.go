package bot

import (
	"sync"

	"github.com/mkl159/StockToPlate/pkg/models"
)

// Registry owns the live conversation sessions, keyed by chat id. Each
// session belongs to exactly one chat; the registry only guards the map
// itself against concurrent chats.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*models.Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*models.Session)}
}

// Get returns the session for chatID, or nil when the chat has none.
func (r *Registry) Get(chatID int64) *models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[chatID]
}

// Start replaces any existing session of chatID with a fresh one.
func (r *Registry) Start(chatID int64, state models.State) *models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &models.Session{State: state}
	r.sessions[chatID] = s
	return s
}

// End drops the chat's session; the conversation is over.
func (r *Registry) End(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
}
