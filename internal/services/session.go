package services

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cardsheet/cardsheet-backend/internal/models"
)

const (
	// DefaultSessionTTL is the retention window for an uploaded batch.
	DefaultSessionTTL = 30 * time.Minute

	cleanupInterval = 5 * time.Minute
)

// SessionManager holds every uploaded batch in memory, keyed by an opaque
// identifier. Sessions are written once at upload and read-only afterwards,
// so a single RWMutex around the map is all the coordination needed.
// Expired sessions are evicted by a background ticker; eviction also removes
// the session's generated workbook from disk.
type SessionManager struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
	ttl      time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionManager creates a manager and starts its cleanup routine.
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	sm := &SessionManager{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go sm.cleanupExpiredSessions()

	return sm
}

// Create registers a freshly parsed upload under a new opaque id.
func (sm *SessionManager) Create(filename string, contacts []models.FlattenedContact, catalog *models.FieldCatalog, skipped int) *models.Session {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		Filename:  filename,
		Contacts:  contacts,
		Catalog:   catalog,
		Skipped:   skipped,
		CreatedAt: now,
		ExpiresAt: now.Add(sm.ttl),
	}

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	log.Printf("Session %s created for %q (%d contacts, %d skipped)", session.ID, filename, len(contacts), skipped)
	return session
}

// Get retrieves a session, failing with ErrSessionNotFound when the id is
// unknown or the session has passed its retention window.
func (sm *SessionManager) Get(id string) (*models.Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[id]
	if !exists || time.Now().After(session.ExpiresAt) {
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}

// AttachWorkbook records the generated spreadsheet as owned by the session,
// so eviction can clean it up.
func (sm *SessionManager) AttachWorkbook(id, filename, path string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[id]
	if !exists {
		return models.ErrSessionNotFound
	}
	session.ExcelFilename = filename
	session.ExcelPath = path
	return nil
}

// Evict removes a session immediately, deleting its workbook if one was
// generated.
func (sm *SessionManager) Evict(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if session, exists := sm.sessions[id]; exists {
		sm.removeLocked(id, session)
		log.Printf("Session %s evicted", id)
	}
}

// ActiveCount returns the number of unexpired sessions (for monitoring).
func (sm *SessionManager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	count := 0
	now := time.Now()
	for _, session := range sm.sessions {
		if now.Before(session.ExpiresAt) {
			count++
		}
	}
	return count
}

// Stop terminates the cleanup routine. Safe to call more than once.
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() { close(sm.stop) })
}

// removeLocked deletes the session and its artifact. Caller holds mu.
func (sm *SessionManager) removeLocked(id string, session *models.Session) {
	delete(sm.sessions, id)
	if session.ExcelPath != "" {
		if err := os.Remove(session.ExcelPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove workbook for session %s: %v", id, err)
		}
	}
}

// cleanupExpiredSessions runs periodically to evict sessions past their
// retention window.
func (sm *SessionManager) cleanupExpiredSessions() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sm.stop:
			return
		case <-ticker.C:
			sm.mu.Lock()
			now := time.Now()
			for id, session := range sm.sessions {
				if now.After(session.ExpiresAt) {
					sm.removeLocked(id, session)
					log.Printf("Cleaned up expired session %s", id)
				}
			}
			sm.mu.Unlock()
		}
	}
}
