package store

import (
	"sync"

	"github.com/VidhyaSama/synchronyUseCase/pkg/domain"
)

// MemoryStore keeps users and gallery rows in-process. Used by tests and
// local runs without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]domain.User         // key: user ID
	email  map[string]string              // email -> user ID
	images map[string]domain.GalleryImage // key: gallery ID
	order  []string                       // gallery insertion order
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]domain.User),
		email:  make(map[string]string),
		images: make(map[string]domain.GalleryImage),
	}
}

// SaveUser registers a user.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

// HasUserEmail checks if email exists.
func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.email[email]; ok {
		u, exists := m.users[id]
		return u, exists, nil
	}
	return domain.User{}, false, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// SaveImage stores a gallery row and tracks insertion order.
func (m *MemoryStore) SaveImage(img domain.GalleryImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.images[img.ID]; !exists {
		m.order = append(m.order, img.ID)
	}
	m.images[img.ID] = img
	return nil
}

// ListImagesByOwner returns gallery metadata in insertion order, bytes omitted.
func (m *MemoryStore) ListImagesByOwner(ownerID string) ([]domain.GalleryImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.GalleryImage, 0, len(m.order))
	for _, id := range m.order {
		img, ok := m.images[id]
		if !ok || img.OwnerID != ownerID {
			continue
		}
		img.Image = nil
		res = append(res, img)
	}
	return res, nil
}

// GetImage retrieves a gallery row by ID.
func (m *MemoryStore) GetImage(id string) (domain.GalleryImage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	img, ok := m.images[id]
	return img, ok, nil
}

// DeleteImage removes a gallery row; missing ids surface as ErrNotFound.
func (m *MemoryStore) DeleteImage(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.images[id]; !ok {
		return ErrNotFound
	}
	delete(m.images, id)
	filtered := m.order[:0]
	for _, item := range m.order {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.order = filtered
	return nil
}
