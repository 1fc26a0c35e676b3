package store

import (
	"errors"

	"github.com/VidhyaSama/synchronyUseCase/pkg/domain"
)

// ErrNotFound signals that no record matched the given identifier.
var ErrNotFound = errors.New("record not found")

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)
}

// GalleryStore defines persistence operations for image blobs.
type GalleryStore interface {
	SaveImage(domain.GalleryImage) error
	// ListImagesByOwner returns metadata only; byte payloads are not loaded.
	ListImagesByOwner(ownerID string) ([]domain.GalleryImage, error)
	GetImage(id string) (domain.GalleryImage, bool, error)
	// DeleteImage returns ErrNotFound when no row matched the id.
	DeleteImage(id string) error
}
