package domain

import "time"

// User is an account identified by a unique email address.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GalleryImage is one stored image blob owned by exactly one user.
// The byte payload is never serialized; downloads write it raw.
type GalleryImage struct {
	ID        string    `json:"galleryId"`
	OwnerID   string    `json:"-"`
	FileName  string    `json:"fileName"`
	Image     []byte    `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// ImageEntry is one row of a gallery listing: metadata only, no bytes.
type ImageEntry struct {
	GalleryID string `json:"galleryId"`
	FileName  string `json:"fileName"`
}

// UserImages groups a user's gallery entries under the owning user.
type UserImages struct {
	UserID    string       `json:"userId"`
	Email     string       `json:"email"`
	ImageData []ImageEntry `json:"imageData"`
}
