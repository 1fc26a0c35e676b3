package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VidhyaSama/synchronyUseCase/internal/store"
	"github.com/VidhyaSama/synchronyUseCase/internal/usertoken"
	"github.com/VidhyaSama/synchronyUseCase/pkg/auth"
	"github.com/VidhyaSama/synchronyUseCase/pkg/domain"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL string
	TokenSecret string
	TokenTTL    time.Duration

	// Users and Gallery override the default GORM stores (tests).
	Users   store.UserStore
	Gallery store.GalleryStore
}

// App orchestrates registration, login, and gallery operations against
// the credential and gallery stores.
type App struct {
	users   store.UserStore
	gallery store.GalleryStore
	tokens  *usertoken.Codec
}

// New constructs the application with database storage and the token codec.
func New(cfg Config) (*App, error) {
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return nil, fmt.Errorf("token secret required")
	}

	users := cfg.Users
	gallery := cfg.Gallery
	if users == nil || gallery == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		gormStore, err := store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		if users == nil {
			users = gormStore
		}
		if gallery == nil {
			gallery = gormStore
		}
	}

	return &App{
		users:   users,
		gallery: gallery,
		tokens:  usertoken.New(cfg.TokenSecret, cfg.TokenTTL),
	}, nil
}

// Tokens exposes the token codec for the HTTP layer's auth gate.
func (a *App) Tokens() *usertoken.Codec {
	return a.tokens
}

// Register creates a new account and returns a token for the new identity.
func (a *App) Register(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := auth.ValidateEmail(email); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := auth.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	exists, err := a.users.HasUserEmail(email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", ErrAlreadyExists
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.users.SaveUser(user); err != nil {
		return "", fmt.Errorf("save user: %w", err)
	}
	return a.tokens.Issue(user.Email)
}

// Login validates the email+password pair and returns a token.
// Any mismatch surfaces as ErrNotFound, matching the registration surface.
func (a *App) Login(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, ok, err := a.users.GetUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return a.tokens.Issue(user.Email)
}

// UserFromToken resolves a bearer token to a stored user. A token whose
// subject no longer resolves is treated as invalid.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	subject, err := a.tokens.VerifySubject(token)
	if err != nil {
		return domain.User{}, false
	}
	user, found, err := a.users.GetUserByEmail(subject)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// UploadImage stores a new gallery item owned by the caller. A store write
// failure is reported as false rather than an error; the caller maps it to
// a server error response.
func (a *App) UploadImage(callerEmail, fileName string, image []byte) (bool, error) {
	if len(image) == 0 {
		return false, ErrEmptyImage
	}
	user, ok, err := a.users.GetUserByEmail(callerEmail)
	if err != nil {
		return false, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return false, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	item := domain.GalleryImage{
		ID:        uuid.NewString(),
		OwnerID:   user.ID,
		FileName:  fileName,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.gallery.SaveImage(item); err != nil {
		slog.Error("save gallery image", "err", err, "owner_id", user.ID)
		return false, nil
	}
	return true, nil
}

// ListImages returns the caller's gallery grouped by owning user:
// user id, email, and per item its id and file name. No byte payloads.
func (a *App) ListImages(callerEmail string) ([]domain.UserImages, error) {
	user, ok, err := a.users.GetUserByEmail(callerEmail)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	items, err := a.gallery.ListImagesByOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	entries := make([]domain.ImageEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, domain.ImageEntry{
			GalleryID: item.ID,
			FileName:  item.FileName,
		})
	}
	return []domain.UserImages{{
		UserID:    user.ID,
		Email:     user.Email,
		ImageData: entries,
	}}, nil
}

// GetImage returns the stored bytes for a gallery id.
func (a *App) GetImage(id string) ([]byte, error) {
	item, ok, err := a.gallery.GetImage(id)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no record found with id %s", ErrNotFound, id)
	}
	return item.Image, nil
}

// DeleteImage removes a gallery record. Any failure, including a missing
// row, is reported as ErrNotFound.
func (a *App) DeleteImage(id string) error {
	if err := a.gallery.DeleteImage(id); err != nil {
		return fmt.Errorf("%w: no record found with id %s", ErrNotFound, id)
	}
	return nil
}
