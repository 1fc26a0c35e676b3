package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/VidhyaSama/synchronyUseCase/pkg/domain"
)

// GormStore implements UserStore and GalleryStore using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &GalleryImageModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveUser inserts a user record.
func (s *GormStore) SaveUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Create(&model).Error
}

// HasUserEmail checks if email exists.
func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// SaveImage stores a gallery row with its byte payload.
func (s *GormStore) SaveImage(img domain.GalleryImage) error {
	model := imageToModel(img)
	return s.db.Create(&model).Error
}

// ListImagesByOwner returns the owner's gallery metadata ordered by created_at.
// The image column is deliberately not selected.
func (s *GormStore) ListImagesByOwner(ownerID string) ([]domain.GalleryImage, error) {
	var models []GalleryImageModel
	err := s.db.Select("id", "owner_id", "file_name", "created_at").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.GalleryImage, 0, len(models))
	for _, m := range models {
		res = append(res, imageFromModel(m))
	}
	return res, nil
}

// GetImage retrieves a gallery row including its bytes.
func (s *GormStore) GetImage(id string) (domain.GalleryImage, bool, error) {
	var model GalleryImageModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.GalleryImage{}, false, nil
		}
		return domain.GalleryImage{}, false, err
	}
	return imageFromModel(model), true, nil
}

// DeleteImage removes a gallery row; missing ids surface as ErrNotFound.
func (s *GormStore) DeleteImage(id string) error {
	tx := s.db.Delete(&GalleryImageModel{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func imageToModel(img domain.GalleryImage) GalleryImageModel {
	return GalleryImageModel{
		ID:        img.ID,
		OwnerID:   img.OwnerID,
		FileName:  img.FileName,
		Image:     img.Image,
		CreatedAt: img.CreatedAt,
	}
}

func imageFromModel(m GalleryImageModel) domain.GalleryImage {
	return domain.GalleryImage{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		FileName:  m.FileName,
		Image:     m.Image,
		CreatedAt: m.CreatedAt,
	}
}
