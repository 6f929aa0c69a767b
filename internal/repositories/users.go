package repositories

import (
	"github.com/google/uuid"
	"github.com/rohits-web03/blogd/internal/models"
	"gorm.io/gorm"
)

// UserRepository is the typed gateway to the users collection.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// ByID loads a user by id. Returns gorm.ErrRecordNotFound if absent.
func (r *UserRepository) ByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ByIDWithPosts loads a user and populates their owned posts.
func (r *UserRepository) ByIDWithPosts(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Posts").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ByEmail loads a user by email. Returns gorm.ErrRecordNotFound if absent.
func (r *UserRepository) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}
