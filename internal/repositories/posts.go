package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/blogd/internal/models"
	"gorm.io/gorm"
)

// PostRepository is the typed gateway to the posts collection.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// ByID loads a post by id, optionally populating its creator.
// Returns gorm.ErrRecordNotFound if absent.
func (r *PostRepository) ByID(id uuid.UUID, withCreator bool) (*models.Post, error) {
	q := r.db
	if withCreator {
		q = q.Preload("Creator")
	}
	var post models.Post
	if err := q.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Page returns one page of posts, newest first, with creators populated.
func (r *PostRepository) Page(page, perPage int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Creator").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).Count(&total).Error
	return total, err
}

func (r *PostRepository) Save(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete removes the post and updates its owner in one transaction, so a
// failure leaves both rows untouched.
func (r *PostRepository) Delete(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Post{}, "id = ?", post.ID).Error; err != nil {
			return err
		}
		// The owner's post set is derived from creator_id, so removing the row
		// removes the reference; bump the owner so its updated_at tracks the
		// collection change.
		return tx.Model(&models.User{}).
			Where("id = ?", post.CreatorID).
			Update("updated_at", time.Now()).Error
	})
}
