package repository

import (
	"context"
	"fmt"

	"forum/internal/models"

	"gorm.io/gorm"
)

// PostRepository persists posts. Deleting a post removes its comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByGroup(ctx context.Context, groupID uint) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	DeleteWithComments(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Comments").Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

// ListByGroup returns the group's posts newest first, each with its author
// and its comments oldest first.
func (r *postRepository) ListByGroup(ctx context.Context, groupID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc").Order("id asc")
		}).
		Preload("Comments.Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Where("group_id = ?", groupID).
		Order("created_at desc").
		Order("id desc").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts of group %d: %w", groupID, err)
	}
	return posts, nil
}

// Update writes title and content only.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Model(post).Select("Title", "Content", "UpdatedAt").Updates(post).Error; err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	return nil
}

func (r *postRepository) DeleteWithComments(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}
