package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/yatube/backend/internal/models"
)

type postRepository struct {
	db *gorm.DB
}

func (r *postRepository) List(ctx context.Context, page Page) ([]models.Post, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Scopes(paginate(page)).
		Order("pub_date desc, id desc").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *postRepository) FindByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Group").Create(post).Error; err != nil {
		return translate(err)
	}
	return translate(r.db.WithContext(ctx).First(&post.Author, post.AuthorID).Error)
}

// Update writes the mutable columns only; author and pub_date never change.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error)
}

func (r *postRepository) Delete(ctx context.Context, id int) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Post{}, id).Error)
}
