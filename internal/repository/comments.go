package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/yatube/backend/internal/models"
)

type commentRepository struct {
	db *gorm.DB
}

func (r *commentRepository) FindByPost(ctx context.Context, postID int, page Page) ([]models.Comment, int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err = r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Preload("Author").
		Scopes(paginate(page)).
		Order("created, id").
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, count, nil
}

func (r *commentRepository) FindByID(ctx context.Context, postID, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Preload("Author").
		First(&comment, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Post").Create(comment).Error; err != nil {
		return translate(err)
	}
	return translate(r.db.WithContext(ctx).First(&comment.Author, comment.AuthorID).Error)
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.Comment{ID: comment.ID}).
		Update("text", comment.Text).Error)
}

func (r *commentRepository) Delete(ctx context.Context, id int) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error)
}
