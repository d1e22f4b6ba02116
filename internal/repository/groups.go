package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/yatube/backend/internal/models"
)

type groupRepository struct {
	db *gorm.DB
}

func (r *groupRepository) List(ctx context.Context, page Page) ([]models.Group, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Group{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var groups []models.Group
	if err := r.db.WithContext(ctx).Scopes(paginate(page)).Order("id").Find(&groups).Error; err != nil {
		return nil, 0, err
	}
	return groups, count, nil
}

func (r *groupRepository) FindByID(ctx context.Context, id int) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	return translate(r.db.WithContext(ctx).Create(group).Error)
}
