package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/emilythestrangee/yatube/backend/internal/models"
)

type followRepository struct {
	db *gorm.DB
}

func (r *followRepository) scoped(ctx context.Context, userID int, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follows.user_id = ?", userID)
	if search != "" {
		q = q.Joins("JOIN users AS followed ON followed.id = follows.following_id").
			Where("followed.username ILIKE ?", "%"+escapeLike(search)+"%")
	}
	return q
}

func (r *followRepository) FindByUser(ctx context.Context, userID int, search string, page Page) ([]models.Follow, int64, error) {
	var count int64
	if err := r.scoped(ctx, userID, search).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var follows []models.Follow
	err := r.scoped(ctx, userID, search).
		Preload("User").
		Preload("Following").
		Scopes(paginate(page)).
		Order("follows.id").
		Find(&follows).Error
	if err != nil {
		return nil, 0, err
	}
	return follows, count, nil
}

func (r *followRepository) FindByID(ctx context.Context, userID, id int) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Following").
		First(&follow, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &follow, nil
}

func (r *followRepository) Exists(ctx context.Context, userID, followingID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Omit("User", "Following").Create(follow).Error; err != nil {
		return translate(err)
	}
	return translate(r.db.WithContext(ctx).Preload("User").Preload("Following").First(follow, follow.ID).Error)
}

func (r *followRepository) Delete(ctx context.Context, id int) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Follow{}, id).Error)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
