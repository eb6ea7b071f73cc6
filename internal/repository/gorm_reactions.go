package repository

import (
	"context"

	"selam/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *gormStorage) ToggleLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	return s.toggle(ctx, &models.Like{}, models.NewLike(userID, target, s.now()), userID, target, "like")
}

func (s *gormStorage) GetUserLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	return s.hasReaction(ctx, &models.Like{}, userID, target)
}

func (s *gormStorage) ToggleBookmark(ctx context.Context, userID string, target models.Target) (bool, error) {
	return s.toggle(ctx, &models.Bookmark{}, models.NewBookmark(userID, target, s.now()), userID, target, "bookmark")
}

func (s *gormStorage) GetUserBookmark(ctx context.Context, userID string, target models.Target) (bool, error) {
	return s.hasReaction(ctx, &models.Bookmark{}, userID, target)
}

// toggle deletes the (user, target) row of model's table and, when there was
// none, inserts row. Both run in one transaction and the insert yields to a
// concurrent insert through the composite unique index, so a pair never has
// two rows.
func (s *gormStorage) toggle(ctx context.Context, model, row any, userID string, target models.Target, what string) (bool, error) {
	if err := requireTarget(target); err != nil {
		return false, err
	}
	if !validID(userID) {
		return false, models.NewNotFoundError("User", userID)
	}

	var on bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND "+target.Column()+" = ?", userID, target.ID()).Delete(model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			on = false
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
			return err
		}
		on = true
		return nil
	})
	if err != nil {
		return false, translateError(err, what)
	}
	return on, nil
}

func (s *gormStorage) hasReaction(ctx context.Context, model any, userID string, target models.Target) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if !validID(userID) || !validID(target.ID()) {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND "+target.Column()+" = ?", userID, target.ID()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
