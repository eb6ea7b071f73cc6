package repository

import (
	"context"
	"errors"
	"time"

	"selam/internal/models"

	"gorm.io/gorm"
)

// gormStorage is the durable backend. Every call maps onto one statement or
// one transaction against the relational schema.
type gormStorage struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStorage returns the durable Storage over db. db must be migrated.
func NewGormStorage(db *gorm.DB) Storage {
	return &gormStorage{db: db, now: time.Now}
}

func (s *gormStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStorage) isPostgres() bool {
	return s.db.Dialector.Name() == "postgres"
}

// first loads one row into dest, mapping "no row" to found=false.
func first(q *gorm.DB, dest any) (bool, error) {
	err := q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *gormStorage) exists(tx *gorm.DB, model any, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return s.findUser(ctx, "id = ?", id)
}

func (s *gormStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(ctx, "username = ?", username)
}

func (s *gormStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *gormStorage) findUser(ctx context.Context, cond string, arg any) (*models.User, error) {
	var user models.User
	found, err := first(s.db.WithContext(ctx).Where(cond, arg), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (s *gormStorage) CreateUser(ctx context.Context, in models.CreateUserInput) (*models.User, error) {
	user := models.NewUser(in, s.now())
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return user, nil
}

func (s *gormStorage) UpdateUser(ctx context.Context, id string, in models.UpdateUserInput) (*models.User, error) {
	if !validID(id) {
		return nil, nil
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := in.Columns()
		cols["updated_at"] = s.now()

		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var updated models.User
		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			return err
		}
		user = &updated
		return nil
	})
	if err != nil {
		return nil, translateError(err, "user")
	}
	return user, nil
}
