package database

import "selam/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM
// models, parents before children.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.Post{},
		&models.DuaRequest{},
		&models.Like{},
		&models.Comment{},
		&models.Bookmark{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Event{},
		&models.EventAttendee{},
	}
}
