package repository

import (
	"context"

	"selam/internal/models"
)

func (m *memoryStorage) ToggleLike(_ context.Context, userID string, target models.Target) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireReactionRefs(userID, target); err != nil {
		return false, err
	}
	key := target.Key(userID)
	if _, ok := m.likes[key]; ok {
		delete(m.likes, key)
		return false, nil
	}
	m.likes[key] = *models.NewLike(userID, target, m.now())
	return true, nil
}

func (m *memoryStorage) GetUserLike(_ context.Context, userID string, target models.Target) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.likes[target.Key(userID)]
	return ok, nil
}

func (m *memoryStorage) ToggleBookmark(_ context.Context, userID string, target models.Target) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireReactionRefs(userID, target); err != nil {
		return false, err
	}
	key := target.Key(userID)
	if _, ok := m.bookmarks[key]; ok {
		delete(m.bookmarks, key)
		return false, nil
	}
	m.bookmarks[key] = *models.NewBookmark(userID, target, m.now())
	return true, nil
}

func (m *memoryStorage) GetUserBookmark(_ context.Context, userID string, target models.Target) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.bookmarks[target.Key(userID)]
	return ok, nil
}

func (m *memoryStorage) requireReactionRefs(userID string, target models.Target) error {
	if !m.targetExists(target) {
		return targetNotFound(target)
	}
	if _, ok := m.users[userID]; !ok {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}
