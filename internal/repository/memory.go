package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"selam/internal/models"
)

// record holds one stored row.
type record[T any] struct {
	row T
}

// memoryStorage is the ephemeral backend. A single RWMutex guards every map;
// each mutation, including the read-modify-write of toggles and cascades,
// runs under the write lock. Rows are copied in and out so callers never
// share state with the store.
type memoryStorage struct {
	mu  sync.RWMutex
	now func() time.Time

	users       map[string]*record[models.User]
	posts       map[string]*record[models.Post]
	duas        map[string]*record[models.DuaRequest]
	comments    map[string]*record[models.Comment]
	likes       map[string]models.Like
	bookmarks   map[string]models.Bookmark
	communities map[string]*record[models.Community]
	members     map[string]models.CommunityMember
	events      map[string]*record[models.Event]
	attendees   map[string]models.EventAttendee
}

// NewMemoryStorage returns an empty ephemeral Storage.
func NewMemoryStorage() Storage {
	return newMemoryStorage(time.Now)
}

func newMemoryStorage(now func() time.Time) *memoryStorage {
	return &memoryStorage{
		now:         now,
		users:       make(map[string]*record[models.User]),
		posts:       make(map[string]*record[models.Post]),
		duas:        make(map[string]*record[models.DuaRequest]),
		comments:    make(map[string]*record[models.Comment]),
		likes:       make(map[string]models.Like),
		bookmarks:   make(map[string]models.Bookmark),
		communities: make(map[string]*record[models.Community]),
		members:     make(map[string]models.CommunityMember),
		events:      make(map[string]*record[models.Event]),
		attendees:   make(map[string]models.EventAttendee),
	}
}

func (m *memoryStorage) Ping(context.Context) error { return nil }

func pairKey(a, b string) string { return a + ":" + b }

// newestFirst orders records by created_at, then id, descending; the
// durable backend sorts the same way.
func newestFirst[T any](recs []*record[T], key func(*T) (time.Time, string)) {
	sort.Slice(recs, func(i, j int) bool {
		ti, idi := key(&recs[i].row)
		tj, idj := key(&recs[j].row)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
}

func page[T any](rows []*T, limit, offset int) []*T {
	if offset >= len(rows) {
		return []*T{}
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// author returns a copy of the user row, nil when it does not exist.
func (m *memoryStorage) author(id string) *models.User {
	rec, ok := m.users[id]
	if !ok {
		return nil
	}
	u := rec.row
	return &u
}

func (m *memoryStorage) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.author(id), nil
}

func (m *memoryStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findUser(func(u *models.User) bool { return u.Username == username }), nil
}

func (m *memoryStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findUser(func(u *models.User) bool { return u.Email == email }), nil
}

func (m *memoryStorage) findUser(match func(*models.User) bool) *models.User {
	for _, rec := range m.users {
		if match(&rec.row) {
			u := rec.row
			return &u
		}
	}
	return nil
}

func (m *memoryStorage) CreateUser(_ context.Context, in models.CreateUserInput) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findUser(func(u *models.User) bool { return u.Email == in.Email }) != nil {
		return nil, models.NewConflictError("user already exists", nil)
	}
	if m.findUser(func(u *models.User) bool { return u.Username == in.Username }) != nil {
		return nil, models.NewConflictError("user already exists", nil)
	}

	user := models.NewUser(in, m.now())
	m.users[user.ID] = &record[models.User]{row: *user}
	return user, nil
}

func (m *memoryStorage) UpdateUser(_ context.Context, id string, in models.UpdateUserInput) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if in.Username != nil && *in.Username != rec.row.Username {
		taken := m.findUser(func(u *models.User) bool { return u.Username == *in.Username })
		if taken != nil {
			return nil, models.NewConflictError("user already exists", nil)
		}
	}

	updated := rec.row
	in.Apply(&updated)
	updated.UpdatedAt = m.now()
	rec.row = updated
	return &updated, nil
}
