package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"selam/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestGormStorage_SQLite(t *testing.T) {
	runStorageContract(t, func(t *testing.T, now func() time.Time) Storage {
		return &gormStorage{db: openTestSQLite(t), now: now}
	})
}
