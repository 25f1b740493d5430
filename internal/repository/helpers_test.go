package repository_test

import (
	"context"
	"testing"
	"time"

	"catalog-backend/internal/config"
	"catalog-backend/internal/database"
	"catalog-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.Open(sqlite.Open("file::memory:?_foreign_keys=on"), config.DatabaseConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		QueryTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCategory(t *testing.T, db *database.Database, name string, active bool) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, IsActive: active}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

func seedGenre(t *testing.T, db *database.Database, name string) *models.Genre {
	t.Helper()
	genre := &models.Genre{Name: name, IsActive: true}
	if err := db.Omit("Categories").Create(genre).Error; err != nil {
		t.Fatalf("seed genre: %v", err)
	}
	return genre
}

func seedVideo(t *testing.T, db *database.Database, title string) *models.Video {
	t.Helper()
	video := &models.Video{
		Title:          title,
		Description:    "description",
		Duration:       90,
		Classification: "L",
		ReleaseAt:      datatypes.Date(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)),
	}
	if err := db.Omit("Categories", "Genres", "CastMembers").Create(video).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return video
}

func countPivotRows(t *testing.T, db *database.Database, table, column string, parentID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := db.Table(table).Where(column+" = ?", parentID.String()).Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

var ctx = context.Background()
