package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/services"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

func newVideo(title string) *models.Video {
	return &models.Video{
		Title:          title,
		Description:    "description",
		Duration:       100,
		Classification: "12",
		ReleaseAt:      datatypes.Date(time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func allFiles(salt string) services.FileSet {
	return services.FileSet{
		models.FileVideo:     {Upload: mp4File("video.mp4", "video"+salt)},
		models.FileBanner:    {Upload: pngFile("banner.png", "banner"+salt)},
		models.FileTrailer:   {Upload: mp4File("trailer.mp4", "trailer"+salt)},
		models.FileThumbnail: {Upload: pngFile("thumb.png", "thumb"+salt)},
	}
}

func TestWriterCreateStoresRelationsAndFiles(t *testing.T) {
	f := newFixture(t)
	c1 := f.seedCategory(t, "movies", true)
	g1 := f.seedGenre(t, "drama", c1)

	video := newVideo("created")
	err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity: video,
		Relations: map[repository.Relation][]uuid.UUID{
			repository.RelationCategories: {c1.ID},
			repository.RelationGenres:     {g1.ID},
		},
		Files: allFiles("1"),
	})
	if err != nil {
		t.Fatalf("CreateOrUpdate() error = %v", err)
	}

	if len(video.Categories) != 1 || len(video.Genres) != 1 {
		t.Errorf("reloaded relations = %d categories %d genres, want 1 and 1", len(video.Categories), len(video.Genres))
	}
	if got := len(f.storage.keys()); got != 4 {
		t.Errorf("stored objects = %d, want 4", got)
	}
	for field, name := range video.FileNames() {
		if !f.storage.has(video.FilesDir() + "/" + name) {
			t.Errorf("%s file %q missing from storage", field, name)
		}
	}
	want := []string{"videos.created", "category_video.created", "genre_video.created"}
	got := f.publisher.published()
	if len(got) != len(want) {
		t.Fatalf("published = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("published[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	rows := f.publisher.decoded(t, "genre_video.created")
	if len(rows) != 1 || rows[0]["video_id"] != video.ID.String() || rows[0]["genre_id"] != g1.ID.String() {
		t.Errorf("genre_video.created body = %v, want the video/genre pair", rows)
	}
}

func TestWriterPublishesOnlyChangedPivotRows(t *testing.T) {
	f := newFixture(t)
	c1 := f.seedCategory(t, "movies", true)
	c2 := f.seedCategory(t, "series", true)

	genre := &models.Genre{Name: "drama", IsActive: true}
	err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity:    genre,
		Relations: map[repository.Relation][]uuid.UUID{repository.RelationCategories: {c1.ID}},
	})
	if err != nil {
		t.Fatalf("create error = %v", err)
	}

	err = f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity:    genre,
		Update:    true,
		Relations: map[repository.Relation][]uuid.UUID{repository.RelationCategories: {c2.ID}},
	})
	if err != nil {
		t.Fatalf("update error = %v", err)
	}

	err = f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity:    genre,
		Update:    true,
		Relations: map[repository.Relation][]uuid.UUID{repository.RelationCategories: {c2.ID}},
	})
	if err != nil {
		t.Fatalf("unchanged update error = %v", err)
	}

	want := []string{
		"genres.created", "category_genre.created",
		"genres.updated", "category_genre.created", "category_genre.deleted",
		"genres.updated",
	}
	got := f.publisher.published()
	if len(got) != len(want) {
		t.Fatalf("published = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("published[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	deleted := f.publisher.decoded(t, "category_genre.deleted")
	if len(deleted) != 1 || deleted[0]["category_id"] != c1.ID.String() {
		t.Errorf("category_genre.deleted body = %v, want c1", deleted)
	}
}

func TestWriterUpdateDeletesOnlySupersededFile(t *testing.T) {
	f := newFixture(t)

	video := newVideo("banner swap")
	if err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{Entity: video, Files: allFiles("1")}); err != nil {
		t.Fatalf("create error = %v", err)
	}
	before := video.FileNames()

	err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity: video,
		Update: true,
		Files:  services.FileSet{models.FileBanner: {Upload: pngFile("banner.png", "banner2")}},
	})
	if err != nil {
		t.Fatalf("update error = %v", err)
	}
	after := video.FileNames()

	dir := video.FilesDir()
	if f.storage.has(dir + "/" + before[models.FileBanner]) {
		t.Error("previous banner still in storage")
	}
	if !f.storage.has(dir + "/" + after[models.FileBanner]) {
		t.Error("new banner missing from storage")
	}
	for _, field := range []string{models.FileVideo, models.FileTrailer, models.FileThumbnail} {
		if after[field] != before[field] {
			t.Errorf("%s changed from %q to %q", field, before[field], after[field])
		}
		if !f.storage.has(dir + "/" + before[field]) {
			t.Errorf("%s file removed from storage", field)
		}
	}
}

func TestWriterRollbackOnRelationFailure(t *testing.T) {
	f := newFixture(t)

	video := newVideo("doomed")
	err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity: video,
		Relations: map[repository.Relation][]uuid.UUID{
			repository.RelationCategories: {uuid.New()},
		},
		Files: services.FileSet{models.FileBanner: {Upload: pngFile("banner.png", "x")}},
	})
	if !apperrors.IsConstraintViolation(err) {
		t.Fatalf("CreateOrUpdate() error = %v, want ConstraintViolationError", err)
	}

	if n := f.countVideos(t); n != 0 {
		t.Errorf("videos rows = %d, want 0", n)
	}
	if keys := f.storage.keys(); len(keys) != 0 {
		t.Errorf("storage = %v, want empty", keys)
	}
	if got := f.publisher.published(); len(got) != 0 {
		t.Errorf("published = %v, want nothing", got)
	}
}

func TestWriterRollbackOnStorageFailureRemovesStagedFiles(t *testing.T) {
	f := newFixture(t)
	f.storage.failPutAt = 2

	video := newVideo("half uploaded")
	err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{Entity: video, Files: allFiles("1")})
	if !apperrors.IsStorage(err) {
		t.Fatalf("CreateOrUpdate() error = %v, want StorageError", err)
	}

	if n := f.countVideos(t); n != 0 {
		t.Errorf("videos rows = %d, want 0", n)
	}
	if keys := f.storage.keys(); len(keys) != 0 {
		t.Errorf("storage = %v, want empty after compensating delete", keys)
	}
}

func TestWriterFailedUpdateLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	c1 := f.seedCategory(t, "movies", true)
	c2 := f.seedCategory(t, "series", true)

	genre := &models.Genre{Name: "drama", IsActive: true}
	err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity:    genre,
		Relations: map[repository.Relation][]uuid.UUID{repository.RelationCategories: {c1.ID}},
	})
	if err != nil {
		t.Fatalf("create error = %v", err)
	}

	genre.Name = "renamed"
	err = f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity:    genre,
		Update:    true,
		Relations: map[repository.Relation][]uuid.UUID{repository.RelationCategories: {c2.ID, uuid.New()}},
	})
	if !apperrors.IsConstraintViolation(err) {
		t.Fatalf("update error = %v, want ConstraintViolationError", err)
	}

	stored, err := f.genres.FindByID(ctx, genre.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Name != "drama" {
		t.Errorf("name = %q, want unchanged drama", stored.Name)
	}
	if len(stored.Categories) != 1 || stored.Categories[0].ID != c1.ID {
		t.Errorf("categories = %v, want only c1", stored.Categories)
	}
}

func TestWriterUpdateOfSoftDeletedEntityIsNotFound(t *testing.T) {
	f := newFixture(t)
	c1 := f.seedCategory(t, "movies", true)
	c2 := f.seedCategory(t, "series", true)
	created := f.seedGenre(t, "drama", c1)

	stale, err := f.genres.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if err := f.genres.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	stale.Name = "renamed"
	err = f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity:    stale,
		Update:    true,
		Relations: map[repository.Relation][]uuid.UUID{repository.RelationCategories: {c2.ID}},
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("update error = %v, want ErrNotFound", err)
	}

	if _, err := f.genres.FindByID(ctx, created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want genre to stay deleted", err)
	}
	var stored models.Genre
	if err := f.db.Unscoped().Preload("Categories").Where("id = ?", created.ID.String()).First(&stored).Error; err != nil {
		t.Fatalf("unscoped lookup: %v", err)
	}
	if stored.Name != "drama" || !stored.DeletedAt.Valid {
		t.Errorf("stored = %+v, want original name and deleted_at set", stored)
	}
	if len(stored.Categories) != 1 || stored.Categories[0].ID != c1.ID {
		t.Errorf("categories = %v, want only c1", stored.Categories)
	}
	if got := f.publisher.published(); len(got) != 0 {
		t.Errorf("published = %v, want nothing", got)
	}
}

func TestWriterKeepsResultWhenSupersededDeleteFails(t *testing.T) {
	f := newFixture(t)

	video := newVideo("sticky")
	if err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{Entity: video, Files: allFiles("1")}); err != nil {
		t.Fatalf("create error = %v", err)
	}

	f.storage.failRemove = true
	err := f.writer.CreateOrUpdate(ctx, services.WriteRequest{
		Entity: video,
		Update: true,
		Files:  services.FileSet{models.FileThumbnail: {Upload: pngFile("t.png", "new")}},
	})
	if err != nil {
		t.Fatalf("update error = %v, want nil when only cleanup fails", err)
	}
	if entry := f.logs.LastEntry(); entry == nil || entry.Level != logrus.WarnLevel {
		t.Error("expected cleanup failure to be logged as a warning")
	}
}

func TestWriterRunsHooksWithAction(t *testing.T) {
	f := newFixture(t)

	var actions []string
	writer := services.NewTransactionalWriter(f.db, f.relations, f.files, f.logger,
		func(ctx context.Context, commit services.Commit) {
			actions = append(actions, commit.Entity.TableName()+":"+commit.Action)
		})

	genre := &models.Genre{Name: "horror", IsActive: true}
	if err := writer.CreateOrUpdate(ctx, services.WriteRequest{Entity: genre}); err != nil {
		t.Fatalf("create error = %v", err)
	}
	if err := writer.CreateOrUpdate(ctx, services.WriteRequest{Entity: genre, Update: true}); err != nil {
		t.Fatalf("update error = %v", err)
	}

	want := []string{"genres:created", "genres:updated"}
	if len(actions) != len(want) || actions[0] != want[0] || actions[1] != want[1] {
		t.Errorf("hook actions = %v, want %v", actions, want)
	}
}
