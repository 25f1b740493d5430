package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"catalog-backend/internal/config"
	"catalog-backend/internal/database"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/services"
	"catalog-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/driver/sqlite"
)

var ctx = context.Background()

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	mp4Header = []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2")
)

func pngFile(name, salt string) *services.UploadedFile {
	return services.NewUploadedFileFromBytes(name, append(append([]byte{}, pngHeader...), salt...))
}

func mp4File(name, salt string) *services.UploadedFile {
	return services.NewUploadedFileFromBytes(name, append(append([]byte{}, mp4Header...), salt...))
}

// memoryStorage keeps objects in memory. failPutAt makes the n-th Put (1
// based) fail; failRemove makes every Remove fail.
type memoryStorage struct {
	mu         sync.Mutex
	objects    map[string][]byte
	puts       int
	failPutAt  int
	failRemove bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puts++
	if s.failPutAt > 0 && s.puts == s.failPutAt {
		return errors.New("bucket unavailable")
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.objects[key] = buf.Bytes()
	return nil
}

func (s *memoryStorage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failRemove {
		return errors.New("bucket unavailable")
	}
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) URL(key string) string {
	return "http://storage.test/videos/" + key
}

func (s *memoryStorage) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

func (s *memoryStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	bodies [][]byte
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	p.bodies = append(p.bodies, body)
	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// decoded returns the JSON body of every event published on routingKey.
func (p *recordingPublisher) decoded(t *testing.T, routingKey string) []map[string]any {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []map[string]any
	for i, key := range p.keys {
		if key != routingKey {
			continue
		}
		var body map[string]any
		if err := json.Unmarshal(p.bodies[i], &body); err != nil {
			t.Fatalf("decode %s body: %v", key, err)
		}
		out = append(out, body)
	}
	return out
}

type fixture struct {
	db        *database.Database
	logger    *logrus.Logger
	logs      *test.Hook
	storage   *memoryStorage
	publisher *recordingPublisher
	relations repository.RelationStore
	files     *services.FileLifecycleManager
	observer  *services.ModelObserver
	writer    *services.TransactionalWriter
	validator *validation.Validator

	categories  repository.CategoryRepository
	genres      repository.GenreRepository
	castMembers repository.CastMemberRepository
	videos      repository.VideoRepository
}

func newFixture(t *testing.T) *fixture {
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

	logger, logs := test.NewNullLogger()

	f := &fixture{
		db:          db,
		logger:      logger,
		logs:        logs,
		storage:     newMemoryStorage(),
		publisher:   &recordingPublisher{},
		relations:   repository.NewRelationStore(db),
		validator:   validation.New(),
		categories:  repository.NewCategoryRepository(db),
		genres:      repository.NewGenreRepository(db),
		castMembers: repository.NewCastMemberRepository(db),
		videos:      repository.NewVideoRepository(db),
	}
	f.files = services.NewFileLifecycleManager(f.storage, logger)
	f.observer = services.NewModelObserver(f.publisher, logger)
	f.writer = services.NewTransactionalWriter(db, f.relations, f.files, logger, f.observer.Hook())
	return f
}

func (f *fixture) videoService() services.VideoService {
	return services.NewVideoService(services.VideoDeps{
		Repo:           f.videos,
		CategoryRepo:   f.categories,
		GenreRepo:      f.genres,
		CastMemberRepo: f.castMembers,
		Coverage:       services.NewCategoryCoverageValidator(f.relations),
		Writer:         f.writer,
		Files:          f.files,
		FileRules: services.VideoFileRules(config.UploadConfig{
			VideoMaxKB:     1024,
			BannerMaxKB:    1,
			TrailerMaxKB:   1024,
			ThumbnailMaxKB: 1,
		}),
		Validator: f.validator,
		Observer:  f.observer,
	}, f.logger)
}

func (f *fixture) genreService() services.GenreService {
	return services.NewGenreService(f.genres, f.categories, f.writer, f.validator, f.observer, f.logger)
}

func (f *fixture) seedCategory(t *testing.T, name string, active bool) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, IsActive: active}
	if err := f.db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

func (f *fixture) seedGenre(t *testing.T, name string, categories ...*models.Category) *models.Genre {
	t.Helper()
	genre := &models.Genre{Name: name, IsActive: true}
	if err := f.db.Omit("Categories").Create(genre).Error; err != nil {
		t.Fatalf("seed genre: %v", err)
	}
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID.String())
	}
	if _, err := f.relations.Sync(ctx, nil, genre, repository.RelationCategories, parse(t, ids...)); err != nil {
		t.Fatalf("seed genre categories: %v", err)
	}
	return genre
}

func (f *fixture) seedCastMember(t *testing.T, name string) *models.CastMember {
	t.Helper()
	member := &models.CastMember{Name: name, Role: models.RoleActor}
	if err := f.db.Create(member).Error; err != nil {
		t.Fatalf("seed cast member: %v", err)
	}
	return member
}

func (f *fixture) countVideos(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Unscoped().Model(&models.Video{}).Count(&n).Error; err != nil {
		t.Fatalf("count videos: %v", err)
	}
	return n
}

func intPtr(v int) *int { return &v }

func parse(t *testing.T, values ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		ids = append(ids, id)
	}
	return ids
}
