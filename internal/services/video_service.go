package services

import (
	"context"
	"time"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const ReleaseDateLayout = "2006-01-02"

type VideoInput struct {
	Title          string   `json:"title" form:"title" validate:"required,max=255"`
	Description    string   `json:"description" form:"description" validate:"required"`
	Duration       *int     `json:"duration" form:"duration" validate:"required,min=0"`
	Classification string   `json:"classification" form:"classification" validate:"required,classification"`
	ReleaseAt      string   `json:"release_at" form:"release_at" validate:"required,datetime=2006-01-02"`
	Categories     []string `json:"categories" form:"categories" validate:"required,min=1,dive,uuid"`
	Genres         []string `json:"genres" form:"genres" validate:"required,min=1,dive,uuid"`
	CastMembers    []string `json:"cast_members" form:"cast_members" validate:"omitempty,dive,uuid"`
	Files          FileSet  `json:"-" form:"-" validate:"-"`
}

type VideoService interface {
	List(ctx context.Context, params repository.ListParams) ([]models.Video, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Create(ctx context.Context, input VideoInput) (*models.Video, error)
	Update(ctx context.Context, id uuid.UUID, input VideoInput) (*models.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FileURL(video *models.Video, name *string) *string
}

type videoService struct {
	repo           repository.VideoRepository
	categoryRepo   repository.CategoryRepository
	genreRepo      repository.GenreRepository
	castMemberRepo repository.CastMemberRepository
	coverage       *CategoryCoverageValidator
	writer         *TransactionalWriter
	files          *FileLifecycleManager
	fileRules      FileRules
	validator      *validation.Validator
	observer       *ModelObserver
	logger         *logrus.Logger
}

// VideoDeps groups the collaborators of the video service.
type VideoDeps struct {
	Repo           repository.VideoRepository
	CategoryRepo   repository.CategoryRepository
	GenreRepo      repository.GenreRepository
	CastMemberRepo repository.CastMemberRepository
	Coverage       *CategoryCoverageValidator
	Writer         *TransactionalWriter
	Files          *FileLifecycleManager
	FileRules      FileRules
	Validator      *validation.Validator
	Observer       *ModelObserver
}

func NewVideoService(deps VideoDeps, logger *logrus.Logger) VideoService {
	return &videoService{
		repo:           deps.Repo,
		categoryRepo:   deps.CategoryRepo,
		genreRepo:      deps.GenreRepo,
		castMemberRepo: deps.CastMemberRepo,
		coverage:       deps.Coverage,
		writer:         deps.Writer,
		files:          deps.Files,
		fileRules:      deps.FileRules,
		validator:      deps.Validator,
		observer:       deps.Observer,
		logger:         logger,
	}
}

func (s *videoService) List(ctx context.Context, params repository.ListParams) ([]models.Video, int64, error) {
	return s.repo.FindAll(ctx, params)
}

func (s *videoService) Get(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *videoService) Create(ctx context.Context, input VideoInput) (*models.Video, error) {
	relations, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	video := &models.Video{}
	applyVideoInput(video, input)

	err = s.writer.CreateOrUpdate(ctx, WriteRequest{
		Entity:    video,
		Relations: relations,
		Files:     input.Files,
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

func (s *videoService) Update(ctx context.Context, id uuid.UUID, input VideoInput) (*models.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	relations, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	applyVideoInput(video, input)

	err = s.writer.CreateOrUpdate(ctx, WriteRequest{
		Entity:    video,
		Update:    true,
		Relations: relations,
		Files:     input.Files,
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// Delete soft-deletes the video. Its files stay in storage so the row can be
// restored.
func (s *videoService) Delete(ctx context.Context, id uuid.UUID) error {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.observer.Deleted(ctx, video)
	return nil
}

func (s *videoService) FileURL(video *models.Video, name *string) *string {
	return s.files.URL(video.FilesDir(), name)
}

// validate runs the field rules, the file rules, the reference checks and the
// category coverage rule, and returns the relation sets to persist.
func (s *videoService) validate(ctx context.Context, input VideoInput) (map[repository.Relation][]uuid.UUID, error) {
	verr := apperrors.NewValidationError()
	verr.Merge(s.validator.Struct(input))
	verr.Merge(s.fileRules.Check(input.Files))

	categories := repository.UniqueIDs(parseUUIDs(input.Categories))
	genres := repository.UniqueIDs(parseUUIDs(input.Genres))

	if err := checkReferences(ctx, verr, "categories", categories, s.categoryRepo, true); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, verr, "genres", genres, s.genreRepo, true); err != nil {
		return nil, err
	}

	relations := map[repository.Relation][]uuid.UUID{
		repository.RelationCategories: categories,
		repository.RelationGenres:     genres,
	}
	if input.CastMembers != nil {
		castMembers := repository.UniqueIDs(parseUUIDs(input.CastMembers))
		if err := checkReferences(ctx, verr, "cast_members", castMembers, s.castMemberRepo, false); err != nil {
			return nil, err
		}
		relations[repository.RelationCastMembers] = castMembers
	}

	if !verr.Has("genres") && !verr.Has("categories") {
		covered, err := s.coverage.Validate(ctx, categories, genres)
		if err != nil {
			return nil, err
		}
		if !covered {
			verr.Add("genres", CoverageMessage)
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return relations, nil
}

func applyVideoInput(video *models.Video, input VideoInput) {
	video.Title = input.Title
	video.Description = input.Description
	video.Classification = input.Classification
	if input.Duration != nil {
		video.Duration = *input.Duration
	}
	if releaseAt, err := time.Parse(ReleaseDateLayout, input.ReleaseAt); err == nil {
		video.ReleaseAt = datatypes.Date(releaseAt)
	}
}
