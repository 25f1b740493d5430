package handlers

import (
	"time"

	"catalog-backend/internal/models"
)

type CategoryResource struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

type GenreResource struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	IsActive   bool               `json:"is_active"`
	Categories []CategoryResource `json:"categories"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  *time.Time         `json:"deleted_at"`
}

type CastMemberResource struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Role      int        `json:"role"`
	RoleName  string     `json:"role_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type VideoResource struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Classification string               `json:"classification"`
	ReleaseAt      string               `json:"release_at"`
	Duration       int                  `json:"duration"`
	Categories     []CategoryResource   `json:"categories"`
	Genres         []GenreResource      `json:"genres"`
	CastMembers    []CastMemberResource `json:"cast_members"`
	Video          *string              `json:"video"`
	Thumbnail      *string              `json:"thumbnail"`
	Banner         *string              `json:"banner"`
	Trailer        *string              `json:"trailer"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	DeletedAt      *time.Time           `json:"deleted_at"`
}

func deletedAt(base models.Base) *time.Time {
	if !base.DeletedAt.Valid {
		return nil
	}
	t := base.DeletedAt.Time
	return &t
}

func NewCategoryResource(category models.Category) CategoryResource {
	return CategoryResource{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
		DeletedAt:   deletedAt(category.Base),
	}
}

func NewCategoryResources(categories []models.Category) []CategoryResource {
	out := make([]CategoryResource, 0, len(categories))
	for _, category := range categories {
		out = append(out, NewCategoryResource(category))
	}
	return out
}

func NewGenreResource(genre models.Genre) GenreResource {
	return GenreResource{
		ID:         genre.ID.String(),
		Name:       genre.Name,
		IsActive:   genre.IsActive,
		Categories: NewCategoryResources(genre.Categories),
		CreatedAt:  genre.CreatedAt,
		UpdatedAt:  genre.UpdatedAt,
		DeletedAt:  deletedAt(genre.Base),
	}
}

func NewGenreResources(genres []models.Genre) []GenreResource {
	out := make([]GenreResource, 0, len(genres))
	for _, genre := range genres {
		out = append(out, NewGenreResource(genre))
	}
	return out
}

func NewCastMemberResource(member models.CastMember) CastMemberResource {
	return CastMemberResource{
		ID:        member.ID.String(),
		Name:      member.Name,
		Role:      int(member.Role),
		RoleName:  member.Role.String(),
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
		DeletedAt: deletedAt(member.Base),
	}
}

func NewCastMemberResources(members []models.CastMember) []CastMemberResource {
	out := make([]CastMemberResource, 0, len(members))
	for _, member := range members {
		out = append(out, NewCastMemberResource(member))
	}
	return out
}

// fileURLFunc resolves a stored file name of a video to its public URL.
type fileURLFunc func(video *models.Video, name *string) *string

func NewVideoResource(video *models.Video, fileURL fileURLFunc) VideoResource {
	return VideoResource{
		ID:             video.ID.String(),
		Title:          video.Title,
		Description:    video.Description,
		Classification: video.Classification,
		ReleaseAt:      time.Time(video.ReleaseAt).Format("2006-01-02"),
		Duration:       video.Duration,
		Categories:     NewCategoryResources(video.Categories),
		Genres:         NewGenreResources(video.Genres),
		CastMembers:    NewCastMemberResources(video.CastMembers),
		Video:          fileURL(video, video.VideoFile),
		Thumbnail:      fileURL(video, video.Thumbnail),
		Banner:         fileURL(video, video.Banner),
		Trailer:        fileURL(video, video.Trailer),
		CreatedAt:      video.CreatedAt,
		UpdatedAt:      video.UpdatedAt,
		DeletedAt:      deletedAt(video.Base),
	}
}
