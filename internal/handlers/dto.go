package handlers

import (
	"mime/multipart"
	"strconv"

	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
)

type CategoryRequest struct {
	Name        string  `json:"name" example:"Movies"`
	Description *string `json:"description" example:"Feature-length films"`
	IsActive    *bool   `json:"is_active" example:"true"`
}

func (r CategoryRequest) toInput() services.CategoryInput {
	return services.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

type GenreRequest struct {
	Name       string   `json:"name" example:"Drama"`
	IsActive   *bool    `json:"is_active" example:"true"`
	Categories []string `json:"categories"`
}

func (r GenreRequest) toInput() services.GenreInput {
	return services.GenreInput{
		Name:       r.Name,
		IsActive:   r.IsActive,
		Categories: r.Categories,
	}
}

type CastMemberRequest struct {
	Name string `json:"name" example:"Fernanda Montenegro"`
	Role int    `json:"role" example:"3"`
}

func (r CastMemberRequest) toInput() services.CastMemberInput {
	return services.CastMemberInput{
		Name: r.Name,
		Role: models.CastMemberRole(r.Role),
	}
}

// VideoRequest is the JSON form of a video write. Multipart requests carry
// the same fields plus the video, banner, trailer and thumbnail files.
type VideoRequest struct {
	Title          string   `json:"title" example:"Central do Brasil"`
	Description    string   `json:"description"`
	Duration       *int     `json:"duration" example:"113"`
	Classification string   `json:"classification" example:"12"`
	ReleaseAt      string   `json:"release_at" example:"1998-04-03"`
	Categories     []string `json:"categories"`
	Genres         []string `json:"genres"`
	CastMembers    []string `json:"cast_members"`
}

func (r VideoRequest) toInput() services.VideoInput {
	return services.VideoInput{
		Title:          r.Title,
		Description:    r.Description,
		Duration:       r.Duration,
		Classification: r.Classification,
		ReleaseAt:      r.ReleaseAt,
		Categories:     r.Categories,
		Genres:         r.Genres,
		CastMembers:    r.CastMembers,
	}
}

// videoRequestFromForm reads a multipart video write. Array fields are
// accepted both as "categories" and "categories[]".
func videoRequestFromForm(form *multipart.Form) (VideoRequest, services.FileSet) {
	value := func(key string) string {
		if values := form.Value[key]; len(values) > 0 {
			return values[0]
		}
		return ""
	}
	list := func(key string) []string {
		values := append([]string{}, form.Value[key]...)
		values = append(values, form.Value[key+"[]"]...)
		if len(values) == 0 {
			return nil
		}
		return values
	}

	req := VideoRequest{
		Title:          value("title"),
		Description:    value("description"),
		Classification: value("classification"),
		ReleaseAt:      value("release_at"),
		Categories:     list("categories"),
		Genres:         list("genres"),
		CastMembers:    list("cast_members"),
	}
	if raw := value("duration"); raw != "" {
		if duration, err := strconv.Atoi(raw); err == nil {
			req.Duration = &duration
		}
	}

	files := services.FileSet{}
	for _, field := range models.VideoFileFields {
		if headers := form.File[field]; len(headers) > 0 {
			files[field] = services.FileValue{Upload: services.NewUploadedFile(headers[0])}
		}
	}
	return req, files
}
