package models

import (
	"gorm.io/datatypes"
)

var Classifications = []string{"L", "10", "12", "14", "16", "18"}

// File-valued columns of a video.
const (
	FileVideo     = "video"
	FileBanner    = "banner"
	FileTrailer   = "trailer"
	FileThumbnail = "thumbnail"
)

var VideoFileFields = []string{FileVideo, FileBanner, FileTrailer, FileThumbnail}

type Video struct {
	Base
	Title          string         `gorm:"size:255;not null;index" json:"title" example:"Central do Brasil"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Duration       int            `gorm:"not null" json:"duration" example:"113"`
	Classification string         `gorm:"size:2;not null" json:"classification" example:"12"`
	ReleaseAt      datatypes.Date `gorm:"not null;index" json:"release_at" swaggertype:"string" example:"1998-04-03"`
	VideoFile      *string        `gorm:"column:video;size:255" json:"video"`
	Banner         *string        `gorm:"size:255" json:"banner"`
	Trailer        *string        `gorm:"size:255" json:"trailer"`
	Thumbnail      *string        `gorm:"size:255" json:"thumbnail"`
	Categories     []Category     `gorm:"many2many:category_video;" json:"categories,omitempty"`
	Genres         []Genre        `gorm:"many2many:genre_video;" json:"genres,omitempty"`
	CastMembers    []CastMember   `gorm:"many2many:cast_member_video;" json:"cast_members,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

func (Video) Relations() []string {
	return []string{"Categories", "Genres", "CastMembers"}
}

// FileNames returns the stored file name of every file field that is set.
func (v *Video) FileNames() map[string]string {
	names := make(map[string]string, len(VideoFileFields))
	for _, field := range VideoFileFields {
		if ptr := v.fileField(field); ptr != nil && *ptr != nil && **ptr != "" {
			names[field] = **ptr
		}
	}
	return names
}

// SetFileName stores name in the given file field; an empty name clears it.
// Unknown fields are ignored.
func (v *Video) SetFileName(field, name string) {
	ptr := v.fileField(field)
	if ptr == nil {
		return
	}
	if name == "" {
		*ptr = nil
		return
	}
	*ptr = &name
}

// FilesDir is the storage directory holding this video's files.
func (v *Video) FilesDir() string {
	return v.ID.String()
}

func (v *Video) fileField(field string) **string {
	switch field {
	case FileVideo:
		return &v.VideoFile
	case FileBanner:
		return &v.Banner
	case FileTrailer:
		return &v.Trailer
	case FileThumbnail:
		return &v.Thumbnail
	}
	return nil
}

func (Video) FileFields() []string {
	return VideoFileFields
}
