package services_test

import (
	"testing"

	"catalog-backend/internal/config"
	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
)

func TestVideoFileRules(t *testing.T) {
	rules := services.VideoFileRules(config.UploadConfig{
		VideoMaxKB:     1,
		BannerMaxKB:    1,
		TrailerMaxKB:   1,
		ThumbnailMaxKB: 1,
	})

	big := make([]byte, 2048)
	copy(big, pngHeader)

	tests := []struct {
		name      string
		files     services.FileSet
		wantField string
	}{
		{
			name: "valid uploads",
			files: services.FileSet{
				models.FileVideo:  {Upload: mp4File("v.mp4", "")},
				models.FileBanner: {Upload: pngFile("b.png", "")},
			},
		},
		{
			name:  "stored name is not checked",
			files: services.FileSet{models.FileTrailer: {Name: "existing.mp4"}},
		},
		{
			name:      "image where video expected",
			files:     services.FileSet{models.FileVideo: {Upload: pngFile("v.mp4", "")}},
			wantField: models.FileVideo,
		},
		{
			name:      "text where image expected",
			files:     services.FileSet{models.FileThumbnail: {Upload: services.NewUploadedFileFromBytes("t.png", []byte("plain text"))}},
			wantField: models.FileThumbnail,
		},
		{
			name:      "too large",
			files:     services.FileSet{models.FileBanner: {Upload: services.NewUploadedFileFromBytes("b.png", big)}},
			wantField: models.FileBanner,
		},
		{
			name:      "unknown field",
			files:     services.FileSet{"poster": {Name: "p.png"}},
			wantField: "poster",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := rules.Check(tt.files)
			if tt.wantField == "" {
				if verr != nil {
					t.Errorf("Check() = %v, want nil", verr)
				}
				return
			}
			if verr == nil || !verr.Has(tt.wantField) {
				t.Errorf("Check() = %v, want error on %s", verr, tt.wantField)
			}
		})
	}
}
