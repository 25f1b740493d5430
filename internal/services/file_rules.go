package services

import (
	"fmt"
	"strings"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/config"
	"catalog-backend/internal/models"

	"github.com/gabriel-vasile/mimetype"
)

// FileRule bounds the size and sniffed content type of an upload.
type FileRule struct {
	MaxKB int64
	// MIME is an exact type such as "video/mp4" or a family prefix such as
	// "image/".
	MIME string
}

func (r FileRule) accepts(detected string) bool {
	if strings.HasSuffix(r.MIME, "/") {
		return strings.HasPrefix(detected, r.MIME)
	}
	return mimetype.EqualsAny(detected, r.MIME)
}

// FileRules maps file fields to their upload rule.
type FileRules map[string]FileRule

func VideoFileRules(cfg config.UploadConfig) FileRules {
	return FileRules{
		models.FileVideo:     {MaxKB: cfg.VideoMaxKB, MIME: "video/mp4"},
		models.FileTrailer:   {MaxKB: cfg.TrailerMaxKB, MIME: "video/mp4"},
		models.FileBanner:    {MaxKB: cfg.BannerMaxKB, MIME: "image/"},
		models.FileThumbnail: {MaxKB: cfg.ThumbnailMaxKB, MIME: "image/"},
	}
}

// Check validates every upload in files. Plain file names are not checked.
func (rules FileRules) Check(files FileSet) *apperrors.ValidationError {
	verr := apperrors.NewValidationError()

	for field, value := range files {
		rule, ok := rules[field]
		if !ok {
			verr.Add(field, "is not a file field")
			continue
		}
		if value.Upload == nil {
			continue
		}

		if rule.MaxKB > 0 && value.Upload.Size > rule.MaxKB*1024 {
			verr.Add(field, fmt.Sprintf("may not be greater than %d kilobytes", rule.MaxKB))
		}

		detected, err := value.Upload.MIMEType()
		if err != nil {
			verr.Add(field, "failed to upload")
			continue
		}
		if !rule.accepts(detected) {
			if strings.HasSuffix(rule.MIME, "/") {
				verr.Add(field, "must be an "+strings.TrimSuffix(rule.MIME, "/"))
			} else {
				verr.Add(field, "must be a file of type: "+rule.MIME)
			}
		}
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}
