package models

type Genre struct {
	Base
	Name       string     `gorm:"size:255;not null;index" json:"name" example:"Drama"`
	IsActive   bool       `gorm:"not null" json:"is_active" example:"true"`
	Categories []Category `gorm:"many2many:category_genre;" json:"categories,omitempty"`
}

func (Genre) TableName() string {
	return "genres"
}

// Relations lists the associations reloaded after a write, soft-deleted
// referents included.
func (Genre) Relations() []string {
	return []string{"Categories"}
}
