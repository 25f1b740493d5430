package models

type Category struct {
	Base
	Name        string  `gorm:"size:255;not null;index" json:"name" example:"Documentary"`
	Description *string `gorm:"type:text" json:"description"`
	IsActive    bool    `gorm:"not null" json:"is_active" example:"true"`
}

func (Category) TableName() string {
	return "categories"
}
