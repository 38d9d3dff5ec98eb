package model

// swagger:model Category
type Category struct {
	UUIDBase
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:255" json:"icon"`
}

func (Category) TableName() string {
	return "categories"
}
