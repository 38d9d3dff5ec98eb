package model

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	ModuleID        string `gorm:"index;type:varchar(36);not null" json:"moduleId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Content         string `gorm:"type:text" json:"content"`
	VideoURL        string `gorm:"size:255" json:"videoUrl"`
	DurationMinutes int    `gorm:"default:0" json:"durationMinutes"`
	OrderIndex      int    `gorm:"not null;default:0" json:"orderIndex"`
	IsPreview       bool   `gorm:"default:false" json:"isPreview"`

	Attachments []LessonAttachment `gorm:"foreignKey:LessonID" json:"attachments,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// swagger:model LessonAttachment
type LessonAttachment struct {
	UUIDBase
	LessonID string `gorm:"index;type:varchar(36);not null" json:"lessonId"`
	FileName string `gorm:"size:255;not null" json:"fileName"`
	FileURL  string `gorm:"size:255;not null" json:"fileUrl"`
	FileType string `gorm:"size:50" json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

func (LessonAttachment) TableName() string {
	return "lesson_attachments"
}
