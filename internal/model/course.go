package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePending   CourseStatus = "pending"
	CoursePublished CourseStatus = "published"
	CourseRejected  CourseStatus = "rejected"
)

// swagger:model Course
type Course struct {
	UUIDBase
	Title           string       `gorm:"size:255;not null" json:"title"`
	Slug            string       `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description     string       `gorm:"type:text" json:"description"`
	ThumbnailURL    string       `gorm:"size:255" json:"thumbnailUrl"`
	PreviewVideoURL string       `gorm:"size:255" json:"previewVideoUrl"`
	Price           float64      `gorm:"type:decimal(10,2);default:0" json:"price"`
	IsFree          bool         `gorm:"default:false" json:"isFree"`
	Status          CourseStatus `gorm:"size:20;default:'draft';index" json:"status"`
	InstructorID    uint         `gorm:"index;not null" json:"instructorId"`
	Instructor      User         `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	CategoryID      *string      `gorm:"index;type:varchar(36)" json:"categoryId"`
	Category        *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Modules []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// EffectivePrice 免费课程无论存的价格是多少，生效价格都是 0
func (c *Course) EffectivePrice() float64 {
	if c.IsFree {
		return 0
	}
	return c.Price
}

// swagger:model CourseModule
type CourseModule struct {
	UUIDBase
	CourseID    string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	OrderIndex  int    `gorm:"not null;default:0" json:"orderIndex"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
