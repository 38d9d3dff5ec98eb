package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	UserID      uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID    string     `gorm:"uniqueIndex:idx_user_course;type:varchar(36);not null" json:"courseId"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Progress    float64    `gorm:"type:decimal(5,2);default:0" json:"progress"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// LessonCompletion 已完成课时的持久化标记，进度永远从这张表重新推导，
// 重复标记同一课时不会重复计数
type LessonCompletion struct {
	BaseModel
	EnrollmentID string `gorm:"uniqueIndex:idx_enrollment_lesson;type:varchar(36);not null" json:"enrollmentId"`
	LessonID     string `gorm:"uniqueIndex:idx_enrollment_lesson;type:varchar(36);not null" json:"lessonId"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
