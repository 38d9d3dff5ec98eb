package repository

import (
	"errors"
	"skillspire_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.First(&enrollment, "id = ?", id).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID uint, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Preload("Course.Instructor.Profile").
		Preload("Course.Category").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CompletedLessonIDs(enrollmentID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("enrollment_id = ?", enrollmentID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

// MarkLessonComplete 幂等写入完成标记并在同一事务里从持久化完成集重算进度。
// 进度 = 课程现存课时中已完成的 / 课时总数 × 100；并发完成不同课时时结果可交换。
func (r *EnrollmentRepository) MarkLessonComplete(enrollmentID, lessonID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			return err
		}

		var existing model.LessonCompletion
		err := tx.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
			First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			completion := &model.LessonCompletion{EnrollmentID: enrollmentID, LessonID: lessonID}
			if err := tx.Create(completion).Error; err != nil {
				// 唯一索引兜底并发重复标记，视为已完成
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&model.Lesson{}).
			Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
			Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
			Count(&total).Error; err != nil {
			return err
		}

		// 只统计仍属于课程的课时，课程内容变化后从头重算而不是做增减
		var completed int64
		if err := tx.Model(&model.LessonCompletion{}).
			Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id AND lessons.deleted_at IS NULL").
			Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
			Where("lesson_completions.enrollment_id = ? AND course_modules.course_id = ?", enrollmentID, courseID).
			Count(&completed).Error; err != nil {
			return err
		}

		progress := 0.0
		if total > 0 {
			progress = float64(completed) / float64(total) * 100
		}
		if progress > 100 {
			progress = 100
		}

		updates := map[string]interface{}{"progress": progress}
		if progress >= 100 && enrollment.CompletedAt == nil {
			now := time.Now()
			updates["completed_at"] = &now
			enrollment.CompletedAt = &now
		}
		enrollment.Progress = progress

		return tx.Model(&model.Enrollment{}).
			Where("id = ?", enrollmentID).
			Updates(updates).Error
	})

	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) CountByCourse(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
