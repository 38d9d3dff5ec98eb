package repository

import (
	"skillspire_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// FindPublished 公开目录：只返回 published 状态的课程
func (r *CourseRepository) FindPublished(offset, limit int, categoryID, search string) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{}).Where("status = ?", model.CoursePublished)

	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Preload("Instructor.Profile").
		Preload("Category").
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) FindByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Preload("Category").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByStatus(status model.CourseStatus) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("status = ?", status).
		Order("created_at ASC").
		Preload("Instructor.Profile").
		Preload("Category").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ?", slug).First(&course).Error
	return &course, err
}

// FindBySlugWithContent 课程详情：预加载讲师、分类、按序模块与课时
func (r *CourseRepository) FindBySlugWithContent(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ?", slug).
		Preload("Instructor.Profile").
		Preload("Category").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.order_index ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order_index ASC")
		}).
		Preload("Modules.Lessons.Attachments").
		First(&course).Error
	return &course, err
}

func (r *CourseRepository) SlugExists(slug string, excludeID string) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Course{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// UpdateStatus 按当前状态条件更新，返回是否真的发生了更新。
// WHERE status = from 保证并发转换请求只有一个会生效。
func (r *CourseRepository) UpdateStatus(id string, from, to model.CourseStatus) (bool, error) {
	result := r.DB.Model(&model.Course{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected > 0, result.Error
}

// Delete 级联删除：课程 → 模块 → 课时 → (附件、评论、完成标记)，以及报名记录
func (r *CourseRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []string
		if err := tx.Model(&model.CourseModule{}).
			Where("course_id = ?", id).
			Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		if len(moduleIDs) > 0 {
			var lessonIDs []string
			if err := tx.Model(&model.Lesson{}).
				Where("module_id IN ?", moduleIDs).
				Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}

			if len(lessonIDs) > 0 {
				if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonAttachment{}).Error; err != nil {
					return err
				}
				if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Comment{}).Error; err != nil {
					return err
				}
				if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonCompletion{}).Error; err != nil {
					return err
				}
				if err := tx.Where("module_id IN ?", moduleIDs).Delete(&model.Lesson{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("course_id = ?", id).Delete(&model.CourseModule{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountByStatus(status model.CourseStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
