package repository

import (
	"skillspire_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByModule(moduleID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).
		Order("order_index ASC").
		Preload("Attachments").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Preload("Attachments").First(&lesson, "id = ?", id).Error
	return &lesson, err
}

// CourseIDOf 反查课时所属课程，授权检查和进度计算都要用
func (r *LessonRepository) CourseIDOf(lessonID string) (string, error) {
	var courseID string
	err := r.DB.Model(&model.Lesson{}).
		Select("course_modules.course_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("lessons.id = ?", lessonID).
		Limit(1).
		Scan(&courseID).Error
	if err != nil {
		return "", err
	}
	if courseID == "" {
		return "", gorm.ErrRecordNotFound
	}
	return courseID, nil
}

// CountByCourse 课程下全部课时数（跨所有模块）
func (r *LessonRepository) CountByCourse(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Count(&count).Error
	return count, err
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

// Delete 级联删除课时的附件、评论与完成标记
func (r *LessonRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&model.LessonAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&model.LessonCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, "id = ?", id).Error
	})
}

func (r *LessonRepository) CreateAttachment(attachment *model.LessonAttachment) error {
	return r.DB.Create(attachment).Error
}

func (r *LessonRepository) FindAttachment(id string) (*model.LessonAttachment, error) {
	var attachment model.LessonAttachment
	err := r.DB.First(&attachment, "id = ?", id).Error
	return &attachment, err
}

func (r *LessonRepository) DeleteAttachment(id string) error {
	return r.DB.Delete(&model.LessonAttachment{}, "id = ?", id).Error
}
