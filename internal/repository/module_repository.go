package repository

import (
	"skillspire_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) FindByCourse(courseID string) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).
		Order("order_index ASC").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order_index ASC")
		}).
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByID(id string) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.DB.First(&module, "id = ?", id).Error
	return &module, err
}

func (r *ModuleRepository) Create(module *model.CourseModule) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) Update(module *model.CourseModule) error {
	return r.DB.Save(module).Error
}

// Delete 级联删除模块下的课时及其附件、评论、完成标记
func (r *ModuleRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []string
		if err := tx.Model(&model.Lesson{}).
			Where("module_id = ?", id).
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
			if err := tx.Where("module_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.CourseModule{}, "id = ?", id).Error
	})
}
