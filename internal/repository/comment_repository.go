package repository

import (
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/util"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

// Create 插入评论。回复时在同一事务里校验父评论存在且属于同一课时，
// 避免并发删除父评论后挂出孤儿回复。
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if comment.ParentID != nil {
			var parent model.Comment
			err := tx.Where("id = ? AND lesson_id = ?", *comment.ParentID, comment.LessonID).
				First(&parent).Error
			if err == gorm.ErrRecordNotFound {
				return util.ErrCommentNotFound
			}
			if err != nil {
				return err
			}
		}
		return tx.Create(comment).Error
	})
}

// FindByLesson 平铺返回课时下全部评论，树形结构由 Service 层装配
func (r *CommentRepository) FindByLesson(lessonID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Preload("User.Profile").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.First(&comment, "id = ?", id).Error
	return &comment, err
}

func (r *CommentRepository) CountByLesson(lessonID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Comment{}).Where("lesson_id = ?", lessonID).Count(&count).Error
	return count, err
}

// DeleteTree 删除评论及其整棵回复子树，返回删除的条数
func (r *CommentRepository) DeleteTree(comment *model.Comment) (int64, error) {
	var deleted int64

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		// 同一课时的评论量有限，一次取出后在内存里收集子树
		var all []model.Comment
		if err := tx.Select("id", "parent_id").
			Where("lesson_id = ?", comment.LessonID).
			Find(&all).Error; err != nil {
			return err
		}

		children := make(map[string][]string, len(all))
		for _, c := range all {
			if c.ParentID != nil {
				children[*c.ParentID] = append(children[*c.ParentID], c.ID)
			}
		}

		ids := []string{comment.ID}
		for i := 0; i < len(ids); i++ {
			ids = append(ids, children[ids[i]]...)
		}

		result := tx.Where("id IN ?", ids).Delete(&model.Comment{})
		deleted = result.RowsAffected
		return result.Error
	})

	return deleted, err
}
