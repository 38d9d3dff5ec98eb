package service

import (
	"errors"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/repository"
	"skillspire_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type CommentService struct {
	CommentRepo *repository.CommentRepository
	LessonRepo  *repository.LessonRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, lessonRepo *repository.LessonRepository) *CommentService {
	return &CommentService{
		CommentRepo: commentRepo,
		LessonRepo:  lessonRepo,
	}
}

type CommentRequest struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

// CommentNode 讨论区的树形节点，回复按时间正序挂在 Replies 下
type CommentNode struct {
	ID        string        `json:"id"`
	LessonID  string        `json:"lessonId"`
	UserID    uint          `json:"userId"`
	Author    string        `json:"author"`
	AvatarURL string        `json:"avatarUrl,omitempty"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	Replies   []CommentNode `json:"replies"`
}

// Create 发表评论或回复。回复的父评论必须存在且属于同一课时
func (s *CommentService) Create(userID uint, lessonID string, req CommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, util.ErrEmptyComment
	}

	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	parentID := req.ParentID
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	comment := &model.Comment{
		LessonID: lessonID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByLesson 返回课时的完整讨论树。
// 存储是扁平的 parent_id 结构，这里一次查询后在内存里组树：
// 顶层按时间倒序（新帖在前），每层回复按时间正序。
func (s *CommentService) ListByLesson(lessonID string) ([]CommentNode, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	comments, err := s.CommentRepo.FindByLesson(lessonID)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]*model.Comment)
	var roots []*model.Comment
	for i := range comments {
		c := &comments[i]
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	// 查询按 created_at 正序返回，顶层反转成新帖在前
	nodes := make([]CommentNode, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		nodes = append(nodes, buildNode(roots[i], children))
	}
	return nodes, nil
}

func buildNode(c *model.Comment, children map[string][]*model.Comment) CommentNode {
	node := CommentNode{
		ID:        c.ID,
		LessonID:  c.LessonID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Replies:   []CommentNode{},
	}
	if c.User.Profile != nil {
		node.Author = c.User.Profile.FullName
		node.AvatarURL = c.User.Profile.AvatarURL
	} else {
		node.Author = c.User.Name
	}
	for _, child := range children[c.ID] {
		node.Replies = append(node.Replies, buildNode(child, children))
	}
	return node
}

// Delete 作者本人或管理员删除评论，整棵回复子树一并删除
func (s *CommentService) Delete(actor *util.Claims, commentID string) (int64, error) {
	comment, err := s.CommentRepo.FindByID(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.ErrCommentNotFound
	}
	if err != nil {
		return 0, err
	}

	if actor.Role != model.Admin && actor.UserID != comment.UserID {
		return 0, util.ErrPermissionDenied
	}

	return s.CommentRepo.DeleteTree(comment)
}
