package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/repository"
	"skillspire_backend/internal/util"
	"skillspire_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "catalog:published:v1"
	catalogCacheTTL = 5 * time.Minute
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	CategoryRepo   *repository.CategoryRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Redis          *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	categoryRepo *repository.CategoryRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		CategoryRepo:   categoryRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		Redis:          rdb,
	}
}

type CourseRequest struct {
	Title           string  `json:"title" binding:"required,max=255"`
	Description     string  `json:"description"`
	CategoryID      *string `json:"categoryId"`
	Price           float64 `json:"price"`
	IsFree          bool    `json:"isFree"`
	PreviewVideoURL string  `json:"previewVideoUrl"`
}

type CourseResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Description     string             `json:"description"`
	ThumbnailURL    string             `json:"thumbnailUrl"`
	PreviewVideoURL string             `json:"previewVideoUrl,omitempty"`
	Price           float64            `json:"price"`
	IsFree          bool               `json:"isFree"`
	Status          model.CourseStatus `json:"status"`
	InstructorID    uint               `json:"instructorId"`
	Instructor      string             `json:"instructor,omitempty"`
	Category        *model.Category    `json:"category,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`

	EnrollmentsCount int64                `json:"enrollmentsCount,omitempty"`
	LessonsCount     int64                `json:"lessonsCount,omitempty"`
	IsEnrolled       bool                 `json:"isEnrolled,omitempty"`
	Modules          []model.CourseModule `json:"modules,omitempty"`
}

func (s *CourseService) toResponse(course *model.Course) CourseResponse {
	resp := CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Slug:            course.Slug,
		Description:     course.Description,
		ThumbnailURL:    course.ThumbnailURL,
		PreviewVideoURL: course.PreviewVideoURL,
		Price:           course.EffectivePrice(),
		IsFree:          course.IsFree,
		Status:          course.Status,
		InstructorID:    course.InstructorID,
		Category:        course.Category,
		CreatedAt:       course.CreatedAt,
	}
	if course.Instructor.Profile != nil {
		resp.Instructor = course.Instructor.Profile.FullName
	} else if course.Instructor.Name != "" {
		resp.Instructor = course.Instructor.Name
	}
	return resp
}

type catalogPage struct {
	Courses []CourseResponse `json:"courses"`
	Total   int64            `json:"total"`
}

// GetCourses 公开课程目录，只含 published 状态；默认首页走 Redis 缓存
func (s *CourseService) GetCourses(page, limit int, categoryID, search string) ([]CourseResponse, int64, error) {
	cacheable := s.Redis != nil && page == 1 && limit == 10 && categoryID == "" && search == ""

	if cacheable {
		if val, err := s.Redis.Get(context.Background(), catalogCacheKey).Result(); err == nil {
			var cached catalogPage
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached.Courses, cached.Total, nil
			}
		}
	}

	offset := (page - 1) * limit
	courses, total, err := s.CourseRepo.FindPublished(offset, limit, categoryID, search)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = s.toResponse(&courses[i])
	}

	if cacheable {
		if data, err := json.Marshal(catalogPage{Courses: responses, Total: total}); err == nil {
			s.Redis.Set(context.Background(), catalogCacheKey, data, catalogCacheTTL)
		}
	}

	return responses, total, nil
}

func (s *CourseService) invalidateCatalogCache() {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), catalogCacheKey)
	}
}

// GetCourseBySlug 课程详情。未发布课程只有课程讲师本人和管理员可见
func (s *CourseService) GetCourseBySlug(slug string, actor *util.Claims) (*CourseResponse, error) {
	course, err := s.CourseRepo.FindBySlugWithContent(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if course.Status != model.CoursePublished && !canManageCourse(actor, course) {
		// 不泄露未发布课程的存在
		return nil, util.ErrCourseNotFound
	}

	resp := s.toResponse(course)
	resp.Modules = course.Modules

	if count, err := s.EnrollmentRepo.CountByCourse(course.ID); err == nil {
		resp.EnrollmentsCount = count
	}
	if count, err := s.LessonRepo.CountByCourse(course.ID); err == nil {
		resp.LessonsCount = count
	}
	if actor != nil {
		if _, err := s.EnrollmentRepo.FindByUserAndCourse(actor.UserID, course.ID); err == nil {
			resp.IsEnrolled = true
		}
	}

	return &resp, nil
}

// GetManagedCourse 按 slug 取课程并校验管理权限。
// 写存储的操作（封面上传等）先走这里，权限不过就不会落文件
func (s *CourseService) GetManagedCourse(actor *util.Claims, slug string) (*model.Course, error) {
	course, err := s.findCourseBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(actor, course) {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) GetMyCourses(actor *util.Claims) ([]CourseResponse, error) {
	courses, err := s.CourseRepo.FindByInstructor(actor.UserID)
	if err != nil {
		return nil, err
	}
	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = s.toResponse(&courses[i])
	}
	return responses, nil
}

// CreateCourse 讲师或管理员创建课程，初始状态 draft
func (s *CourseService) CreateCourse(actor *util.Claims, req CourseRequest) (*CourseResponse, error) {
	if actor.Role != model.Instructor && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		if _, err := s.CategoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, util.ErrCategoryNotFound
		}
	}
	if req.Price < 0 {
		return nil, util.ValidationErr("price must not be negative")
	}

	slug, err := s.uniqueSlug(req.Title, "")
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:           req.Title,
		Slug:            slug,
		Description:     req.Description,
		PreviewVideoURL: req.PreviewVideoURL,
		Price:           req.Price,
		IsFree:          req.IsFree,
		Status:          model.CourseDraft,
		InstructorID:    actor.UserID,
		CategoryID:      req.CategoryID,
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}

	resp := s.toResponse(course)
	return &resp, nil
}

// UpdateCourse 标题变化时重新生成 slug
func (s *CourseService) UpdateCourse(actor *util.Claims, slug string, req CourseRequest) (*CourseResponse, error) {
	course, err := s.findCourseBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(actor, course) {
		return nil, util.ErrPermissionDenied
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		if _, err := s.CategoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, util.ErrCategoryNotFound
		}
	}
	if req.Price < 0 {
		return nil, util.ValidationErr("price must not be negative")
	}

	if req.Title != course.Title {
		newSlug, err := s.uniqueSlug(req.Title, course.ID)
		if err != nil {
			return nil, err
		}
		course.Slug = newSlug
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Price = req.Price
	course.IsFree = req.IsFree
	course.CategoryID = req.CategoryID
	course.PreviewVideoURL = req.PreviewVideoURL

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache()
	resp := s.toResponse(course)
	return &resp, nil
}

// DeleteCourse 仅管理员，课程下的模块、课时、附件、评论、报名记录级联删除
func (s *CourseService) DeleteCourse(actor *util.Claims, courseID string) error {
	if actor.Role != model.Admin {
		return util.ErrPermissionDenied
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCourseNotFound
	}
	if err != nil {
		return err
	}

	if err := s.CourseRepo.Delete(course.ID); err != nil {
		return err
	}

	s.invalidateCatalogCache()
	return nil
}

func (s *CourseService) SetThumbnail(actor *util.Claims, slug, url string) (*CourseResponse, error) {
	course, err := s.GetManagedCourse(actor, slug)
	if err != nil {
		return nil, err
	}

	course.ThumbnailURL = url
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache()
	resp := s.toResponse(course)
	return &resp, nil
}

// SubmitForReview 讲师提交审核：draft/rejected → pending。
// 被驳回的课程允许直接重新提交，不必退回 draft。
func (s *CourseService) SubmitForReview(actor *util.Claims, slug string) (*CourseResponse, error) {
	course, err := s.findCourseBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(actor, course) {
		return nil, util.ErrPermissionDenied
	}

	switch course.Status {
	case model.CourseDraft, model.CourseRejected:
	default:
		return nil, util.TransitionErr("cannot submit course in status %q for review", course.Status)
	}

	updated, err := s.CourseRepo.UpdateStatus(course.ID, course.Status, model.CoursePending)
	if err != nil {
		return nil, err
	}
	if !updated {
		// 并发下状态已被别的请求改掉
		return nil, util.TransitionErr("course status changed, submit not applicable anymore")
	}

	course.Status = model.CoursePending
	monitoring.PublicationCounter.WithLabelValues(string(model.CoursePending)).Inc()

	resp := s.toResponse(course)
	return &resp, nil
}

// ApproveCourse 管理员审批通过：pending → published。
// 对已发布课程重复审批是幂等的成功，不报错。
func (s *CourseService) ApproveCourse(actor *util.Claims, courseID string) (*CourseResponse, error) {
	return s.review(actor, courseID, model.CoursePublished)
}

// RejectCourse 管理员驳回：pending → rejected，同样幂等
func (s *CourseService) RejectCourse(actor *util.Claims, courseID string) (*CourseResponse, error) {
	return s.review(actor, courseID, model.CourseRejected)
}

func (s *CourseService) review(actor *util.Claims, courseID string, to model.CourseStatus) (*CourseResponse, error) {
	if actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if course.Status == to {
		// 幂等：重复审批/驳回视为成功
		resp := s.toResponse(course)
		return &resp, nil
	}
	if course.Status != model.CoursePending {
		return nil, util.TransitionErr("cannot move course from %q to %q", course.Status, to)
	}

	updated, err := s.CourseRepo.UpdateStatus(course.ID, model.CoursePending, to)
	if err != nil {
		return nil, err
	}
	if !updated {
		// 条件更新失败说明状态已被并发修改，重读后按幂等规则判定
		course, err = s.CourseRepo.FindByID(courseID)
		if err != nil {
			return nil, err
		}
		if course.Status != to {
			return nil, util.TransitionErr("cannot move course from %q to %q", course.Status, to)
		}
	}

	course.Status = to
	monitoring.PublicationCounter.WithLabelValues(string(to)).Inc()
	s.invalidateCatalogCache()

	resp := s.toResponse(course)
	return &resp, nil
}

// ListPendingCourses 管理后台的待审核队列
func (s *CourseService) ListPendingCourses(actor *util.Claims) ([]CourseResponse, error) {
	if actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	courses, err := s.CourseRepo.FindByStatus(model.CoursePending)
	if err != nil {
		return nil, err
	}
	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = s.toResponse(&courses[i])
	}
	return responses, nil
}

func (s *CourseService) findCourseBySlug(slug string) (*model.Course, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// uniqueSlug 由标题生成 slug，冲突时追加数字后缀；唯一索引仍是最终保障
func (s *CourseService) uniqueSlug(title, excludeID string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "course-" + model.GenerateUUID()[:8]
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.CourseRepo.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// canManageCourse 课程讲师本人或管理员
func canManageCourse(actor *util.Claims, course *model.Course) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case model.Admin:
		return true
	case model.Instructor:
		return actor.UserID == course.InstructorID
	default:
		return false
	}
}
