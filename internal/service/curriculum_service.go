package service

import (
	"errors"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/repository"
	"skillspire_backend/internal/util"

	"gorm.io/gorm"
)

// CurriculumService 管理课程大纲：模块、课时和课时附件
type CurriculumService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
}

func NewCurriculumService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
) *CurriculumService {
	return &CurriculumService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
	}
}

type ModuleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

type LessonRequest struct {
	Title           string `json:"title" binding:"required,max=255"`
	Content         string `json:"content"`
	VideoURL        string `json:"videoUrl"`
	DurationMinutes int    `json:"durationMinutes"`
	OrderIndex      int    `json:"orderIndex"`
	IsPreview       bool   `json:"isPreview"`
}

func (s *CurriculumService) authorizeCourse(actor *util.Claims, courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if !canManageCourse(actor, course) {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CurriculumService) courseBySlug(slug string) (*model.Course, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CurriculumService) findModule(id string) (*model.CourseModule, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	return module, err
}

func (s *CurriculumService) findLesson(id string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

// authorizeLesson 课时 → 模块 → 课程逐级回溯做讲师/管理员校验
func (s *CurriculumService) authorizeLesson(actor *util.Claims, lessonID string) (*model.Lesson, error) {
	lesson, err := s.findLesson(lessonID)
	if err != nil {
		return nil, err
	}
	module, err := s.findModule(lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeCourse(actor, module.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

// GetManagedLesson 校验当前用户能管理该课时后返回课时。
// 视频、附件这类先写存储再落库的操作在上传前调用，避免权限不过时留下孤儿对象
func (s *CurriculumService) GetManagedLesson(actor *util.Claims, lessonID string) (*model.Lesson, error) {
	return s.authorizeLesson(actor, lessonID)
}

func (s *CurriculumService) GetModules(courseSlug string) ([]model.CourseModule, error) {
	course, err := s.courseBySlug(courseSlug)
	if err != nil {
		return nil, err
	}
	return s.ModuleRepo.FindByCourse(course.ID)
}

func (s *CurriculumService) CreateModule(actor *util.Claims, courseSlug string, req ModuleRequest) (*model.CourseModule, error) {
	course, err := s.courseBySlug(courseSlug)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(actor, course) {
		return nil, util.ErrPermissionDenied
	}

	module := &model.CourseModule{
		CourseID:    course.ID,
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *CurriculumService) UpdateModule(actor *util.Claims, moduleID string, req ModuleRequest) (*model.CourseModule, error) {
	module, err := s.findModule(moduleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeCourse(actor, module.CourseID); err != nil {
		return nil, err
	}

	module.Title = req.Title
	module.Description = req.Description
	module.OrderIndex = req.OrderIndex

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule 模块及其课时、附件、讨论和完成记录级联删除
func (s *CurriculumService) DeleteModule(actor *util.Claims, moduleID string) error {
	module, err := s.findModule(moduleID)
	if err != nil {
		return err
	}
	if _, err := s.authorizeCourse(actor, module.CourseID); err != nil {
		return err
	}
	return s.ModuleRepo.Delete(moduleID)
}

func (s *CurriculumService) GetLesson(id string) (*model.Lesson, error) {
	return s.findLesson(id)
}

func (s *CurriculumService) CreateLesson(actor *util.Claims, moduleID string, req LessonRequest) (*model.Lesson, error) {
	module, err := s.findModule(moduleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeCourse(actor, module.CourseID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		ModuleID:        moduleID,
		Title:           req.Title,
		Content:         req.Content,
		VideoURL:        req.VideoURL,
		DurationMinutes: req.DurationMinutes,
		OrderIndex:      req.OrderIndex,
		IsPreview:       req.IsPreview,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CurriculumService) UpdateLesson(actor *util.Claims, lessonID string, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.authorizeLesson(actor, lessonID)
	if err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.VideoURL = req.VideoURL
	lesson.DurationMinutes = req.DurationMinutes
	lesson.OrderIndex = req.OrderIndex
	lesson.IsPreview = req.IsPreview

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CurriculumService) DeleteLesson(actor *util.Claims, lessonID string) error {
	if _, err := s.authorizeLesson(actor, lessonID); err != nil {
		return err
	}
	return s.LessonRepo.Delete(lessonID)
}

// SetLessonVideo 上传完成后回填视频地址和探测出的时长
func (s *CurriculumService) SetLessonVideo(actor *util.Claims, lessonID, videoURL string, durationMinutes int) (*model.Lesson, error) {
	lesson, err := s.authorizeLesson(actor, lessonID)
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = videoURL
	if durationMinutes > 0 {
		lesson.DurationMinutes = durationMinutes
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CurriculumService) AddAttachment(actor *util.Claims, lessonID string, attachment *model.LessonAttachment) (*model.LessonAttachment, error) {
	if _, err := s.authorizeLesson(actor, lessonID); err != nil {
		return nil, err
	}

	attachment.LessonID = lessonID
	if err := s.LessonRepo.CreateAttachment(attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *CurriculumService) DeleteAttachment(actor *util.Claims, attachmentID string) error {
	attachment, err := s.LessonRepo.FindAttachment(attachmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NotFoundErr("attachment not found")
	}
	if err != nil {
		return err
	}

	if _, err := s.authorizeLesson(actor, attachment.LessonID); err != nil {
		return err
	}
	return s.LessonRepo.DeleteAttachment(attachmentID)
}
