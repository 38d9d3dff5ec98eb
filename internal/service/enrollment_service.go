package service

import (
	"errors"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/repository"
	"skillspire_backend/internal/util"
	"skillspire_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
	}
}

// Enroll 报名已发布课程。未发布课程对学生不可见，报名时同样按不存在处理
func (s *EnrollmentService) Enroll(userID uint, courseSlug string) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindBySlug(courseSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotFound
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, course.ID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
		Progress:   0,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		// 唯一索引兜底并发重复报名
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	monitoring.EnrollmentCounter.Inc()
	return enrollment, nil
}

func (s *EnrollmentService) GetMyEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindByUser(userID)
}

type ProgressResponse struct {
	Enrollment         *model.Enrollment `json:"enrollment"`
	CompletedLessonIDs []string          `json:"completedLessonIds"`
}

func (s *EnrollmentService) GetProgress(userID uint, courseSlug string) (*ProgressResponse, error) {
	course, err := s.CourseRepo.FindBySlug(courseSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, course.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}

	ids, err := s.EnrollmentRepo.CompletedLessonIDs(enrollment.ID)
	if err != nil {
		return nil, err
	}
	return &ProgressResponse{Enrollment: enrollment, CompletedLessonIDs: ids}, nil
}

// MarkLessonComplete 标记课时完成并重算进度，只允许本人对已报名课程的课时操作
func (s *EnrollmentService) MarkLessonComplete(userID uint, lessonID string) (*model.Enrollment, error) {
	courseID, err := s.LessonRepo.CourseIDOf(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.EnrollmentRepo.MarkLessonComplete(enrollment.ID, lessonID, courseID)
}
