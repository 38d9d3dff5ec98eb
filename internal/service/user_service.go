package service

import (
	"errors"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/repository"
	"skillspire_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewUserService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *UserService {
	return &UserService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

type ProfileUpdateRequest struct {
	FullName string `json:"fullName" binding:"max=100"`
	Bio      string `json:"bio"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.Profile, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, util.ErrUserNotFound
	}

	if req.FullName != "" {
		user.Profile.FullName = req.FullName
	}
	user.Profile.Bio = req.Bio

	if err := s.UserRepo.UpdateProfile(user.Profile); err != nil {
		return nil, err
	}
	return user.Profile, nil
}

func (s *UserService) UpdateAvatar(userID uint, avatarURL string) (*model.Profile, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, util.ErrUserNotFound
	}

	user.Profile.AvatarURL = avatarURL
	if err := s.UserRepo.UpdateProfile(user.Profile); err != nil {
		return nil, err
	}
	return user.Profile, nil
}

func (s *UserService) GetUsers(page, limit int, search string) ([]model.User, int64, error) {
	offset := (page - 1) * limit
	return s.UserRepo.FindWithPagination(offset, limit, search)
}

// UpdateUserRole 管理员调整用户角色
func (s *UserService) UpdateUserRole(userID uint, role model.UserRole) error {
	switch role {
	case model.Admin, model.Instructor, model.Student:
	default:
		return util.ValidationErr("unknown role: %s", role)
	}

	if _, err := s.GetUser(userID); err != nil {
		return err
	}
	return s.UserRepo.UpdateRole(userID, role)
}

type PlatformStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalCourses     int64 `json:"totalCourses"`
	TotalEnrollments int64 `json:"totalEnrollments"`
	PendingCourses   int64 `json:"pendingCourses"`
}

// GetPlatformStats 管理后台首页的平台概览
func (s *UserService) GetPlatformStats() (*PlatformStats, error) {
	users, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.Count()
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.Count()
	if err != nil {
		return nil, err
	}
	pending, err := s.CourseRepo.CountByStatus(model.CoursePending)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalUsers:       users,
		TotalCourses:     courses,
		TotalEnrollments: enrollments,
		PendingCourses:   pending,
	}, nil
}
