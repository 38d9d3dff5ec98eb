package service

import (
	"fmt"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/repository"
	"skillspire_backend/internal/util"
	"skillspire_backend/pkg/database"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	users       *repository.UserRepository
	courseRepo  *repository.CourseRepository
	courses     *CourseService
	curriculum  *CurriculumService
	enrollments *EnrollmentService
	comments    *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", model.GenerateUUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	return &testEnv{
		db:          db,
		users:       userRepo,
		courseRepo:  courseRepo,
		courses:     NewCourseService(courseRepo, categoryRepo, lessonRepo, enrollmentRepo, nil),
		curriculum:  NewCurriculumService(courseRepo, moduleRepo, lessonRepo),
		enrollments: NewEnrollmentService(enrollmentRepo, courseRepo, lessonRepo),
		comments:    NewCommentService(commentRepo, lessonRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, name string, role model.UserRole) *util.Claims {
	t.Helper()

	user := &model.User{Name: name, Email: name + "@example.com", Password: "hashed"}
	profile := &model.Profile{FullName: name, Role: role}
	if err := e.users.CreateWithProfile(user, profile); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return &util.Claims{UserID: user.ID, Role: role, Email: user.Email}
}

func (e *testEnv) createCourse(t *testing.T, owner *util.Claims, title string) *CourseResponse {
	t.Helper()

	course, err := e.courses.CreateCourse(owner, CourseRequest{Title: title, IsFree: true})
	if err != nil {
		t.Fatalf("create course %q: %v", title, err)
	}
	return course
}

func (e *testEnv) publishCourse(t *testing.T, owner, admin *util.Claims, slug string) *CourseResponse {
	t.Helper()

	course, err := e.courses.SubmitForReview(owner, slug)
	if err != nil {
		t.Fatalf("submit course %q: %v", slug, err)
	}
	course, err = e.courses.ApproveCourse(admin, course.ID)
	if err != nil {
		t.Fatalf("approve course %q: %v", slug, err)
	}
	return course
}

// addLessons 给课程挂一个模块和 count 个课时，返回课时 ID
func (e *testEnv) addLessons(t *testing.T, owner *util.Claims, courseSlug string, count int) []string {
	t.Helper()

	module, err := e.curriculum.CreateModule(owner, courseSlug, ModuleRequest{Title: "Module 1"})
	if err != nil {
		t.Fatalf("create module: %v", err)
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		lesson, err := e.curriculum.CreateLesson(owner, module.ID, LessonRequest{
			Title:      fmt.Sprintf("Lesson %d", i+1),
			OrderIndex: i,
		})
		if err != nil {
			t.Fatalf("create lesson %d: %v", i+1, err)
		}
		ids = append(ids, lesson.ID)
	}
	return ids
}

func (e *testEnv) courseStatus(t *testing.T, courseID string) model.CourseStatus {
	t.Helper()

	course, err := e.courseRepo.FindByID(courseID)
	if err != nil {
		t.Fatalf("reload course: %v", err)
	}
	return course.Status
}
