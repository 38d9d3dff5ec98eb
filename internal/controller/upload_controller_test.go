package controller

import (
	"bytes"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"skillspire_backend/internal/config"
	"skillspire_backend/internal/model"
	"skillspire_backend/internal/repository"
	"skillspire_backend/internal/service"
	"skillspire_backend/internal/util"
	"skillspire_backend/pkg/database"
	"skillspire_backend/pkg/logger"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type uploadEnv struct {
	db         *gorm.DB
	storageDir string
	users      *repository.UserRepository
	storage    *service.StorageService
	courses    *service.CourseService
	curriculum *service.CurriculumService
}

func newUploadEnv(t *testing.T) *uploadEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

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

	storageDir := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = storageDir

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	return &uploadEnv{
		db:         db,
		storageDir: storageDir,
		users:      userRepo,
		storage:    service.NewStorageService(cfg),
		courses:    service.NewCourseService(courseRepo, categoryRepo, lessonRepo, enrollmentRepo, nil),
		curriculum: service.NewCurriculumService(courseRepo, moduleRepo, lessonRepo),
	}
}

func (e *uploadEnv) createUser(t *testing.T, name string, role model.UserRole) *util.Claims {
	t.Helper()

	user := &model.User{Name: name, Email: name + "@example.com", Password: "hashed"}
	profile := &model.Profile{FullName: name, Role: role}
	if err := e.users.CreateWithProfile(user, profile); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return &util.Claims{UserID: user.ID, Role: role, Email: user.Email}
}

// storedFiles 列出存储目录下的全部文件，用来断言失败的上传没有留下孤儿对象
func (e *uploadEnv) storedFiles(t *testing.T) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(e.storageDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk storage dir: %v", err)
	}
	return files
}

func uploadContext(t *testing.T, claims *util.Claims, field, filename string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("file-bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	ctx.Request = req
	ctx.Params = params
	ctx.Set("user", claims)
	return ctx, rec
}

func TestThumbnailUploadDeniedLeavesNoFile(t *testing.T) {
	env := newUploadEnv(t)
	owner := env.createUser(t, "sari", model.Instructor)
	intruder := env.createUser(t, "budi", model.Instructor)

	course, err := env.courses.CreateCourse(owner, service.CourseRequest{Title: "Belajar Go", IsFree: true})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	ctrl := NewCourseController(env.courses, env.storage)
	ctx, rec := uploadContext(t, intruder, "thumbnail", "cover.png", gin.Params{{Key: "slug", Value: course.Slug}})

	ctrl.UploadThumbnail(ctx)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if files := env.storedFiles(t); len(files) != 0 {
		t.Errorf("storage not empty after denied upload: %v", files)
	}
}

func TestThumbnailReplaceRemovesOldFile(t *testing.T) {
	env := newUploadEnv(t)
	owner := env.createUser(t, "sari", model.Instructor)

	course, err := env.courses.CreateCourse(owner, service.CourseRequest{Title: "Belajar Go", IsFree: true})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	ctrl := NewCourseController(env.courses, env.storage)
	params := gin.Params{{Key: "slug", Value: course.Slug}}

	ctx, rec := uploadContext(t, owner, "thumbnail", "first.png", params)
	ctrl.UploadThumbnail(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("first upload status = %d, want %d", rec.Code, http.StatusOK)
	}
	first := env.storedFiles(t)
	if len(first) != 1 {
		t.Fatalf("stored files after first upload = %d, want 1", len(first))
	}

	ctx, rec = uploadContext(t, owner, "thumbnail", "second.png", params)
	ctrl.UploadThumbnail(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("second upload status = %d, want %d", rec.Code, http.StatusOK)
	}

	second := env.storedFiles(t)
	if len(second) != 1 {
		t.Fatalf("stored files after replace = %d, want 1 (old thumbnail must be removed)", len(second))
	}
	if second[0] == first[0] {
		t.Errorf("thumbnail file %q was not replaced", second[0])
	}
}

func TestAttachmentUploadDeniedLeavesNoFile(t *testing.T) {
	env := newUploadEnv(t)
	owner := env.createUser(t, "sari", model.Instructor)
	intruder := env.createUser(t, "budi", model.Instructor)

	course, err := env.courses.CreateCourse(owner, service.CourseRequest{Title: "Belajar Go", IsFree: true})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	module, err := env.curriculum.CreateModule(owner, course.Slug, service.ModuleRequest{Title: "Module 1"})
	if err != nil {
		t.Fatalf("create module: %v", err)
	}
	lesson, err := env.curriculum.CreateLesson(owner, module.ID, service.LessonRequest{Title: "Lesson 1"})
	if err != nil {
		t.Fatalf("create lesson: %v", err)
	}

	ctrl := NewLessonController(env.curriculum, env.storage)
	ctx, rec := uploadContext(t, intruder, "file", "notes.pdf", gin.Params{{Key: "id", Value: lesson.ID}})

	ctrl.UploadAttachment(ctx)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if files := env.storedFiles(t); len(files) != 0 {
		t.Errorf("storage not empty after denied upload: %v", files)
	}
}

func TestVideoUploadDeniedLeavesNoFile(t *testing.T) {
	env := newUploadEnv(t)
	owner := env.createUser(t, "sari", model.Instructor)
	intruder := env.createUser(t, "budi", model.Instructor)

	course, err := env.courses.CreateCourse(owner, service.CourseRequest{Title: "Belajar Go", IsFree: true})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	module, err := env.curriculum.CreateModule(owner, course.Slug, service.ModuleRequest{Title: "Module 1"})
	if err != nil {
		t.Fatalf("create module: %v", err)
	}
	lesson, err := env.curriculum.CreateLesson(owner, module.ID, service.LessonRequest{Title: "Lesson 1"})
	if err != nil {
		t.Fatalf("create lesson: %v", err)
	}

	ctrl := NewLessonController(env.curriculum, env.storage)
	ctx, rec := uploadContext(t, intruder, "video", "intro.mp4", gin.Params{{Key: "id", Value: lesson.ID}})

	ctrl.UploadVideo(ctx)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if files := env.storedFiles(t); len(files) != 0 {
		t.Errorf("storage not empty after denied upload: %v", files)
	}
}
