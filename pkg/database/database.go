package database

import (
	"fmt"
	"log"
	"skillspire_backend/internal/config"
	"skillspire_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dc := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dc.User,
		dc.Password,
		dc.Host,
		dc.Port,
		dc.DBName,
		dc.Charset,
		dc.ParseTime,
	)

	logLevel := logger.Info
	if cfg.Server.Mode == "release" {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式下迁移需要 --migrate 显式触发
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		seedDefaults(db)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Category{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.LessonAttachment{},
		&model.Enrollment{},
		&model.LessonCompletion{},
		&model.Comment{},
	)
}

// seedDefaults 空库时写入默认账号和默认分类
func seedDefaults(db *gorm.DB) {
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		defaultUsers := []struct {
			Name  string
			Email string
			Role  model.UserRole
		}{
			{Name: "Admin User", Email: "admin@skillspire.dev", Role: model.Admin},
			{Name: "Editor User", Email: "editor@skillspire.dev", Role: model.Instructor},
			{Name: "Basic User", Email: "user@skillspire.dev", Role: model.Student},
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("seed users skipped: %v", err)
			return
		}
		for _, u := range defaultUsers {
			user := &model.User{Name: u.Name, Email: u.Email, Password: string(hashed)}
			if err := db.Create(user).Error; err != nil {
				continue
			}
			db.Create(&model.Profile{
				UserID:   user.ID,
				FullName: u.Name,
				Role:     u.Role,
			})
		}
	}

	var catCount int64
	db.Model(&model.Category{}).Count(&catCount)
	if catCount == 0 {
		defaultCategories := []model.Category{
			{Name: "Web Development", Slug: "web-development", Description: "HTML/CSS/JavaScript 与主流前后端框架"},
			{Name: "Data Science", Slug: "data-science", Description: "数据分析、可视化与机器学习入门"},
			{Name: "Design", Slug: "design", Description: "UI/UX 与平面设计"},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}
}
