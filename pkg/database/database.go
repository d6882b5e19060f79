package database

import (
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式下仅在显式指定 -migrate 时迁移
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		if err := Seed(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate 创建或更新全部数据表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Progress{},
		&model.SectionProgress{},
		&model.LessonCompletion{},
		&model.QuizAttempt{},
		&model.QuizAttemptAnswer{},
	)
}

// Seed 空库时写入一门示例课程（含一个测验章节）
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		course := &model.Course{
			Title:         "Go 语言入门",
			Instructor:    "Edu Quiz Team",
			Duration:      "2h 30m",
			Description:   "从零开始学习 Go 语言基础语法",
			TotalSections: 2,
		}
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		intro := &model.Section{CourseID: course.ID, Title: "课程介绍", Type: model.SectionVideo, Order: 1, LessonsCount: 1}
		check := &model.Section{CourseID: course.ID, Title: "基础测验", Type: model.SectionQuiz, Order: 2,
			PassingScore: model.DefaultPassingScore, DurationMinutes: 10, LessonsCount: 2, TotalQuestions: 2}
		if err := tx.Create(intro).Error; err != nil {
			return err
		}
		if err := tx.Create(check).Error; err != nil {
			return err
		}

		lessons := []model.Lesson{
			{CourseID: course.ID, SectionID: intro.ID, Title: "欢迎", Type: model.LessonTypeVideo, Order: 1},
			{CourseID: course.ID, SectionID: check.ID, Title: "关键字", Type: model.LessonTypeQuiz, Order: 1,
				Content:       "Which keyword starts a goroutine?",
				Options:       datatypes.JSON(`["go","defer","chan","select"]`),
				CorrectAnswer: "A"},
			{CourseID: course.ID, SectionID: check.ID, Title: "零值", Type: model.LessonTypeQuiz, Order: 2,
				Content:       "What is the zero value of a slice?",
				Options:       datatypes.JSON(`["[]","nil","0","undefined"]`),
				CorrectAnswer: "B"},
		}
		return tx.Create(&lessons).Error
	})
}
