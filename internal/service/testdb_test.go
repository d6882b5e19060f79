package service

import (
	"context"
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/repository"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

// services 测试用的完整服务组合，Redis 关闭
type services struct {
	db         *gorm.DB
	content    *ContentService
	enrollment *EnrollmentService
	progress   *ProgressService
	quiz       *QuizService
	storageDir string
}

func newServices(t *testing.T, quizCfg config.QuizConfig) *services {
	t.Helper()
	db := newTestDB(t)

	contentRepo := repository.NewContentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	attemptRepo := repository.NewAttemptRepository(db, progressRepo)
	reader := repository.NewCachedContentReader(contentRepo, nil, 0)

	dir := t.TempDir()
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: dir}})

	svc := &services{
		db:         db,
		content:    NewContentService(contentRepo, reader),
		enrollment: NewEnrollmentService(enrollmentRepo, progressRepo, contentRepo),
		progress:   NewProgressService(progressRepo, contentRepo, enrollmentRepo),
		quiz:       NewQuizService(reader, attemptRepo, contentRepo, enrollmentRepo, storage, quizCfg),
		storageDir: dir,
	}
	t.Cleanup(func() { _ = svc.quiz.Shutdown(context.Background()) })
	return svc
}

func testQuizConfig() config.QuizConfig {
	return config.QuizConfig{
		DefaultDurationMinutes: 30,
		DefaultPassingScore:    70,
		TickInterval:           time.Second,
	}
}

type courseFixture struct {
	course *model.Course
	video  *model.Section
	quiz   *model.Section
	empty  *model.Section
	vids   []*model.Lesson
	qs     []*model.Lesson
}

// seed 视频章节 2 课时；测验章节 4 题，正确答案依次为 A B C D，限时 1 分钟
func seed(t *testing.T, svc *services) courseFixture {
	t.Helper()
	ctx := t.Context()
	var f courseFixture
	var err error

	f.course, err = svc.content.CreateCourse(ctx, CreateCourseReq{Title: "Go Basics", Instructor: "Ada", Duration: "3h"})
	require.NoError(t, err)

	one := 1
	f.video, err = svc.content.CreateSection(ctx, f.course.ID, CreateSectionReq{Title: "Intro", Type: model.SectionVideo, Order: 1})
	require.NoError(t, err)
	f.quiz, err = svc.content.CreateSection(ctx, f.course.ID, CreateSectionReq{Title: "Checkpoint", Type: model.SectionQuiz, Order: 2, DurationMinutes: &one})
	require.NoError(t, err)
	f.empty, err = svc.content.CreateSection(ctx, f.course.ID, CreateSectionReq{Title: "Coming soon", Type: model.SectionTest, Order: 3})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		l, err := svc.content.CreateLesson(ctx, f.course.ID, f.video.ID, CreateLessonReq{
			Title: fmt.Sprintf("Video %d", i),
			Type:  model.LessonTypeVideo,
			Order: i,
		})
		require.NoError(t, err)
		f.vids = append(f.vids, l)
	}

	options, _ := json.Marshal([]string{"w", "x", "y", "z"})
	for i, label := range []string{"A", "B", "C", "D"} {
		l, err := svc.content.CreateLesson(ctx, f.course.ID, f.quiz.ID, CreateLessonReq{
			Title:         fmt.Sprintf("Q%d", i),
			Type:          model.LessonTypeQuiz,
			Content:       fmt.Sprintf("question %d", i),
			Options:       options,
			CorrectAnswer: label,
			Order:         i,
		})
		require.NoError(t, err)
		f.qs = append(f.qs, l)
	}
	return f
}
