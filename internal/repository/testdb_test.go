package repository

import (
	"edu_quiz_backend/internal/model"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试独立的内存 SQLite
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

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

type fixture struct {
	course *model.Course
	video  *model.Section
	quiz   *model.Section
	vids   []model.Lesson
	qs     []model.Lesson
}

// seedCourse 一门课程：视频章节 2 个课时，测验章节 4 道题
func seedCourse(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	repo := NewContentRepository(db)
	ctx := t.Context()

	f := fixture{course: &model.Course{Title: "Go Basics", Instructor: "Ada", Duration: "3h"}}
	require.NoError(t, repo.CreateCourse(ctx, f.course))

	f.video = &model.Section{CourseID: f.course.ID, Title: "Intro", Type: model.SectionVideo, Order: 1}
	f.quiz = &model.Section{CourseID: f.course.ID, Title: "Checkpoint", Type: model.SectionQuiz, Order: 2, PassingScore: 70}
	require.NoError(t, repo.CreateSection(ctx, f.video))
	require.NoError(t, repo.CreateSection(ctx, f.quiz))

	for i := 0; i < 2; i++ {
		l := model.Lesson{CourseID: f.course.ID, SectionID: f.video.ID, Title: fmt.Sprintf("Video %d", i), Type: model.LessonTypeVideo, Order: i}
		require.NoError(t, repo.CreateLesson(ctx, &l))
		f.vids = append(f.vids, l)
	}
	for i, label := range []string{"A", "B", "C", "D"} {
		l := model.Lesson{
			CourseID:      f.course.ID,
			SectionID:     f.quiz.ID,
			Title:         fmt.Sprintf("Q%d", i),
			Type:          model.LessonTypeQuiz,
			Content:       "prompt",
			Options:       datatypes.JSON(`["w","x","y","z"]`),
			CorrectAnswer: label,
			Order:         i,
		}
		require.NoError(t, repo.CreateLesson(ctx, &l))
		f.qs = append(f.qs, l)
	}

	// 重新读取计数
	var err error
	f.video, err = repo.GetSection(ctx, f.course.ID, f.video.ID)
	require.NoError(t, err)
	f.quiz, err = repo.GetSection(ctx, f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	return f
}

// enroll 直接写入报名与空进度
func enroll(t *testing.T, db *gorm.DB, studentID string, course *model.Course) {
	t.Helper()
	repo := NewEnrollmentRepository(db)
	require.NoError(t, repo.CreateWithProgress(t.Context(),
		&model.Enrollment{StudentID: studentID, CourseID: course.ID, CourseTitle: course.Title},
		&model.Progress{StudentID: studentID, CourseID: course.ID}))
}
