package repository

import (
	"testing"
	"time"

	"edu_quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProgressRepository_MarkLessonComplete(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)
	enroll(t, db, "stu-1", f.course)
	repo := NewProgressRepository(db)
	ctx := t.Context()

	created, err := repo.MarkLessonComplete(ctx, "stu-1", &f.vids[0], time.Now())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.MarkLessonComplete(ctx, "stu-1", &f.vids[0], time.Now())
	require.NoError(t, err)
	assert.False(t, created, "second completion is a no-op")

	p, err := repo.ReadProgress(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	sp, ok := p.Section(f.video.ID)
	require.True(t, ok)
	assert.Equal(t, 1, sp.CompletedLessons)
	assert.Equal(t, 2, sp.TotalLessons)
	assert.Equal(t, 50, sp.Percentage)
	// 1 of 6 lessons across the course
	assert.Equal(t, 17, p.OverallPercentage)
	assert.Zero(t, p.CompletedSections)

	_, err = repo.MarkLessonComplete(ctx, "stu-1", &f.vids[1], time.Now())
	require.NoError(t, err)
	p, err = repo.ReadProgress(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CompletedSections)
	assert.Equal(t, 33, p.OverallPercentage)
}

func TestProgressRepository_MarkLessonCompleteRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)

	_, err := NewProgressRepository(db).MarkLessonComplete(t.Context(), "stranger", &f.vids[0], time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&model.LessonCompletion{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProgressRepository_ApplyQuizCompletion(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)
	enroll(t, db, "stu-1", f.course)
	repo := NewProgressRepository(db)
	ctx := t.Context()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.ApplyQuizCompletion(ctx, "stu-1", f.course.ID, f.quiz.ID, model.QuizCompletion{
		QuizCompleted: true, QuizScore: 75, QuizPassed: true, CompletedAt: at,
	}))

	p, err := repo.ReadProgress(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	sp, ok := p.Section(f.quiz.ID)
	require.True(t, ok)
	assert.True(t, sp.QuizCompleted)
	assert.True(t, sp.QuizPassed)
	assert.Equal(t, 75.0, sp.QuizScore)
	assert.Equal(t, 4, sp.CompletedLessons)
	assert.Equal(t, 100, sp.Percentage)
	require.NotNil(t, sp.CompletedAt)
	assert.Equal(t, 1, p.CompletedSections)
	assert.Equal(t, 67, p.OverallPercentage)

	// second pass keeps the counter
	require.NoError(t, repo.ApplyQuizCompletion(ctx, "stu-1", f.course.ID, f.quiz.ID, model.QuizCompletion{
		QuizCompleted: true, QuizScore: 100, QuizPassed: true, CompletedAt: at.Add(time.Hour),
	}))
	// a failing result changes nothing
	require.NoError(t, repo.ApplyQuizCompletion(ctx, "stu-1", f.course.ID, f.quiz.ID, model.QuizCompletion{
		QuizScore: 10,
	}))

	p, err = repo.ReadProgress(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	sp, _ = p.Section(f.quiz.ID)
	assert.Equal(t, 100.0, sp.QuizScore)
	assert.True(t, sp.QuizCompleted)
	assert.Equal(t, 1, p.CompletedSections)
}

func TestProgressRepository_ApplyQuizCompletionWithoutProgress(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)

	err := NewProgressRepository(db).ApplyQuizCompletion(t.Context(), "stranger", f.course.ID, f.quiz.ID,
		model.QuizCompletion{QuizCompleted: true, QuizPassed: true, QuizScore: 80, CompletedAt: time.Now()})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProgressRepository_ListByStudent(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)
	enroll(t, db, "stu-1", f.course)
	enroll(t, db, "stu-2", f.course)

	list, err := NewProgressRepository(db).ListByStudent(t.Context(), "stu-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
