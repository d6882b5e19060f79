package repository

import (
	"testing"
	"time"

	"edu_quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestContentRepository_Counters(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)
	repo := NewContentRepository(db)

	course, err := repo.GetCourse(t.Context(), f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, course.TotalSections)

	assert.Equal(t, 2, f.video.LessonsCount)
	assert.Equal(t, 0, f.video.TotalQuestions)
	assert.Equal(t, 4, f.quiz.LessonsCount)
	assert.Equal(t, 4, f.quiz.TotalQuestions)
}

func TestContentRepository_ListSectionsSorted(t *testing.T) {
	db := newTestDB(t)
	repo := NewContentRepository(db)
	ctx := t.Context()

	course := &model.Course{Title: "Sorting"}
	require.NoError(t, repo.CreateCourse(ctx, course))
	for _, s := range []model.Section{
		{CourseID: course.ID, Title: "Zeta", Order: 1},
		{CourseID: course.ID, Title: "Alpha", Order: 2},
		{CourseID: course.ID, Title: "Beta", Order: 1},
	} {
		s := s
		require.NoError(t, repo.CreateSection(ctx, &s))
	}

	sections, err := repo.ListSections(ctx, course.ID)
	require.NoError(t, err)
	titles := []string{sections[0].Title, sections[1].Title, sections[2].Title}
	assert.Equal(t, []string{"Beta", "Zeta", "Alpha"}, titles)
}

func TestContentRepository_RejectsOrphans(t *testing.T) {
	db := newTestDB(t)
	repo := NewContentRepository(db)
	ctx := t.Context()

	err := repo.CreateSection(ctx, &model.Section{CourseID: "missing", Title: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.CreateLesson(ctx, &model.Lesson{CourseID: "missing", SectionID: "missing"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContentRepository_GetLessonsAndSection(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)
	repo := NewContentRepository(db)

	lessons, err := repo.GetLessons(t.Context(), f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Len(t, lessons, 4)

	_, err = repo.GetSection(t.Context(), "other-course", f.quiz.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	l, err := repo.GetLesson(t.Context(), f.course.ID, f.video.ID, f.vids[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Video 0", l.Title)
}

func TestContentRepository_GetLessonsSameTimestamp(t *testing.T) {
	db := newTestDB(t)
	repo := NewContentRepository(db)
	ctx := t.Context()

	course := &model.Course{Title: "Ties"}
	require.NoError(t, repo.CreateCourse(ctx, course))
	section := &model.Section{CourseID: course.ID, Title: "Quiz", Type: model.SectionQuiz}
	require.NoError(t, repo.CreateSection(ctx, section))

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"lesson-c", "lesson-a", "lesson-b"} {
		l := &model.Lesson{
			UUIDBase:  model.UUIDBase{ID: id, CreatedAt: at, UpdatedAt: at},
			CourseID:  course.ID,
			SectionID: section.ID,
			Type:      model.LessonTypeQuiz,
		}
		require.NoError(t, repo.CreateLesson(ctx, l))
	}

	for i := 0; i < 3; i++ {
		lessons, err := repo.GetLessons(ctx, course.ID, section.ID)
		require.NoError(t, err)
		require.Len(t, lessons, 3)
		assert.Equal(t, []string{"lesson-a", "lesson-b", "lesson-c"},
			[]string{lessons[0].ID, lessons[1].ID, lessons[2].ID})
	}
}

func TestCachedContentReader_WithoutRedis(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)
	reader := NewCachedContentReader(NewContentRepository(db), nil, 0)

	s, err := reader.GetSection(t.Context(), f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checkpoint", s.Title)

	lessons, err := reader.GetLessons(t.Context(), f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Len(t, lessons, 4)

	reader.Invalidate(t.Context(), f.course.ID, f.quiz.ID)
	reader.SetTTL(0)
	assert.Zero(t, reader.TTL())
}
