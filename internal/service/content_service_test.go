package service

import (
	"encoding/json"
	"testing"

	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentService_Counters(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()

	course, err := svc.content.GetCourse(ctx, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, course.TotalSections)

	quiz, err := svc.content.GetSection(ctx, f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, quiz.LessonsCount)
	assert.Equal(t, 4, quiz.TotalQuestions)
	assert.Equal(t, model.DefaultPassingScore, quiz.PassingScore)
	assert.Equal(t, 1, quiz.DurationMinutes)

	video, err := svc.content.GetSection(ctx, f.course.ID, f.video.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, video.LessonsCount)
	assert.Zero(t, video.TotalQuestions)

	sections, err := svc.content.ListSections(ctx, f.course.ID)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, f.video.ID, sections[0].ID)
	assert.Equal(t, f.empty.ID, sections[2].ID)
}

func TestContentService_Validation(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()

	_, err := svc.content.CreateSection(ctx, f.course.ID, CreateSectionReq{Title: "x", Type: "podcast"})
	assert.Error(t, err)

	tooHigh := 101
	_, err = svc.content.CreateSection(ctx, f.course.ID, CreateSectionReq{Title: "x", Type: model.SectionQuiz, PassingScore: &tooHigh})
	assert.Error(t, err)

	_, err = svc.content.CreateSection(ctx, "missing", CreateSectionReq{Title: "x", Type: model.SectionQuiz})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	three, _ := json.Marshal([]string{"a", "b", "c"})
	_, err = svc.content.CreateLesson(ctx, f.course.ID, f.quiz.ID, CreateLessonReq{Title: "bad", Type: "quiz", Options: three})
	assert.Error(t, err)

	_, err = svc.content.CreateLesson(ctx, f.course.ID, "missing", CreateLessonReq{Title: "v", Type: "video"})
	assert.ErrorIs(t, err, util.ErrSectionNotFound)

	_, err = svc.content.GetCourse(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
