package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/quiz"
	"edu_quiz_backend/internal/util"
	"edu_quiz_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizService_FullAttempt(t *testing.T) {
	cfg := testQuizConfig()
	cfg.ArchiveAttempts = true
	svc := newServices(t, cfg)
	f := seed(t, svc)
	ctx := t.Context()

	_, _, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)

	snap, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateInProgress, snap.State)
	assert.Equal(t, 60, snap.DurationSeconds)
	require.Len(t, snap.Questions, 4)

	// A B C correct, last one wrong
	for i, idx := range []int{0, 1, 2, 0} {
		res, err := svc.quiz.Answer("stu-1", f.course.ID, f.quiz.ID, snap.Questions[i].ID, idx)
		require.NoError(t, err)
		assert.Equal(t, i < 3, res.Correct)
	}

	_, err = svc.quiz.Answer("stu-1", f.course.ID, f.quiz.ID, "nope", 0)
	assert.ErrorIs(t, err, quiz.ErrUnknownQuestion)
	_, err = svc.quiz.Answer("stu-1", f.course.ID, f.quiz.ID, snap.Questions[0].ID, 7)
	assert.ErrorIs(t, err, quiz.ErrInvalidOption)

	moved, err := svc.quiz.Next("stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.CurrentIndex)
	moved, err = svc.quiz.Goto("stu-1", f.course.ID, f.quiz.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, moved.CurrentIndex)
	moved, err = svc.quiz.Prev("stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.CurrentIndex)

	done, err := svc.quiz.Submit(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateCompleted, done.State)
	require.NotNil(t, done.Result)
	assert.Equal(t, 3, done.Result.CorrectCount)
	assert.Equal(t, 75.0, done.Result.Percentage)
	assert.True(t, done.Result.Passed)
	require.NotEmpty(t, done.AttemptID)

	// 完成的会话仍可查看
	again, err := svc.quiz.Get("stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, done.AttemptID, again.AttemptID)

	view, err := svc.progress.CourseProgress(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, view.OverallPercentage)
	assert.Equal(t, 1, view.CompletedSections)
	sp, ok := view.Section(f.quiz.ID)
	require.True(t, ok)
	assert.True(t, sp.QuizPassed)
	assert.Equal(t, 75.0, sp.QuizScore)

	latest, err := svc.quiz.LatestAttempt(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, done.AttemptID, latest.ID)
	assert.Len(t, latest.Answers, 4)

	page, err := svc.quiz.ListAttempts(ctx, "stu-1", f.course.ID, f.quiz.ID, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)

	require.NoError(t, svc.quiz.Shutdown(context.Background()))
	_, err = os.Stat(filepath.Join(svc.storageDir, "attempts", "stu-1", done.AttemptID+".json"))
	assert.NoError(t, err, "attempt receipt archived")

	// 重考会创建新会话
	retake, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateInProgress, retake.State)
	assert.Zero(t, retake.AnsweredCount)
}

func TestQuizService_FailedAttemptLeavesProgress(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()

	_, _, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	snap, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	_, err = svc.quiz.Answer("stu-1", f.course.ID, f.quiz.ID, snap.Questions[0].ID, 0)
	require.NoError(t, err)

	done, err := svc.quiz.Submit(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.False(t, done.Result.Passed)
	assert.Equal(t, 25.0, done.Result.Percentage)

	view, err := svc.progress.CourseProgress(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.Zero(t, view.OverallPercentage)
	assert.Zero(t, view.CompletedSections)

	_, err = svc.quiz.LatestAttempt(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
}

func TestQuizService_FailedRetakeKeepsCompletion(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()

	_, _, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)

	snap, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	for i, q := range snap.Questions {
		_, err := svc.quiz.Answer("stu-1", f.course.ID, f.quiz.ID, q.ID, i)
		require.NoError(t, err)
	}
	passed, err := svc.quiz.Submit(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	require.True(t, passed.Result.Passed)

	retake, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	_, err = svc.quiz.Answer("stu-1", f.course.ID, f.quiz.ID, retake.Questions[0].ID, 0)
	require.NoError(t, err)
	failed, err := svc.quiz.Submit(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	require.False(t, failed.Result.Passed)
	assert.NotEqual(t, passed.AttemptID, failed.AttemptID)

	view, err := svc.progress.CourseProgress(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.CompletedSections)
	assert.Equal(t, 67, view.OverallPercentage)
	sp, ok := view.Section(f.quiz.ID)
	require.True(t, ok)
	assert.True(t, sp.QuizCompleted)
	assert.True(t, sp.QuizPassed)
	assert.Equal(t, 100.0, sp.QuizScore)
	assert.Equal(t, 100, sp.Percentage)

	latest, err := svc.quiz.LatestAttempt(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, failed.AttemptID, latest.ID)
	page, err := svc.quiz.ListAttempts(ctx, "stu-1", f.course.ID, f.quiz.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
}

type unreachableReader struct{}

func (unreachableReader) GetSection(context.Context, string, string) (*model.Section, error) {
	return nil, errors.New("connection refused")
}

func (unreachableReader) GetLessons(context.Context, string, string) ([]model.Lesson, error) {
	return nil, errors.New("connection refused")
}

func TestQuizService_LoadFailureReleasesSession(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()

	_, _, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)

	reader := svc.quiz.Reader
	svc.quiz.Reader = unreachableReader{}
	active := testutil.ToFloat64(monitoring.QuizSessionsActive)

	_, err = svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	assert.ErrorIs(t, err, quiz.ErrLoadFailure)
	assert.Equal(t, active, testutil.ToFloat64(monitoring.QuizSessionsActive))
	_, err = svc.quiz.Get("stu-1", f.course.ID, f.quiz.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	svc.quiz.Reader = reader
	snap, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateInProgress, snap.State)
	assert.Equal(t, active+1, testutil.ToFloat64(monitoring.QuizSessionsActive))

	require.NoError(t, svc.quiz.Abandon("stu-1", f.course.ID, f.quiz.ID))
	assert.Equal(t, active, testutil.ToFloat64(monitoring.QuizSessionsActive))
}

func TestQuizService_StartGuards(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()

	_, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, _, err = svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)

	_, err = svc.quiz.Start(ctx, "stu-1", f.course.ID, f.video.ID)
	assert.ErrorIs(t, err, util.ErrNotQuizSection)

	_, err = svc.quiz.Start(ctx, "stu-1", f.course.ID, "missing")
	assert.ErrorIs(t, err, util.ErrSectionNotFound)

	_, err = svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	_, err = svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	assert.ErrorIs(t, err, util.ErrSessionActive)

	_, err = svc.quiz.Get("stu-2", f.course.ID, f.quiz.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestQuizService_EmptySection(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()
	_, _, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)

	snap, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.empty.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateEmpty, snap.State)
	assert.Empty(t, snap.Questions)

	_, err = svc.quiz.Submit(ctx, "stu-1", f.course.ID, f.empty.ID)
	assert.ErrorIs(t, err, quiz.ErrInvalidTransition)
}

func TestQuizService_Abandon(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()
	_, _, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)

	_, err = svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	require.NoError(t, svc.quiz.Abandon("stu-1", f.course.ID, f.quiz.ID))

	_, err = svc.quiz.Get("stu-1", f.course.ID, f.quiz.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = svc.quiz.LatestAttempt(ctx, "stu-1", f.course.ID, f.quiz.ID)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	snap, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateInProgress, snap.State)
}

func TestQuizService_TimeoutSubmitsAutomatically(t *testing.T) {
	cfg := testQuizConfig()
	cfg.TickInterval = time.Millisecond
	svc := newServices(t, cfg)
	f := seed(t, svc)
	ctx := t.Context()
	_, _, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)

	snap, err := svc.quiz.Start(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	_, _ = svc.quiz.Answer("stu-1", f.course.ID, f.quiz.ID, snap.Questions[0].ID, 0)

	require.Eventually(t, func() bool {
		s, err := svc.quiz.Get("stu-1", f.course.ID, f.quiz.ID)
		return err == nil && s.State == quiz.StateCompleted
	}, 5*time.Second, 10*time.Millisecond)

	latest, err := svc.quiz.LatestAttempt(ctx, "stu-1", f.course.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.True(t, latest.TimedOut)
	assert.Equal(t, 60, latest.TimeSpentSeconds)
	assert.Equal(t, 4, latest.TotalQuestions)
}
