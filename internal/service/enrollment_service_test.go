package service

import (
	"testing"

	"edu_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentService_Enroll(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()

	e, already, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, "Go Basics", e.CourseTitle)
	assert.Equal(t, "Ada", e.Instructor)

	again, already, err := svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, e.ID, again.ID)

	ok, err := svc.enrollment.IsEnrolled(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = svc.enrollment.Enroll(ctx, "stu-1", "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	assert.ErrorIs(t, svc.enrollment.RequireEnrollment(ctx, "stu-2", f.course.ID), util.ErrNotEnrolled)
}

func TestEnrollmentService_Lists(t *testing.T) {
	svc := newServices(t, testQuizConfig())
	f := seed(t, svc)
	ctx := t.Context()

	other, err := svc.content.CreateCourse(ctx, CreateCourseReq{Title: "Rust Basics"})
	require.NoError(t, err)

	available, err := svc.enrollment.ListAvailable(ctx, "stu-1")
	require.NoError(t, err)
	assert.Len(t, available, 2)

	_, _, err = svc.enrollment.Enroll(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)

	available, err = svc.enrollment.ListAvailable(ctx, "stu-1")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, other.ID, available[0].ID)

	enrolled, err := svc.enrollment.ListEnrolled(ctx, "stu-1")
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, f.course.ID, enrolled[0].CourseID)
	assert.Zero(t, enrolled[0].OverallPercentage)
	assert.Equal(t, 3, enrolled[0].TotalSections)
}
