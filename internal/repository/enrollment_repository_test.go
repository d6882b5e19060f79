package repository

import (
	"testing"

	"edu_quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentRepository_CreateWithProgress(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)
	repo := NewEnrollmentRepository(db)
	ctx := t.Context()

	ok, err := repo.Exists(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	enroll(t, db, "stu-1", f.course)

	ok, err = repo.Exists(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := NewProgressRepository(db).ReadProgress(ctx, "stu-1", f.course.ID)
	require.NoError(t, err)
	assert.Zero(t, p.OverallPercentage)
	assert.Empty(t, p.Sections)

	list, err := repo.ReadEnrollments(ctx, "stu-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEnrollmentRepository_UniquePair(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db)
	enroll(t, db, "stu-1", f.course)

	repo := NewEnrollmentRepository(db)
	err := repo.CreateWithProgress(t.Context(),
		&model.Enrollment{StudentID: "stu-1", CourseID: f.course.ID},
		&model.Progress{StudentID: "stu-1", CourseID: f.course.ID})
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Progress{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "failed transaction leaves no second progress")
}
