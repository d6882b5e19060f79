package repository

import (
	"context"
	"edu_quiz_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// FindByStudentAndCourse 未报名时返回 gorm.ErrRecordNotFound
func (r *EnrollmentRepository) FindByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateWithProgress 在同一事务中创建报名记录和初始进度
func (r *EnrollmentRepository) CreateWithProgress(ctx context.Context, enrollment *model.Enrollment, progress *model.Progress) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(enrollment).Error; err != nil {
			return err
		}
		return tx.Create(progress).Error
	})
}

// ReadEnrollments 学生的全部报名，最近报名在前
func (r *EnrollmentRepository) ReadEnrollments(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("enrolled_at DESC").
		Find(&list).Error
	return list, err
}

func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	_, err := r.FindByStudentAndCourse(ctx, studentID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
