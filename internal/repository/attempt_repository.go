package repository

import (
	"context"
	"edu_quiz_backend/internal/model"

	"gorm.io/gorm"
)

// AttemptRepository 测验记录只追加写入；通过后的进度更新委托给 ProgressRepository
type AttemptRepository struct {
	DB       *gorm.DB
	Progress *ProgressRepository
}

func NewAttemptRepository(db *gorm.DB, progressRepo *ProgressRepository) *AttemptRepository {
	return &AttemptRepository{DB: db, Progress: progressRepo}
}

func (r *AttemptRepository) WriteAttempt(ctx context.Context, studentID, courseID, sectionID string, record model.AttemptRecord) (string, error) {
	res := record.Result
	attempt := &model.QuizAttempt{
		StudentID:        studentID,
		CourseID:         courseID,
		SectionID:        sectionID,
		CorrectCount:     res.CorrectCount,
		TotalQuestions:   res.TotalQuestions,
		Percentage:       res.Percentage,
		PassingScore:     res.PassingScore,
		Passed:           res.Passed,
		TimedOut:         record.TimedOut,
		SubmittedAt:      record.SubmittedAt,
		TimeSpentSeconds: record.TimeSpentSeconds,
		Answers:          make([]model.QuizAttemptAnswer, 0, len(res.Answers)),
	}
	for i, a := range res.Answers {
		attempt.Answers = append(attempt.Answers, model.QuizAttemptAnswer{
			Position:      i,
			QuestionID:    a.QuestionID,
			SelectedLabel: a.SelectedLabel,
			CorrectLabel:  a.CorrectLabel,
			IsCorrect:     a.IsCorrect,
		})
	}

	// 关联的答题明细随主记录在同一事务内创建
	if err := r.DB.WithContext(ctx).Create(attempt).Error; err != nil {
		return "", err
	}
	return attempt.ID, nil
}

func (r *AttemptRepository) UpdateSectionProgress(ctx context.Context, studentID, courseID, sectionID string, c model.QuizCompletion) error {
	return r.Progress.ApplyQuizCompletion(ctx, studentID, courseID, sectionID, c)
}

// ListAttempts 按提交时间倒序分页
func (r *AttemptRepository) ListAttempts(ctx context.Context, studentID, courseID, sectionID string, page, limit int) ([]model.QuizAttempt, int64, error) {
	var (
		list  []model.QuizAttempt
		total int64
	)
	scope := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
			Where("student_id = ? AND course_id = ? AND section_id = ?", studentID, courseID, sectionID)
	}
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := scope().Order("submitted_at DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}

// LatestAttempt 当前展示用的最近一次测验（含答题明细）
func (r *AttemptRepository) LatestAttempt(ctx context.Context, studentID, courseID, sectionID string) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("student_id = ? AND course_id = ? AND section_id = ?", studentID, courseID, sectionID).
		Order("submitted_at DESC, created_at DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) FindByID(ctx context.Context, studentID, attemptID string) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ? AND student_id = ?", attemptID, studentID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}
