package repository

import (
	"context"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/progress"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// ReadProgress 读取课程进度及各章节进度
func (r *ProgressRepository) ReadProgress(ctx context.Context, studentID, courseID string) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.WithContext(ctx).
		Preload("Sections").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Progress, error) {
	var list []model.Progress
	err := r.DB.WithContext(ctx).
		Preload("Sections").
		Where("student_id = ?", studentID).
		Find(&list).Error
	return list, err
}

// MarkLessonComplete 记录课时完成并刷新章节与课程百分比；重复完成返回 false
func (r *ProgressRepository) MarkLessonComplete(ctx context.Context, studentID string, lesson *model.Lesson, at time.Time) (bool, error) {
	created := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProgress(tx, studentID, lesson.CourseID)
		if err != nil {
			return err
		}

		var existing model.LessonCompletion
		err = tx.Where("student_id = ? AND lesson_id = ?", studentID, lesson.ID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		completion := &model.LessonCompletion{
			StudentID:   studentID,
			LessonID:    lesson.ID,
			CourseID:    lesson.CourseID,
			SectionID:   lesson.SectionID,
			CompletedAt: at,
		}
		if err := tx.Create(completion).Error; err != nil {
			return err
		}
		created = true

		section, err := findSection(tx, lesson.CourseID, lesson.SectionID)
		if err != nil {
			return err
		}
		sp, err := findOrInitSectionProgress(tx, p, section.ID)
		if err != nil {
			return err
		}

		var done int64
		if err := tx.Model(&model.LessonCompletion{}).
			Where("student_id = ? AND section_id = ?", studentID, section.ID).
			Count(&done).Error; err != nil {
			return err
		}

		wasComplete := isSectionDone(sp)
		sp.TotalLessons = section.LessonsCount
		sp.CompletedLessons = max(sp.CompletedLessons, int(done))
		*sp = progress.Normalize(*sp)
		if err := tx.Save(sp).Error; err != nil {
			return err
		}

		if !wasComplete && isSectionDone(sp) && !section.IsAssessment() {
			p.CompletedSections++
		}
		return recomputeOverall(tx, p)
	})
	return created, err
}

// ApplyQuizCompletion 写入测验通过信息。首次通过时课程已完成章节数加一；
// 未通过的结果不会修改任何进度。
func (r *ProgressRepository) ApplyQuizCompletion(ctx context.Context, studentID, courseID, sectionID string, c model.QuizCompletion) error {
	if !c.QuizPassed {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProgress(tx, studentID, courseID)
		if err != nil {
			return err
		}
		section, err := findSection(tx, courseID, sectionID)
		if err != nil {
			return err
		}
		sp, err := findOrInitSectionProgress(tx, p, sectionID)
		if err != nil {
			return err
		}

		firstPass := !sp.QuizPassed
		completedAt := c.CompletedAt

		sp.TotalLessons = section.LessonsCount
		sp.CompletedLessons = section.LessonsCount
		sp.QuizCompleted = true
		sp.QuizPassed = true
		sp.QuizScore = c.QuizScore
		sp.CompletedAt = &completedAt
		*sp = progress.Normalize(*sp)
		if err := tx.Save(sp).Error; err != nil {
			return err
		}

		if firstPass {
			p.CompletedSections++
		}
		return recomputeOverall(tx, p)
	})
}

func findProgress(tx *gorm.DB, studentID, courseID string) (*model.Progress, error) {
	var p model.Progress
	err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func findSection(tx *gorm.DB, courseID, sectionID string) (*model.Section, error) {
	var s model.Section
	if err := tx.Where("id = ? AND course_id = ?", sectionID, courseID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func findOrInitSectionProgress(tx *gorm.DB, p *model.Progress, sectionID string) (*model.SectionProgress, error) {
	var sp model.SectionProgress
	err := tx.Where("student_id = ? AND course_id = ? AND section_id = ?", p.StudentID, p.CourseID, sectionID).
		First(&sp).Error
	if err == nil {
		return &sp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &model.SectionProgress{
		ProgressID: p.ID,
		StudentID:  p.StudentID,
		CourseID:   p.CourseID,
		SectionID:  sectionID,
	}, nil
}

func isSectionDone(sp *model.SectionProgress) bool {
	return sp.TotalLessons > 0 && sp.CompletedLessons >= sp.TotalLessons
}

// recomputeOverall 按课程当前章节重新计算总体百分比
func recomputeOverall(tx *gorm.DB, p *model.Progress) error {
	var sections []model.Section
	if err := tx.Where("course_id = ?", p.CourseID).Find(&sections).Error; err != nil {
		return err
	}
	var sps []model.SectionProgress
	if err := tx.Where("progress_id = ?", p.ID).Find(&sps).Error; err != nil {
		return err
	}

	p.Sections = sps
	merged := progress.Merge(*p, sections)
	p.Sections = nil
	p.OverallPercentage = merged.OverallPercentage

	return tx.Model(&model.Progress{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"overall_percentage": p.OverallPercentage,
		"completed_sections": p.CompletedSections,
	}).Error
}
