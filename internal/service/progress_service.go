package service

import (
	"context"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/progress"
	"edu_quiz_backend/internal/repository"
	"edu_quiz_backend/internal/util"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo   *repository.ProgressRepository
	ContentRepo    *repository.ContentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	now            func() time.Time
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	contentRepo *repository.ContentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		ContentRepo:    contentRepo,
		EnrollmentRepo: enrollmentRepo,
		now:            time.Now,
	}
}

// SectionWithProgress 章节列表项，附带学生在该章节的进度徽标
type SectionWithProgress struct {
	model.Section
	Progress model.SectionProgress `json:"progress"`
	Complete bool                  `json:"complete"`
}

// CourseProgressView 课程进度，章节按课程当前章节对齐
type CourseProgressView struct {
	model.Progress
	Complete bool `json:"complete"`
}

// CourseProgress 未报名时返回 util.ErrNotEnrolled
func (s *ProgressService) CourseProgress(ctx context.Context, studentID, courseID string) (*CourseProgressView, error) {
	if _, err := s.ContentRepo.GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	p, err := s.ProgressRepo.ReadProgress(ctx, studentID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	sections, err := s.ContentRepo.ListSections(ctx, courseID)
	if err != nil {
		return nil, err
	}

	merged := progress.Merge(*p, sections)
	return &CourseProgressView{
		Progress: merged,
		Complete: progress.IsCourseComplete(merged),
	}, nil
}

// SectionsWithProgress 课程章节列表；未报名的学生看到全部为零的进度
func (s *ProgressService) SectionsWithProgress(ctx context.Context, studentID, courseID string) ([]SectionWithProgress, error) {
	if _, err := s.ContentRepo.GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	sections, err := s.ContentRepo.ListSections(ctx, courseID)
	if err != nil {
		return nil, err
	}

	stored := model.Progress{StudentID: studentID, CourseID: courseID}
	p, err := s.ProgressRepo.ReadProgress(ctx, studentID, courseID)
	switch {
	case err == nil:
		stored = *p
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	merged := progress.Merge(stored, sections)
	list := make([]SectionWithProgress, len(sections))
	for i, section := range sections {
		sp := merged.Sections[i]
		list[i] = SectionWithProgress{
			Section:  section,
			Progress: sp,
			Complete: sp.Percentage == 100,
		}
	}
	return list, nil
}

// MarkLessonComplete 记录课时完成；返回刷新后的课程进度以及是否为首次完成
func (s *ProgressService) MarkLessonComplete(ctx context.Context, studentID, courseID, sectionID, lessonID string) (*CourseProgressView, bool, error) {
	enrolled, err := s.EnrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, util.ErrNotEnrolled
	}

	lesson, err := s.ContentRepo.GetLesson(ctx, courseID, sectionID, lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, false, err
	}
	section, err := s.ContentRepo.GetSection(ctx, courseID, sectionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, util.ErrSectionNotFound
	}
	if err != nil {
		return nil, false, err
	}
	// 测验章节只能通过提交测验完成
	if section.IsAssessment() || strings.EqualFold(lesson.Type, model.LessonTypeQuiz) {
		return nil, false, util.ErrAssessmentLesson
	}

	created, err := s.ProgressRepo.MarkLessonComplete(ctx, studentID, lesson, s.now())
	if err != nil {
		return nil, false, err
	}
	view, err := s.CourseProgress(ctx, studentID, courseID)
	if err != nil {
		return nil, false, err
	}
	return view, created, nil
}

// DashboardStats 汇总学生全部已报名课程的进度
func (s *ProgressService) DashboardStats(ctx context.Context, studentID string) (progress.Stats, error) {
	records, err := s.ProgressRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return progress.Stats{}, err
	}
	for i, p := range records {
		sections, err := s.ContentRepo.ListSections(ctx, p.CourseID)
		if err != nil {
			return progress.Stats{}, err
		}
		records[i] = progress.Merge(p, sections)
	}
	return progress.DashboardStats(records), nil
}
