package service

import (
	"context"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/repository"
	"edu_quiz_backend/internal/util"
	"edu_quiz_backend/pkg/logger"
	"edu_quiz_backend/pkg/monitoring"
	"edu_quiz_backend/pkg/tracing"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	ContentRepo    *repository.ContentRepository
	now            func() time.Time
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	contentRepo *repository.ContentRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		ContentRepo:    contentRepo,
		now:            time.Now,
	}
}

// EnrolledCourse 已报名课程及其总体进度
type EnrolledCourse struct {
	model.Enrollment
	OverallPercentage int `json:"overallPercentage"`
	CompletedSections int `json:"completedSections"`
	TotalSections     int `json:"totalSections"`
}

// Enroll 报名课程并初始化进度。重复报名返回已有记录且 already 为 true。
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID string) (enrollment *model.Enrollment, already bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "enrollment.enroll", studentID, "")
	defer func() { tracing.EndSpan(span, err) }()

	course, err := s.ContentRepo.GetCourse(ctx, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		monitoring.Enrollments.WithLabelValues("not_found").Inc()
		return nil, false, util.ErrCourseNotFound
	}
	if err != nil {
		monitoring.Enrollments.WithLabelValues("error").Inc()
		return nil, false, err
	}

	existing, err := s.EnrollmentRepo.FindByStudentAndCourse(ctx, studentID, courseID)
	if err == nil {
		monitoring.Enrollments.WithLabelValues("already").Inc()
		return existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		monitoring.Enrollments.WithLabelValues("error").Inc()
		return nil, false, err
	}

	enrollment = &model.Enrollment{
		StudentID:   studentID,
		CourseID:    courseID,
		EnrolledAt:  s.now(),
		CourseTitle: course.Title,
		Instructor:  course.Instructor,
		Duration:    course.Duration,
	}
	progress := &model.Progress{
		StudentID: studentID,
		CourseID:  courseID,
	}
	if err := s.EnrollmentRepo.CreateWithProgress(ctx, enrollment, progress); err != nil {
		// 并发报名时唯一索引冲突，回读已存在的记录
		if existing, findErr := s.EnrollmentRepo.FindByStudentAndCourse(ctx, studentID, courseID); findErr == nil {
			monitoring.Enrollments.WithLabelValues("already").Inc()
			return existing, true, nil
		}
		monitoring.Enrollments.WithLabelValues("error").Inc()
		return nil, false, err
	}

	monitoring.Enrollments.WithLabelValues("created").Inc()
	logger.Log.Info("student enrolled",
		zap.String("student_id", studentID),
		zap.String("course_id", courseID))
	return enrollment, false, nil
}

func (s *EnrollmentService) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	return s.EnrollmentRepo.Exists(ctx, studentID, courseID)
}

// RequireEnrollment 未报名时返回 util.ErrNotEnrolled
func (s *EnrollmentService) RequireEnrollment(ctx context.Context, studentID, courseID string) error {
	ok, err := s.IsEnrolled(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrNotEnrolled
	}
	return nil
}

// ListEnrolled 已报名课程，最近报名在前
func (s *EnrollmentService) ListEnrolled(ctx context.Context, studentID string) ([]EnrolledCourse, error) {
	enrollments, err := s.EnrollmentRepo.ReadEnrollments(ctx, studentID)
	if err != nil {
		return nil, err
	}
	records, err := s.ProgressRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	byCourse := make(map[string]model.Progress, len(records))
	for _, p := range records {
		byCourse[p.CourseID] = p
	}

	list := make([]EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		item := EnrolledCourse{Enrollment: e}
		if p, ok := byCourse[e.CourseID]; ok {
			item.OverallPercentage = p.OverallPercentage
			item.CompletedSections = p.CompletedSections
		}
		if course, err := s.ContentRepo.GetCourse(ctx, e.CourseID); err == nil {
			item.TotalSections = course.TotalSections
		}
		list = append(list, item)
	}
	return list, nil
}

// ListAvailable 学生尚未报名的课程
func (s *EnrollmentService) ListAvailable(ctx context.Context, studentID string) ([]model.Course, error) {
	courses, err := s.ContentRepo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.ReadEnrollments(ctx, studentID)
	if err != nil {
		return nil, err
	}
	enrolled := make(map[string]struct{}, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.CourseID] = struct{}{}
	}

	available := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if _, ok := enrolled[c.ID]; !ok {
			available = append(available, c)
		}
	}
	return available, nil
}
