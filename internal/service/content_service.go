package service

import (
	"context"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/repository"
	"edu_quiz_backend/internal/util"
	"edu_quiz_backend/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentService 课程目录查询与管理员内容录入
type ContentService struct {
	ContentRepo *repository.ContentRepository
	Cache       *repository.CachedContentReader
}

func NewContentService(contentRepo *repository.ContentRepository, cache *repository.CachedContentReader) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		Cache:       cache,
	}
}

type CreateCourseReq struct {
	Title       string `json:"title" binding:"required"`
	Instructor  string `json:"instructor"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type CreateSectionReq struct {
	Title           string            `json:"title" binding:"required"`
	Type            model.SectionType `json:"type" binding:"required"`
	Order           int               `json:"order"`
	PassingScore    *int              `json:"passingScore"`
	DurationMinutes *int              `json:"durationMinutes"`
}

type CreateLessonReq struct {
	Title         string          `json:"title" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	Content       string          `json:"content"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
	Order         int             `json:"order"`
	MaxScore      *int            `json:"maxScore"`
}

func (s *ContentService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.ContentRepo.ListCourses(ctx)
}

func (s *ContentService) GetCourse(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.ContentRepo.GetCourse(ctx, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *ContentService) GetSection(ctx context.Context, courseID, sectionID string) (*model.Section, error) {
	section, err := s.ContentRepo.GetSection(ctx, courseID, sectionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSectionNotFound
	}
	return section, err
}

func (s *ContentService) ListSections(ctx context.Context, courseID string) ([]model.Section, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.ContentRepo.ListSections(ctx, courseID)
}

func (s *ContentService) CreateCourse(ctx context.Context, req CreateCourseReq) (*model.Course, error) {
	course := &model.Course{
		Title:       strings.TrimSpace(req.Title),
		Instructor:  req.Instructor,
		Duration:    req.Duration,
		Description: req.Description,
	}
	if course.Title == "" {
		return nil, errors.New("title is required")
	}
	if err := s.ContentRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	logger.Log.Info("course created", zap.String("course_id", course.ID))
	return course, nil
}

func (s *ContentService) CreateSection(ctx context.Context, courseID string, req CreateSectionReq) (*model.Section, error) {
	switch req.Type {
	case model.SectionVideo, model.SectionDocument, model.SectionQuiz, model.SectionTest:
	default:
		return nil, fmt.Errorf("unsupported section type %q", req.Type)
	}

	section := &model.Section{
		CourseID:        courseID,
		Title:           strings.TrimSpace(req.Title),
		Type:            req.Type,
		Order:           req.Order,
		PassingScore:    model.DefaultPassingScore,
		DurationMinutes: model.DefaultDurationMinutes,
	}
	if req.PassingScore != nil {
		if *req.PassingScore < 0 || *req.PassingScore > 100 {
			return nil, errors.New("passingScore must be between 0 and 100")
		}
		section.PassingScore = *req.PassingScore
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, errors.New("durationMinutes must be positive")
		}
		section.DurationMinutes = *req.DurationMinutes
	}

	err := s.ContentRepo.CreateSection(ctx, section)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return section, nil
}

// CreateLesson 测验课时必须带 4 个选项（数组），正确答案为 A-D 或选项原文
func (s *ContentService) CreateLesson(ctx context.Context, courseID, sectionID string, req CreateLessonReq) (*model.Lesson, error) {
	lessonType := strings.ToLower(strings.TrimSpace(req.Type))
	switch lessonType {
	case model.LessonTypeVideo, model.LessonTypeDocument, model.LessonTypeQuiz:
	default:
		return nil, fmt.Errorf("unsupported lesson type %q", req.Type)
	}

	lesson := &model.Lesson{
		CourseID:      courseID,
		SectionID:     sectionID,
		Title:         strings.TrimSpace(req.Title),
		Type:          lessonType,
		Content:       req.Content,
		CorrectAnswer: strings.TrimSpace(req.CorrectAnswer),
		Order:         req.Order,
		MaxScore:      req.MaxScore,
	}

	if lessonType == model.LessonTypeQuiz {
		var options []string
		if err := json.Unmarshal(req.Options, &options); err != nil || len(options) != len(model.OptionLabels) {
			return nil, fmt.Errorf("quiz lessons need exactly %d options", len(model.OptionLabels))
		}
		lesson.Options = datatypes.JSON(req.Options)
	} else if len(req.Options) > 0 {
		lesson.Options = datatypes.JSON(req.Options)
	}

	err := s.ContentRepo.CreateLesson(ctx, lesson)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Invalidate(ctx, courseID, sectionID)
	}
	return lesson, nil
}
