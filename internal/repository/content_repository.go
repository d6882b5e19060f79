package repository

import (
	"context"
	"edu_quiz_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

// ContentRepository 课程/章节/课时的读写
type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).Order("title ASC").Find(&courses).Error
	return courses, err
}

func (r *ContentRepository) GetCourse(ctx context.Context, courseID string) (*model.Course, error) {
	var course model.Course
	if err := r.DB.WithContext(ctx).Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *ContentRepository) GetSection(ctx context.Context, courseID, sectionID string) (*model.Section, error) {
	var section model.Section
	err := r.DB.WithContext(ctx).
		Where("id = ? AND course_id = ?", sectionID, courseID).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// ListSections 按 order、title 稳定排序
func (r *ContentRepository) ListSections(ctx context.Context, courseID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Find(&sections).Error
	if err != nil {
		return nil, err
	}
	model.SortSections(sections)
	return sections, nil
}

// GetLessons 按插入顺序返回，时间相同时按 ID；题目排序交给调用方
func (r *ContentRepository) GetLessons(ctx context.Context, courseID, sectionID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.WithContext(ctx).
		Where("course_id = ? AND section_id = ?", courseID, sectionID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *ContentRepository) GetLesson(ctx context.Context, courseID, sectionID, lessonID string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).
		Where("id = ? AND course_id = ? AND section_id = ?", lessonID, courseID, sectionID).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *ContentRepository) CreateCourse(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

// CreateSection 同时维护课程的章节计数
func (r *ContentRepository) CreateSection(ctx context.Context, section *model.Section) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Course{}).
			Where("id = ?", section.CourseID).
			Update("total_sections", gorm.Expr("total_sections + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(section).Error
	})
}

// CreateLesson 同时维护章节的课时数与题目数
func (r *ContentRepository) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"lessons_count": gorm.Expr("lessons_count + 1"),
		}
		if strings.EqualFold(lesson.Type, model.LessonTypeQuiz) {
			updates["total_questions"] = gorm.Expr("total_questions + 1")
		}

		res := tx.Model(&model.Section{}).
			Where("id = ? AND course_id = ?", lesson.SectionID, lesson.CourseID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(lesson).Error
	})
}
