package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCourseNotFound     = errors.New("course not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrNotQuizSection     = errors.New("section is not a quiz or test")
	ErrAssessmentLesson   = errors.New("quiz questions are completed by submitting the quiz")
	ErrNotEnrolled        = errors.New("not enrolled in course")
	ErrSessionActive      = errors.New("a quiz session is already active for this section")
	ErrSessionNotFound    = errors.New("no quiz session for this section")
	ErrAttemptNotFound    = errors.New("attempt not found")
)
