package service

import (
	"context"
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/quiz"
	"edu_quiz_backend/internal/repository"
	"edu_quiz_backend/internal/util"
	"edu_quiz_backend/pkg/logger"
	"edu_quiz_backend/pkg/monitoring"
	"edu_quiz_backend/pkg/tracing"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const archiveTimeout = 30 * time.Second

// QuizService 管理进行中的测验会话，每个学生每个章节最多一个
type QuizService struct {
	Reader         quiz.ContentReader
	Store          quiz.AttemptStore
	AttemptRepo    *repository.AttemptRepository
	ContentRepo    *repository.ContentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Storage        *StorageService

	cfgMu sync.RWMutex
	cfg   config.QuizConfig

	mu       sync.Mutex
	sessions map[string]*quiz.Session
	archives sync.WaitGroup
}

func NewQuizService(
	reader quiz.ContentReader,
	attemptRepo *repository.AttemptRepository,
	contentRepo *repository.ContentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	storage *StorageService,
	cfg config.QuizConfig,
) *QuizService {
	return &QuizService{
		Reader:         reader,
		Store:          attemptRepo,
		AttemptRepo:    attemptRepo,
		ContentRepo:    contentRepo,
		EnrollmentRepo: enrollmentRepo,
		Storage:        storage,
		cfg:            cfg.Sanitized(),
		sessions:       make(map[string]*quiz.Session),
	}
}

// UpdateConfig 热更新；只影响之后开始的会话
func (s *QuizService) UpdateConfig(cfg config.QuizConfig) {
	s.cfgMu.Lock()
	s.cfg = cfg.Sanitized()
	s.cfgMu.Unlock()
}

func (s *QuizService) Config() config.QuizConfig {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

func sessionKey(studentID, courseID, sectionID string) string {
	return studentID + "|" + courseID + "|" + sectionID
}

// Start 开始一次测验。加载失败的会话已被移除，再次调用即重新开始。
// 已有进行中的会话时返回 util.ErrSessionActive；已结束的会话会被新会话替换。
// 章节没有题目时返回 state 为 empty 的快照。
func (s *QuizService) Start(ctx context.Context, studentID, courseID, sectionID string) (quiz.Snapshot, error) {
	section, err := s.ContentRepo.GetSection(ctx, courseID, sectionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return quiz.Snapshot{}, util.ErrSectionNotFound
	}
	if err != nil {
		return quiz.Snapshot{}, err
	}
	if !section.IsAssessment() {
		return quiz.Snapshot{}, util.ErrNotQuizSection
	}
	enrolled, err := s.EnrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	if !enrolled {
		return quiz.Snapshot{}, util.ErrNotEnrolled
	}

	sess, fresh, err := s.acquire(studentID, courseID, sectionID)
	if err != nil {
		return quiz.Snapshot{}, err
	}

	if err := sess.Load(ctx); err != nil {
		if !fresh && errors.Is(err, quiz.ErrInvalidTransition) {
			// 提交失败待重试的会话不能重新加载
			return sess.Snapshot(), util.ErrSessionActive
		}
		return sess.Snapshot(), err
	}
	if sess.State() == quiz.StateEmpty {
		return sess.Snapshot(), nil
	}
	if err := sess.Start(); err != nil {
		return sess.Snapshot(), err
	}
	return sess.Snapshot(), nil
}

// acquire 返回可加载的会话。提交失败待重试的旧会话原样返回，由 Load 拒绝
func (s *QuizService) acquire(studentID, courseID, sectionID string) (*quiz.Session, bool, error) {
	key := sessionKey(studentID, courseID, sectionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[key]; ok {
		switch st := existing.State(); {
		case st == quiz.StateFailed:
			return existing, false, nil
		case !st.Terminal():
			return nil, false, util.ErrSessionActive
		}
	}

	cfg := s.Config()
	var sess *quiz.Session
	sess = quiz.NewSession(studentID, courseID, sectionID, s.Reader, s.Store,
		quiz.WithTickInterval(cfg.TickInterval),
		quiz.WithDefaults(cfg.DefaultDurationMinutes, cfg.DefaultPassingScore),
		quiz.WithHook(func(ev quiz.Event) { s.onEvent(sess, ev) }),
	)
	s.sessions[key] = sess
	monitoring.QuizSessionsActive.Inc()
	return sess, true, nil
}

func (s *QuizService) lookup(studentID, courseID, sectionID string) (*quiz.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionKey(studentID, courseID, sectionID)]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return sess, nil
}

// evict 只移除仍指向 sess 的登记项
func (s *QuizService) evict(sess *quiz.Session) {
	key := sessionKey(sess.StudentID(), sess.CourseID(), sess.SectionID())
	s.mu.Lock()
	if s.sessions[key] == sess {
		delete(s.sessions, key)
	}
	s.mu.Unlock()
}

func (s *QuizService) onEvent(sess *quiz.Session, ev quiz.Event) {
	log := logger.Quiz(ev.StudentID, ev.SectionID)
	log.Debug("quiz state changed",
		zap.String("from", string(ev.From)),
		zap.String("to", string(ev.To)))

	switch ev.To {
	case quiz.StateCompleted:
		monitoring.QuizSessionsActive.Dec()
		monitoring.RecordAttempt(ev.Result.Passed, ev.TimedOut, ev.Result.Percentage)
		log.Info("quiz attempt recorded",
			zap.String("attempt_id", ev.AttemptID),
			zap.Float64("percentage", ev.Result.Percentage),
			zap.Bool("passed", ev.Result.Passed),
			zap.Bool("timed_out", ev.TimedOut))
		s.archive(ev.StudentID, ev.AttemptID)
	case quiz.StateEmpty:
		monitoring.QuizSessionsActive.Dec()
		log.Info("quiz section has no questions")
	case quiz.StateAbandoned:
		monitoring.QuizSessionsActive.Dec()
		s.evict(sess)
	case quiz.StateFailed:
		switch ev.From {
		case quiz.StateSubmitting:
			monitoring.QuizSubmitFailures.Inc()
		case quiz.StateLoading:
			monitoring.QuizSessionsActive.Dec()
			s.evict(sess)
		}
		log.Warn("quiz session failed", zap.String("from", string(ev.From)), zap.Error(ev.Err))
	}
}

// archive 异步写入测验回执，失败只记录日志
func (s *QuizService) archive(studentID, attemptID string) {
	if s.Storage == nil || attemptID == "" || !s.Config().ArchiveAttempts {
		return
	}
	s.archives.Add(1)
	go func() {
		defer s.archives.Done()
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		attempt, err := s.AttemptRepo.FindByID(ctx, studentID, attemptID)
		if err == nil {
			var url string
			url, err = s.Storage.ArchiveAttempt(ctx, attempt)
			if err == nil {
				logger.Log.Debug("attempt archived", zap.String("attempt_id", attemptID), zap.String("url", url))
				return
			}
		}
		logger.Log.Warn("attempt archive failed", zap.String("attempt_id", attemptID), zap.Error(err))
	}()
}

func (s *QuizService) Get(studentID, courseID, sectionID string) (quiz.Snapshot, error) {
	sess, err := s.lookup(studentID, courseID, sectionID)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// AnswerResult 选择答案后的即时反馈
type AnswerResult struct {
	QuestionID string        `json:"questionId"`
	Correct    bool          `json:"correct"`
	Session    quiz.Snapshot `json:"session"`
}

func (s *QuizService) Answer(studentID, courseID, sectionID, questionID string, optionIndex int) (*AnswerResult, error) {
	sess, err := s.lookup(studentID, courseID, sectionID)
	if err != nil {
		return nil, err
	}
	correct, err := sess.SelectAnswer(questionID, optionIndex)
	if err != nil {
		return nil, err
	}
	return &AnswerResult{QuestionID: questionID, Correct: correct, Session: sess.Snapshot()}, nil
}

func (s *QuizService) Next(studentID, courseID, sectionID string) (quiz.Snapshot, error) {
	return s.navigate(studentID, courseID, sectionID, (*quiz.Session).Next)
}

func (s *QuizService) Prev(studentID, courseID, sectionID string) (quiz.Snapshot, error) {
	return s.navigate(studentID, courseID, sectionID, (*quiz.Session).Prev)
}

func (s *QuizService) Goto(studentID, courseID, sectionID string, index int) (quiz.Snapshot, error) {
	return s.navigate(studentID, courseID, sectionID, func(sess *quiz.Session) (int, error) {
		return sess.Goto(index)
	})
}

func (s *QuizService) navigate(studentID, courseID, sectionID string, move func(*quiz.Session) (int, error)) (quiz.Snapshot, error) {
	sess, err := s.lookup(studentID, courseID, sectionID)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	if _, err := move(sess); err != nil {
		return quiz.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Submit 评分并保存；持久化失败后可再次调用重试
func (s *QuizService) Submit(ctx context.Context, studentID, courseID, sectionID string) (snap quiz.Snapshot, err error) {
	ctx, span := tracing.StartSpan(ctx, "quiz.submit", studentID, sectionID)
	defer func() { tracing.EndSpan(span, err) }()

	sess, err := s.lookup(studentID, courseID, sectionID)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	if _, err = sess.Submit(ctx); err != nil {
		return sess.Snapshot(), err
	}
	return sess.Snapshot(), nil
}

func (s *QuizService) Abandon(studentID, courseID, sectionID string) error {
	sess, err := s.lookup(studentID, courseID, sectionID)
	if err != nil {
		return err
	}
	return sess.Abandon()
}

// ListAttempts 历史记录，最近的在前
func (s *QuizService) ListAttempts(ctx context.Context, studentID, courseID, sectionID string, page, limit int) (*util.PageResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	list, total, err := s.AttemptRepo.ListAttempts(ctx, studentID, courseID, sectionID, page, limit)
	if err != nil {
		return nil, err
	}
	return &util.PageResponse{List: list, Total: total, Page: page, Limit: limit}, nil
}

func (s *QuizService) LatestAttempt(ctx context.Context, studentID, courseID, sectionID string) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.LatestAttempt(ctx, studentID, courseID, sectionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, err
}

func (s *QuizService) GetAttempt(ctx context.Context, studentID, attemptID string) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(ctx, studentID, attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, err
}

// Shutdown 放弃所有未结束的会话并等待归档完成
func (s *QuizService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	pending := make([]*quiz.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		pending = append(pending, sess)
	}
	s.mu.Unlock()

	for _, sess := range pending {
		if st := sess.State(); !st.Terminal() && st != quiz.StateSubmitting {
			if err := sess.Abandon(); err == nil {
				logger.Quiz(sess.StudentID(), sess.SectionID()).Warn("quiz session abandoned on shutdown")
			}
		}
	}

	done := make(chan struct{})
	go func() {
		s.archives.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
