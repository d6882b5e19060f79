package configwatcher

import (
	"context"
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/pkg/logger"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// QuizReloader 接收重新加载后的测验配置
type QuizReloader func(cfg config.QuizConfig)

const DefaultDebounce = time.Second

// WatchQuizConfig 监听配置文件所在目录，文件变化后防抖并重新加载 quiz 配置段。
// 监听目录而非文件本身，编辑器以 rename 方式保存时也能收到事件。阻塞直到 ctx 取消。
func WatchQuizConfig(ctx context.Context, configFile string, debounce time.Duration, reloader QuizReloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configFile)
	if err != nil {
		return err
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// 防抖处理
				timer.Reset(debounce)
			}
		case <-timer.C:
			// 重新加载配置
			quizCfg, err := config.ReloadQuiz()
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Quiz config reloaded",
				zap.Int("default_duration_minutes", quizCfg.DefaultDurationMinutes),
				zap.Int("default_passing_score", quizCfg.DefaultPassingScore),
				zap.Duration("content_cache_ttl", quizCfg.ContentCacheTTL))
			reloader(quizCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
