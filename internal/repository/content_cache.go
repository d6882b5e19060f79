package repository

import (
	"context"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedContentReader 为测验会话加载章节与课时，Redis 不可用时直接读库
type CachedContentReader struct {
	Content *ContentRepository
	Redis   *redis.Client
	ttl     atomic.Int64
}

func NewCachedContentReader(content *ContentRepository, rdb *redis.Client, ttl time.Duration) *CachedContentReader {
	r := &CachedContentReader{Content: content, Redis: rdb}
	r.SetTTL(ttl)
	return r
}

// SetTTL 配置热更新时调用；0 表示关闭缓存
func (r *CachedContentReader) SetTTL(ttl time.Duration) {
	r.ttl.Store(int64(ttl))
}

func (r *CachedContentReader) TTL() time.Duration {
	return time.Duration(r.ttl.Load())
}

func sectionKey(courseID, sectionID string) string {
	return fmt.Sprintf("quiz:section:%s:%s", courseID, sectionID)
}

func lessonsKey(courseID, sectionID string) string {
	return fmt.Sprintf("quiz:lessons:%s:%s", courseID, sectionID)
}

func (r *CachedContentReader) GetSection(ctx context.Context, courseID, sectionID string) (*model.Section, error) {
	var section model.Section
	if r.get(ctx, sectionKey(courseID, sectionID), &section) {
		return &section, nil
	}

	s, err := r.Content.GetSection(ctx, courseID, sectionID)
	if err != nil {
		return nil, err
	}
	r.set(ctx, sectionKey(courseID, sectionID), s)
	return s, nil
}

func (r *CachedContentReader) GetLessons(ctx context.Context, courseID, sectionID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if r.get(ctx, lessonsKey(courseID, sectionID), &lessons) {
		return lessons, nil
	}

	lessons, err := r.Content.GetLessons(ctx, courseID, sectionID)
	if err != nil {
		return nil, err
	}
	r.set(ctx, lessonsKey(courseID, sectionID), lessons)
	return lessons, nil
}

// Invalidate 内容变更后清除章节缓存
func (r *CachedContentReader) Invalidate(ctx context.Context, courseID, sectionID string) {
	if r.Redis == nil {
		return
	}
	if err := r.Redis.Del(ctx, sectionKey(courseID, sectionID), lessonsKey(courseID, sectionID)).Err(); err != nil {
		logger.Log.Warn("content cache invalidate failed", zap.String("section_id", sectionID), zap.Error(err))
	}
}

func (r *CachedContentReader) get(ctx context.Context, key string, dest interface{}) bool {
	if r.Redis == nil || r.TTL() <= 0 {
		return false
	}
	data, err := r.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("content cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Log.Warn("content cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *CachedContentReader) set(ctx context.Context, key string, value interface{}) {
	ttl := r.TTL()
	if r.Redis == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Log.Warn("content cache write failed", zap.String("key", key), zap.Error(err))
	}
}
