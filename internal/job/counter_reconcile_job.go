package job

import (
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/logger"
	"Keystone/internal/pkg/redis"
	"Keystone/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// CounterReconcileJob 把脏标记集合里的帖子与评论计数按源数据重算一遍
type CounterReconcileJob struct {
	reconcileSvc service.ReconcileService
}

func NewCounterReconcileJob(reconcileSvc service.ReconcileService) *CounterReconcileJob {
	return &CounterReconcileJob{
		reconcileSvc: reconcileSvc,
	}
}

func (s *CounterReconcileJob) Run() {
	traceID := "job-reconcile-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	s.drain(ctx, consts.PostDirtyKey, s.reconcileSvc.ReconcilePost)
	s.drain(ctx, consts.CommentDirtyKey, s.reconcileSvc.ReconcileComment)
}

// drain 先把脏集合改名为 processing 快照，避免与正在写入的新脏标记互相干扰
func (s *CounterReconcileJob) drain(ctx context.Context, dirtyKey string, reconcile func(context.Context, string) error) {
	processingKey := dirtyKey + ":processing"
	if err := redis.Rename(ctx, dirtyKey, processingKey); err != nil {
		// 集合为空时 Rename 失败，本轮无事可做
		return
	}

	ids, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "key", processingKey, "err", err)
		return
	}

	log.InfoContext(ctx, "start reconciling counters", "key", dirtyKey, "count", len(ids))

	successCount := 0
	for _, id := range ids {
		if err := reconcile(ctx, id); err != nil {
			log.ErrorContext(ctx, "reconcile counter error", "id", id, "err", err)
			continue
		}
		successCount++
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete processing set error", "key", processingKey, "err", err)
	}

	log.InfoContext(ctx, "reconcile counters finished",
		"key", dirtyKey,
		"total_count", len(ids),
		"success_count", successCount)
}
