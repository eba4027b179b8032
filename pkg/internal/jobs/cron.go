// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	ctxPkg "github.com/almostmoments/momentvault/pkg/context"
	"github.com/almostmoments/momentvault/pkg/internal/service"
	"github.com/almostmoments/momentvault/pkg/internal/storage"
	"github.com/almostmoments/momentvault/pkg/log"
	"github.com/almostmoments/momentvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每小时校正相册计数器（total_assets 是尽力而为的缓存，允许短暂漂移）
//   - 每天 04:00 清点过期相册并广播过期事件
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	_ = sched.AddCron(JobCounterReconcile, CronCounterReconcile, func(ctx context.Context) {
		runCounterReconcile(ctx)
	}, baseCtx)

	_ = sched.AddCron(JobExpirySweep, CronExpirySweep, func(ctx context.Context) {
		runExpirySweep(ctx)
	}, baseCtx)

	return nil
}

// runCounterReconcile 把漂移的相册计数器校正为实际行数。
func runCounterReconcile(ctx context.Context) {
	l := log.Logger().With().Str("job", JobCounterReconcile).Logger()

	svc := service.NewGalleryService(ctx)

	fixed, err := svc.ReconcileCounters(ctx)
	if err != nil {
		l.Error().Err(err).Msg("counter reconcile failed")
		return
	}

	if fixed > 0 {
		l.Info().Int64("fixed", fixed).Msg("reconciled drifting gallery counters")
	}
}

// runExpirySweep 清点过期相册并广播过期事件。
func runExpirySweep(ctx context.Context) {
	l := log.Logger().With().Str("job", JobExpirySweep).Logger()

	svc := service.NewGalleryService(ctx)

	expired, err := svc.SweepExpiredGalleries(ctx)
	if err != nil {
		l.Error().Err(err).Msg("expiry sweep failed")
		return
	}

	if len(expired) > 0 {
		l.Info().Int("expired", len(expired)).Msg("expired galleries found")
	}
}
