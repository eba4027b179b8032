package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobCounterReconcile = "gallery.counter_reconcile"
	JobExpirySweep      = "gallery.expiry_sweep"
)

// Cron 表达式常量（可选，但推荐一并集中管理）.
const (
	CronCounterReconcile = "15 * * * *" // 每小时 15 分校正计数器漂移
	CronExpirySweep      = "0 4 * * *"  // 每天 04:00 清点过期相册
)
