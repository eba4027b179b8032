// Package uploader 实现批量资产上传调度：固定大小的 worker 池从共享队列
// 领取文件，逐个完成"上传 + 占位哈希"两步，支持按文件重试与进度观察.
package uploader

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/almostmoments/momentvault/pkg/blurhash"
)

// Status 上传任务状态.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

const (
	// DefaultConcurrency worker 池默认大小.
	DefaultConcurrency = 5

	// DefaultMaxRetries 单文件最大尝试次数.
	DefaultMaxRetries = 3
)

// LocalFile 一次上传批次中的单个本地文件.
// Open 每次调用返回一个全新的读取流；重试没有断点续传，
// 每轮尝试都从头读取.
type LocalFile struct {
	Name    string
	Size    int64
	ModTime time.Time
	IsVideo bool
	Open    func() (io.ReadCloser, error)
}

// Task 任务状态快照，观察者与调用方只读.
// Progress 在单轮尝试内单调不减，新一轮尝试开始时归零.
type Task struct {
	Index    int
	Name     string
	Status   Status
	Progress int
	Attempt  int
	Err      string
}

// Result 单个文件上传成功后的产出.
type Result struct {
	Index       int
	ObjectKey   string
	FileName    string
	Size        int64
	Placeholder blurhash.Placeholder
}

// permanentError 标记不可重试的失败（如本地读取错误），重试没有意义.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent 将错误标记为不可重试.
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return &permanentError{err: err}
}

func isPermanent(err error) bool {
	var pe *permanentError

	return errors.As(err, &pe)
}

var keyEntropy = ulid.Monotonic(crand.Reader, 0)

// NewObjectKey 生成对象键：<galleryID>/<ulid><扩展名>.
// ULID 按时间有序，便于在桶内按上传顺序排查.
func NewObjectKey(galleryID, fileName string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), keyEntropy)

	return galleryID + "/" + strings.ToLower(id.String()) + strings.ToLower(filepath.Ext(fileName))
}

// ObjectStorage 上传端口，由 internal/storage/s3 客户端实现.
type ObjectStorage interface {
	PutAsset(ctx context.Context, key string, r io.Reader, size int64,
		contentType, fileName string, onProgress func(transferred int64)) error
}

// Observer 任务状态变更回调，每次状态或进度变化后以快照触发.
// 回调在 worker goroutine 内同步执行，不要在里面做耗时操作.
type Observer func(t Task)

// Scheduler 上传调度器. 一个实例对应一个批次，可在批次结束后
// 通过 RetryFile 对失败文件做单次人工重试.
type Scheduler struct {
	store       ObjectStorage
	galleryID   string
	concurrency int
	maxRetries  int
	observer    Observer

	mu        sync.Mutex
	files     []LocalFile
	tasks     []Task
	completed map[int]Result
	failed    map[int]struct{}
}

// Option 调度器可选项.
type Option func(*Scheduler)

// WithConcurrency 设置 worker 池大小.
func WithConcurrency(c int) Option {
	return func(s *Scheduler) {
		if c > 0 {
			s.concurrency = c
		}
	}
}

// WithMaxRetries 设置单文件最大尝试次数.
func WithMaxRetries(r int) Option {
	return func(s *Scheduler) {
		if r > 0 {
			s.maxRetries = r
		}
	}
}

// WithObserver 设置状态观察者.
func WithObserver(fn Observer) Option {
	return func(s *Scheduler) { s.observer = fn }
}

// New 创建一个批次的上传调度器.
func New(store ObjectStorage, galleryID string, files []LocalFile, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:       store,
		galleryID:   galleryID,
		concurrency: DefaultConcurrency,
		maxRetries:  DefaultMaxRetries,
		files:       files,
		tasks:       make([]Task, len(files)),
		completed:   make(map[int]Result, len(files)),
		failed:      make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i := range files {
		s.tasks[i] = Task{Index: i, Name: files[i].Name, Status: StatusPending}
	}

	return s
}

// Run 执行整个批次，阻塞到所有文件结束（成功或重试耗尽）.
// 返回 索引→Result 的成功集合与永久失败的索引列表. 文件间不保证完成顺序.
func (s *Scheduler) Run(ctx context.Context) (map[int]Result, []int) {
	queue := make(chan int)

	var wg sync.WaitGroup

	workers := min(s.concurrency, len(s.files))
	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for idx := range queue {
				s.processFile(ctx, idx)
			}
		}()
	}

	for i := range s.files {
		queue <- i
	}

	close(queue)
	wg.Wait()

	return s.Completed(), s.Failed()
}

// RetryFile 对单个失败文件做一次人工重试，复用同样的按文件重试逻辑.
// 仅允许对处于 failed 状态的任务调用.
func (s *Scheduler) RetryFile(ctx context.Context, index int) error {
	s.mu.Lock()

	if index < 0 || index >= len(s.tasks) {
		s.mu.Unlock()
		return fmt.Errorf("upload task index %d out of range", index)
	}

	if s.tasks[index].Status != StatusFailed {
		s.mu.Unlock()
		return fmt.Errorf("upload task %d is %s, only failed tasks can be retried", index, s.tasks[index].Status)
	}

	delete(s.failed, index)
	s.mu.Unlock()

	s.processFile(ctx, index)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tasks[index].Status != StatusDone {
		return fmt.Errorf("retry of %s failed: %s", s.tasks[index].Name, s.tasks[index].Err)
	}

	return nil
}

// Tasks 返回所有任务的当前快照.
func (s *Scheduler) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)

	return out
}

// Completed 返回成功集合的副本.
func (s *Scheduler) Completed() map[int]Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]Result, len(s.completed))
	for k, v := range s.completed {
		out[k] = v
	}

	return out
}

// Failed 返回永久失败的索引（升序）.
func (s *Scheduler) Failed() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, 0, len(s.failed))
	for idx := range s.failed {
		out = append(out, idx)
	}

	slices.Sort(out)

	return out
}

// processFile 驱动单个文件的完整重试循环.
func (s *Scheduler) processFile(ctx context.Context, idx int) {
	var lastErr error

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		// 每轮尝试进度归零，丢弃上一轮的半成品
		s.update(idx, func(t *Task) {
			t.Status = StatusUploading
			t.Attempt = attempt
			t.Progress = 0
			t.Err = ""
		})

		res, err := s.uploadOnce(ctx, idx)
		if err == nil {
			s.mu.Lock()
			s.completed[idx] = res
			s.mu.Unlock()

			s.update(idx, func(t *Task) {
				t.Status = StatusDone
				t.Progress = 100
			})

			return
		}

		lastErr = err
		if isPermanent(err) {
			break
		}
	}

	s.mu.Lock()
	s.failed[idx] = struct{}{}
	s.mu.Unlock()

	s.update(idx, func(t *Task) {
		t.Status = StatusFailed
		t.Err = lastErr.Error()
	})
}

// uploadOnce 单轮尝试：读取本地文件、上传、计算占位哈希.
// 占位哈希失败不会使成功的上传降级为失败，直接使用兜底值.
func (s *Scheduler) uploadOnce(ctx context.Context, idx int) (Result, error) {
	file := s.files[idx]

	rc, err := file.Open()
	if err != nil {
		// 本地读不到就没有重试的意义
		return Result{}, Permanent(fmt.Errorf("open %s: %w", file.Name, err))
	}

	data, err := io.ReadAll(rc)

	_ = rc.Close()

	if err != nil {
		return Result{}, Permanent(fmt.Errorf("read %s: %w", file.Name, err))
	}

	key := NewObjectKey(s.galleryID, file.Name)
	size := int64(len(data))

	onProgress := func(transferred int64) {
		s.update(idx, func(t *Task) {
			pct := 100
			if size > 0 {
				pct = int(math.Round(float64(transferred) / float64(size) * 100))
			}
			// 单轮尝试内进度只进不退
			if pct > t.Progress {
				t.Progress = pct
			}
		})
	}

	err = s.store.PutAsset(ctx, key, bytes.NewReader(data), size,
		contentTypeOf(file.Name), file.Name, onProgress)
	if err != nil {
		return Result{}, fmt.Errorf("upload %s: %w", file.Name, err)
	}

	return Result{
		Index:       idx,
		ObjectKey:   key,
		FileName:    file.Name,
		Size:        size,
		Placeholder: blurhash.FromBytes(data, file.IsVideo),
	}, nil
}

// update 在锁内修改任务状态并触发观察者.
func (s *Scheduler) update(idx int, fn func(t *Task)) {
	s.mu.Lock()
	fn(&s.tasks[idx])
	snapshot := s.tasks[idx]
	s.mu.Unlock()

	if s.observer != nil {
		s.observer(snapshot)
	}
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}

	return "application/octet-stream"
}
