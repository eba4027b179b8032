package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeStorage 可编排失败次数并统计最大并发的对象存储桩.
type fakeStorage struct {
	mu        sync.Mutex
	failures  map[string]int // 文件名 -> 剩余失败次数，-1 表示永远失败
	calls     map[string]int
	inFlight  atomic.Int32
	maxSeen   atomic.Int32
	putKeys   []string
	putDelay  func()
	wantBytes bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
}

func (f *fakeStorage) PutAsset(ctx context.Context, key string, r io.Reader, size int64,
	contentType, fileName string, onProgress func(transferred int64),
) error {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)

	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}

	if f.putDelay != nil {
		f.putDelay()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	if f.wantBytes && int64(len(data)) != size {
		return fmt.Errorf("size mismatch: got %d want %d", len(data), size)
	}

	f.mu.Lock()
	f.calls[fileName]++
	remaining := f.failures[fileName]
	if remaining != 0 {
		if remaining > 0 {
			f.failures[fileName] = remaining - 1
		}
		f.mu.Unlock()

		return fmt.Errorf("transient storage error for %s", fileName)
	}
	f.putKeys = append(f.putKeys, key)
	f.mu.Unlock()

	if onProgress != nil {
		if size > 0 {
			onProgress(size / 2)
		}
		onProgress(size)
	}

	return nil
}

func memFile(name, content string) LocalFile {
	return LocalFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestRunAllSucceed(t *testing.T) {
	store := newFakeStorage()

	files := make([]LocalFile, 10)
	for i := range files {
		files[i] = memFile(fmt.Sprintf("photo%02d.jpg", i), "jpegdata")
	}

	s := New(store, "g1", files)

	completed, failed := s.Run(context.Background())
	if len(completed) != 10 {
		t.Fatalf("completed = %d, want 10", len(completed))
	}

	if len(failed) != 0 {
		t.Fatalf("failed = %v, want empty", failed)
	}

	for i, res := range completed {
		if res.Index != i {
			t.Errorf("result index = %d, want %d", res.Index, i)
		}

		if !strings.HasPrefix(res.ObjectKey, "g1/") {
			t.Errorf("object key %q should carry gallery prefix", res.ObjectKey)
		}

		if res.Placeholder.Hash == "" {
			t.Errorf("placeholder hash empty for index %d", i)
		}
	}
}

func TestRunBoundedConcurrency(t *testing.T) {
	store := newFakeStorage()

	gate := make(chan struct{})
	var once sync.Once
	var started atomic.Int32

	// 前 5 个调用到齐后放行，若池子越界 maxSeen 会超过 5
	store.putDelay = func() {
		if started.Add(1) == 5 {
			once.Do(func() { close(gate) })
		}
		<-gate
	}

	files := make([]LocalFile, 20)
	for i := range files {
		files[i] = memFile(fmt.Sprintf("f%02d.jpg", i), "data")
	}

	s := New(store, "g1", files, WithConcurrency(5))

	completed, _ := s.Run(context.Background())
	if len(completed) != 20 {
		t.Fatalf("completed = %d, want 20", len(completed))
	}

	if got := store.maxSeen.Load(); got > 5 {
		t.Errorf("max concurrent uploads = %d, want <= 5", got)
	}
}

func TestRunRetriesTransientFailures(t *testing.T) {
	store := newFakeStorage()
	store.failures["flaky.jpg"] = 2 // 前两次失败，第三次成功

	s := New(store, "g1", []LocalFile{memFile("flaky.jpg", "data")}, WithMaxRetries(3))

	completed, failed := s.Run(context.Background())
	if len(completed) != 1 || len(failed) != 0 {
		t.Fatalf("completed=%d failed=%v, want 1 success", len(completed), failed)
	}

	if store.calls["flaky.jpg"] != 3 {
		t.Errorf("attempts = %d, want 3", store.calls["flaky.jpg"])
	}
}

func TestRunMarksFailedAfterRetriesExhausted(t *testing.T) {
	store := newFakeStorage()
	store.failures["f02.jpg"] = -1
	store.failures["f07.jpg"] = -1

	files := make([]LocalFile, 10)
	for i := range files {
		files[i] = memFile(fmt.Sprintf("f%02d.jpg", i), "data")
	}

	s := New(store, "g1", files, WithConcurrency(5), WithMaxRetries(3))

	completed, failed := s.Run(context.Background())
	if len(completed) != 8 {
		t.Errorf("completed = %d, want 8", len(completed))
	}

	if len(failed) != 2 || failed[0] != 2 || failed[1] != 7 {
		t.Errorf("failed = %v, want [2 7]", failed)
	}

	if store.calls["f02.jpg"] != 3 {
		t.Errorf("attempts for f02.jpg = %d, want 3", store.calls["f02.jpg"])
	}

	for _, task := range s.Tasks() {
		switch task.Index {
		case 2, 7:
			if task.Status != StatusFailed {
				t.Errorf("task %d status = %s, want failed", task.Index, task.Status)
			}
		default:
			if task.Status != StatusDone {
				t.Errorf("task %d status = %s, want done", task.Index, task.Status)
			}
		}
	}
}

func TestRunLocalReadErrorNotRetried(t *testing.T) {
	store := newFakeStorage()

	broken := LocalFile{
		Name: "broken.jpg",
		Size: 4,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("permission denied")
		},
	}

	s := New(store, "g1", []LocalFile{broken}, WithMaxRetries(3))

	completed, failed := s.Run(context.Background())
	if len(completed) != 0 || len(failed) != 1 {
		t.Fatalf("completed=%d failed=%v, want single failure", len(completed), failed)
	}

	// 本地错误不重试，存储端一次都不该被调用
	if store.calls["broken.jpg"] != 0 {
		t.Errorf("storage calls = %d, want 0", store.calls["broken.jpg"])
	}

	if task := s.Tasks()[0]; task.Attempt != 1 {
		t.Errorf("attempt = %d, want 1", task.Attempt)
	}
}

func TestRetryFile(t *testing.T) {
	store := newFakeStorage()
	store.failures["f00.jpg"] = -1

	s := New(store, "g1", []LocalFile{memFile("f00.jpg", "data")}, WithMaxRetries(2))

	_, failed := s.Run(context.Background())
	if len(failed) != 1 {
		t.Fatalf("failed = %v, want [0]", failed)
	}

	// 故障清除后人工重试应当成功
	store.mu.Lock()
	store.failures["f00.jpg"] = 0
	store.mu.Unlock()

	if err := s.RetryFile(context.Background(), 0); err != nil {
		t.Fatalf("RetryFile: %v", err)
	}

	completed := s.Completed()
	if len(completed) != 1 {
		t.Errorf("completed = %d, want 1", len(completed))
	}

	if len(s.Failed()) != 0 {
		t.Errorf("failed should be cleared, got %v", s.Failed())
	}
}

func TestRetryFileRejectsNonFailedTask(t *testing.T) {
	store := newFakeStorage()

	s := New(store, "g1", []LocalFile{memFile("ok.jpg", "data")})

	s.Run(context.Background())

	if err := s.RetryFile(context.Background(), 0); err == nil {
		t.Error("retrying a done task should error")
	}

	if err := s.RetryFile(context.Background(), 99); err == nil {
		t.Error("out of range index should error")
	}
}

func TestProgressMonotonic(t *testing.T) {
	store := newFakeStorage()

	var mu sync.Mutex
	last := make(map[int]int)

	obs := func(task Task) {
		mu.Lock()
		defer mu.Unlock()

		// 同一轮尝试内进度只进不退（attempt 变更时允许归零）
		if task.Status == StatusUploading && task.Progress < last[task.Index] && task.Progress != 0 {
			t.Errorf("progress went backwards: %d -> %d", last[task.Index], task.Progress)
		}
		last[task.Index] = task.Progress
	}

	files := []LocalFile{memFile("a.jpg", "0123456789")}

	s := New(store, "g1", files, WithObserver(obs))

	completed, _ := s.Run(context.Background())
	if len(completed) != 1 {
		t.Fatal("upload should succeed")
	}

	if got := s.Tasks()[0].Progress; got != 100 {
		t.Errorf("final progress = %d, want 100", got)
	}
}

func TestZeroByteFileReportsComplete(t *testing.T) {
	store := newFakeStorage()

	s := New(store, "g1", []LocalFile{memFile("empty.jpg", "")})

	completed, failed := s.Run(context.Background())
	if len(completed) != 1 || len(failed) != 0 {
		t.Fatalf("completed=%d failed=%v, want success", len(completed), failed)
	}

	if got := s.Tasks()[0].Progress; got != 100 {
		t.Errorf("progress = %d, want 100", got)
	}
}

func TestNewObjectKeyFormat(t *testing.T) {
	key := NewObjectKey("gal42", "My Photo.JPG")

	if !strings.HasPrefix(key, "gal42/") {
		t.Errorf("key %q missing gallery prefix", key)
	}

	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q should keep lowercased extension", key)
	}

	if key == NewObjectKey("gal42", "My Photo.JPG") {
		t.Error("object keys must be unique per call")
	}
}
