package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/almostmoments/momentvault/pkg/configs"
	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/storage/db"
	"github.com/almostmoments/momentvault/pkg/internal/storage/s3"
)

// fakeStore 内存对象存储桩.
type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	fileNames map[string]string
	failGet   map[string]bool
	removed   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:   make(map[string][]byte),
		fileNames: make(map[string]string),
		failGet:   make(map[string]bool),
	}
}

func (f *fakeStore) put(key, fileName string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.objects[key] = data
	f.fileNames[key] = fileName
}

func (f *fakeStore) Bucket() string { return "assets" }

func (f *fakeStore) StatAsset(ctx context.Context, key string) (*s3.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.objects[key]
	if !ok {
		return nil, s3.ErrObjectNotFound
	}

	return &s3.ObjectInfo{Key: key, Size: int64(len(data)), FileName: f.fileNames[key]}, nil
}

func (f *fakeStore) AssetExists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.objects[key]

	return ok, nil
}

func (f *fakeStore) GetAsset(ctx context.Context, key string) (io.ReadCloser, *s3.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.objects[key]
	if !ok || f.failGet[key] {
		return nil, nil, s3.ErrObjectNotFound
	}

	info := &s3.ObjectInfo{Key: key, Size: int64(len(data)), FileName: f.fileNames[key]}

	return io.NopCloser(bytes.NewReader(data)), info, nil
}

func (f *fakeStore) RemoveAsset(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, key)
	f.removed = append(f.removed, key)

	return nil
}

func (f *fakeStore) PresignedPutAsset(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://minio.test/assets/" + key + "?signed", nil
}

func testConfig() *configs.AppConfig {
	return &configs.AppConfig{
		Gallery: configs.GalleryConfig{
			PageSize:  configs.DefaultGalleryPageSize,
			MaxBatch:  configs.DefaultGalleryMaxBatch,
			SampleID:  configs.DefaultSampleGalleryID,
			URLPrefix: configs.DefaultGalleryURLPrefix,
		},
		Archive: configs.ArchiveConfig{
			Concurrency: configs.DefaultArchiveConcurrency,
			MaxNameLen:  configs.DefaultArchiveMaxNameLen,
		},
	}
}

func newTestService(t *testing.T, store objectStore) *GalleryService {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := model.AutoMigrateModels(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &GalleryService{
		store:    store,
		dbClient: &db.Client{DB: gdb},
		cfg:      testConfig(),
	}
}

// seedGallery 直接造一个相册行.
func seedGallery(t *testing.T, gs *GalleryService, id, name string, expiry *time.Time) {
	t.Helper()

	g := model.Gallery{ID: id, Name: name, ExpiryAt: expiry}
	if err := gs.dbClient.GetDB().Create(&g).Error; err != nil {
		t.Fatalf("seed gallery: %v", err)
	}
}

// seedAssets 直接造 n 条资产行，created_at 单调递增保证顺序可断言.
func seedAssets(t *testing.T, gs *GalleryService, galleryID string, n int) []model.GalleryAsset {
	t.Helper()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]model.GalleryAsset, 0, n)

	for i := range n {
		rows = append(rows, model.GalleryAsset{
			ID:        uuid.NewString(),
			GalleryID: galleryID,
			ObjectKey: fmt.Sprintf("%s/obj-%04d.jpg", galleryID, i),
			FileName:  fmt.Sprintf("photo-%04d.jpg", i),
			Size:      100,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	if err := gs.dbClient.GetDB().CreateInBatches(rows, finalizeChunkSize).Error; err != nil {
		t.Fatalf("seed assets: %v", err)
	}

	return rows
}
