package cmd

import (
	contextPkg "context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/almostmoments/momentvault/pkg/configs"
	ctxPkg "github.com/almostmoments/momentvault/pkg/context"
	"github.com/almostmoments/momentvault/pkg/internal/service"
	"github.com/almostmoments/momentvault/pkg/internal/storage"
	"github.com/almostmoments/momentvault/pkg/internal/types"
	"github.com/almostmoments/momentvault/pkg/uploader"
)

var (
	uploadGallery     string
	uploadDir         string
	uploadConcurrency int
	uploadRetries     int

	// 媒体文件扩展名白名单，其余文件跳过.
	imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic"}
	videoExts = []string{".mp4", ".mov", ".webm", ".avi", ".mkv"}

	uploadCmd = &cobra.Command{
		Use:   "upload",
		Short: "bulk upload a local directory into a gallery",
		Long: "Walks a local directory, uploads every image and video through the " +
			"bounded worker pool, then registers the uploaded objects as gallery assets.",
		RunE: runUpload,
	}
)

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadGallery == "" {
		return fmt.Errorf("--gallery is required")
	}

	if err := configs.InitConfig(configPath); err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	// 未显式传 flag 时采用配置文件里的调度参数
	if !cmd.Flags().Changed("concurrency") {
		uploadConcurrency = configs.GetConfig().Upload.Concurrency
	}

	if !cmd.Flags().Changed("retries") {
		uploadRetries = configs.GetConfig().Upload.MaxRetries
	}

	ctx := contextPkg.Background()

	mgr, err := storage.Init(ctx)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() { _ = mgr.Close() }()

	ctx = ctxPkg.WithStorageManager(ctx, mgr)

	files, err := collectLocalFiles(uploadDir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no media files found")

		return nil
	}

	out := cmd.OutOrStdout()

	sched := uploader.New(mgr.GetS3Client(), uploadGallery, files,
		uploader.WithConcurrency(uploadConcurrency),
		uploader.WithMaxRetries(uploadRetries),
		uploader.WithObserver(func(t uploader.Task) {
			switch t.Status {
			case uploader.StatusDone:
				fmt.Fprintf(out, "done   %s\n", t.Name)
			case uploader.StatusFailed:
				fmt.Fprintf(out, "failed %s (attempt %d): %s\n", t.Name, t.Attempt, t.Err)
			}
		}),
	)

	results, failed := sched.Run(ctx)

	if len(results) > 0 {
		req := finalizeRequest(results)

		svc := service.NewGalleryService(ctx)

		res, err := svc.FinalizeAssets(ctx, uploadGallery, req)
		if err != nil {
			return fmt.Errorf("finalize assets: %w", err)
		}

		fmt.Fprintf(out, "registered %d assets in gallery %s\n", res.Created, uploadGallery)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed to upload", len(failed), len(files))
	}

	return nil
}

// collectLocalFiles 遍历目录并收集媒体文件，子目录递归处理.
func collectLocalFiles(dir string) ([]uploader.LocalFile, error) {
	var files []uploader.LocalFile

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))

		isVideo := slices.Contains(videoExts, ext)
		if !isVideo && !slices.Contains(imageExts, ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, uploader.LocalFile{
			Name:    d.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsVideo: isVideo,
			Open: func() (io.ReadCloser, error) {
				return os.Open(path)
			},
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	return files, nil
}

// finalizeRequest 将上传产出转换为登记请求，顺序与任务索引一致.
func finalizeRequest(results map[int]uploader.Result) *types.FinalizeAssetsRequest {
	indexes := make([]int, 0, len(results))
	for idx := range results {
		indexes = append(indexes, idx)
	}

	slices.Sort(indexes)

	items := make([]types.FinalizeAssetItem, 0, len(results))
	for _, idx := range indexes {
		r := results[idx]
		items = append(items, types.FinalizeAssetItem{
			ObjectKey: r.ObjectKey,
			FileName:  r.FileName,
			Size:      r.Size,
			Blurhash:  r.Placeholder.Hash,
			Width:     r.Placeholder.Width,
			Height:    r.Placeholder.Height,
		})
	}

	return &types.FinalizeAssetsRequest{Assets: items}
}

// registerUploadCommands 注册上传相关命令.
func registerUploadCommands() {
	uploadCmd.Flags().StringVarP(&uploadGallery, "gallery", "g", "", "target gallery id (required)")
	uploadCmd.Flags().StringVarP(&uploadDir, "dir", "d", ".", "local directory to upload")
	uploadCmd.Flags().IntVar(&uploadConcurrency, "concurrency", uploader.DefaultConcurrency, "parallel uploads")
	uploadCmd.Flags().IntVar(&uploadRetries, "retries", uploader.DefaultMaxRetries, "max attempts per file")

	rootCmd.AddCommand(uploadCmd)
}
