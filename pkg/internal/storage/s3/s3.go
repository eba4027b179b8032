// Package s3 处理S3存储操作：媒体原件的写入、读取、存在性检查与删除.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/almostmoments/momentvault/pkg/configs"
	nlog "github.com/almostmoments/momentvault/pkg/log"
)

// Client 包装 MinIO 客户端并绑定资产桶.
type Client struct {
	*minio.Client

	bucket string
}

// ErrObjectNotFound 对象在存储中不存在.
var ErrObjectNotFound = errors.New("object not found")

// New 初始化 MinIO 客户端，若资产桶不存在则尝试创建.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo(configs.AppName, configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.AssetsBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.AssetsBucket, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.AssetsBucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.AssetsBucket, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.AssetsBucket).Msg("assets bucket created")
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.AssetsBucket).Msg("s3 connected")

	return &Client{Client: cli, bucket: cfg.AssetsBucket}, nil
}

// Bucket 返回资产桶名.
func (c *Client) Bucket() string {
	return c.bucket
}

// ObjectInfo 对象元数据的精简视图.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	FileName     string // 来自 content-disposition 或上传时的元数据
	LastModified time.Time
}

// PutAsset 写入一个资产对象. onProgress（可为 nil）以已传输字节数回调，计数单调递增.
func (c *Client) PutAsset(ctx context.Context, key string, r io.Reader, size int64,
	contentType, fileName string, onProgress func(transferred int64),
) error {
	reader := io.Reader(r)
	if onProgress != nil {
		reader = &progressReader{r: r, report: onProgress}
	}

	opts := minio.PutObjectOptions{ContentType: contentType}
	if fileName != "" {
		// 原始文件名随对象保存，下载端用它恢复 content-disposition
		opts.ContentDisposition = fmt.Sprintf("attachment; filename=%q", fileName)
		opts.UserMetadata = map[string]string{"filename": fileName}
	}

	if _, err := c.PutObject(ctx, c.bucket, key, reader, size, opts); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}

// GetAsset 打开一个资产对象的读取流并返回其元数据.
func (c *Client) GetAsset(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error) {
	obj, err := c.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("get object %s: %w", key, err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()

		if isNotFound(err) {
			return nil, nil, fmt.Errorf("get object %s: %w", key, ErrObjectNotFound)
		}

		return nil, nil, fmt.Errorf("stat object %s: %w", key, err)
	}

	return obj, infoFromStat(key, stat), nil
}

// StatAsset 查询资产对象元数据；对象不存在时返回 ErrObjectNotFound.
func (c *Client) StatAsset(ctx context.Context, key string) (*ObjectInfo, error) {
	stat, err := c.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("stat object %s: %w", key, ErrObjectNotFound)
		}

		return nil, fmt.Errorf("stat object %s: %w", key, err)
	}

	return infoFromStat(key, stat), nil
}

// AssetExists 检查资产对象是否存在.
func (c *Client) AssetExists(ctx context.Context, key string) (bool, error) {
	_, err := c.StatAsset(ctx, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// RemoveAsset 删除一个资产对象.
func (c *Client) RemoveAsset(ctx context.Context, key string) error {
	if err := c.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}

	return nil
}

// PresignedPutAsset 生成客户端直传用的预签名 PUT URL.
func (c *Client) PresignedPutAsset(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := c.PresignedPutObject(ctx, c.bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("presign put for %s: %w", key, err)
	}

	return u.String(), nil
}

// HealthCheck 简单的健康检查，通过检查桶存在性来验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.BucketExists(ctx, c.bucket)
	return err
}

// Close 关闭 S3 客户端连接（无实际操作，接口兼容）.
func (c *Client) Close() error {
	return nil
}

// infoFromStat 把 minio 的对象信息转为精简视图，并尽力解析原始文件名.
func infoFromStat(key string, stat minio.ObjectInfo) *ObjectInfo {
	info := &ObjectInfo{
		Key:          key,
		Size:         stat.Size,
		ETag:         stat.ETag,
		ContentType:  stat.ContentType,
		LastModified: stat.LastModified,
	}

	if fn := stat.UserMetadata["Filename"]; fn != "" {
		info.FileName = fn
	} else if fn := stat.Metadata.Get("X-Amz-Meta-Filename"); fn != "" {
		info.FileName = fn
	}

	return info
}

// isNotFound 判断 minio 错误是否为对象不存在.
func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey"
}

// progressReader 在读取时上报累计字节数.
type progressReader struct {
	r      io.Reader
	total  int64
	report func(int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.total += int64(n)
		p.report(p.total)
	}

	return n, err
}
