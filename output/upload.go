// SPDX-License-Identifier: MIT

package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrS3Config indicates an incomplete object storage configuration.
var ErrS3Config = errors.New("output: incomplete s3 configuration")

// S3Config locates the bucket results are uploaded to.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// bucketClient is the part of *minio.Client the uploader uses.
type bucketClient interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Uploader copies a results directory to s3://<bucket>/<prefix>/<run>/.
type Uploader struct {
	client bucketClient
	bucket string
	prefix string
	region string

	initOnce sync.Once
	initErr  error
}

// NewUploader builds a minio client for cfg. No request is made until the
// first upload.
func NewUploader(cfg S3Config) (*Uploader, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	bucket := strings.TrimSpace(cfg.Bucket)
	switch {
	case endpoint == "":
		return nil, fmt.Errorf("endpoint: %w", ErrS3Config)
	case access == "" || secret == "":
		return nil, fmt.Errorf("credentials: %w", ErrS3Config)
	case bucket == "":
		return nil, fmt.Errorf("bucket: %w", ErrS3Config)
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("output: init s3 client: %w", err)
	}

	return newUploader(client, bucket, cfg.Prefix, region), nil
}

func newUploader(c bucketClient, bucket, prefix, region string) *Uploader {
	return &Uploader{
		client: c,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
		region: region,
	}
}

func (u *Uploader) ensureBucket(ctx context.Context) error {
	u.initOnce.Do(func() {
		exists, err := u.client.BucketExists(ctx, u.bucket)
		if err != nil {
			u.initErr = err
			return
		}
		if exists {
			return
		}
		u.initErr = u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{Region: u.region})
	})

	return u.initErr
}

// UploadDir uploads every regular file of dir under the run's key prefix
// and returns the object keys in sorted order.
func (u *Uploader) UploadDir(ctx context.Context, runID, dir string) ([]string, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("run id: %w", ErrS3Config)
	}
	if err := u.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("output: ensure bucket: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("output: upload: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	keys := make([]string, 0, len(names))
	for _, name := range names {
		key := u.objectKey(runID, name)
		_, err = u.client.FPutObject(ctx, u.bucket, key, filepath.Join(dir, name), minio.PutObjectOptions{
			ContentType: "text/plain",
		})
		if err != nil {
			return keys, fmt.Errorf("output: upload %s: %w", name, err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

func (u *Uploader) objectKey(runID, name string) string {
	if u.prefix == "" {
		return path.Join(runID, name)
	}

	return path.Join(u.prefix, runID, name)
}
