package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// Two private buckets, same split as the storage rules:
// submissions (per-assignment student files) and resources (shared class files).
const (
	BucketSubmissions = "submissions"
	BucketResources   = "resources"
)

var (
	client   *oss.Client
	initOnce sync.Once
	initErr  error

	endpoint        string
	accessKeyID     string
	accessKeySecret string
	bucketPrefix    string
)

// Configure sets the OSS credentials; call once at boot.
func Configure(ep, keyID, keySecret, prefix string) {
	endpoint = strings.TrimSpace(ep)
	accessKeyID = strings.TrimSpace(keyID)
	accessKeySecret = strings.TrimSpace(keySecret)
	bucketPrefix = strings.TrimSpace(prefix)
}

func getBucket(name string) (*oss.Bucket, error) {
	initOnce.Do(func() {
		if endpoint == "" || accessKeyID == "" {
			initErr = fmt.Errorf("object storage is not configured")
			return
		}
		client, initErr = oss.New(endpoint, accessKeyID, accessKeySecret)
	})
	if initErr != nil {
		return nil, initErr
	}
	full := name
	if bucketPrefix != "" {
		full = bucketPrefix + "-" + name
	}
	return client.Bucket(full)
}

// UploadFile streams a multipart file into the given bucket under
// ownerID/<random>.<ext> and returns the object key.
func UploadFile(bucketName string, ownerID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	bucket, err := getBucket(bucketName)
	if err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(path.Ext(fh.Filename))
	key := fmt.Sprintf("%s/%s%s", ownerID, uuid.NewString(), ext)

	opts := []oss.Option{}
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		opts = append(opts, oss.ContentType(ct))
	}
	if err := bucket.PutObject(key, io.Reader(src), opts...); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

// SignedURL returns a time-limited GET URL for a private object.
func SignedURL(bucketName, key string, ttl time.Duration) (string, error) {
	bucket, err := getBucket(bucketName)
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return bucket.SignURL(key, oss.HTTPGet, int64(ttl.Seconds()))
}

// DeleteFile removes an object; missing objects are not an error.
func DeleteFile(bucketName, key string) error {
	bucket, err := getBucket(bucketName)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(key)
}
