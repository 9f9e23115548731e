// Package imagestore hosts product images in a gocloud.dev blob bucket.
package imagestore

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers selected by bucketUrl scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/util"
)

const (
	keyPrefix           = "products/"
	defaultBucketURL    = "mem://"
	defaultMaxImageSize = 5 << 20
)

var (
	// ErrImageTooLarge is returned for images above the configured size limit.
	ErrImageTooLarge = errors.New("image exceeds size limit")
	// ErrNotAnImage is returned when the payload is not recognized as an image.
	ErrNotAnImage = errors.New("payload is not an image")
	// ErrImageNotFound is returned by Open for unknown keys.
	ErrImageNotFound = errors.New("image not found")
)

// BlobUploader stores images under a content-addressed key, so uploading the same image twice
// yields the same URL.
type BlobUploader struct {
	bucket        *blob.Bucket
	publicBaseURL string
	maxImageSize  int64
	logger        *slog.Logger
}

// UploaderParams holds dependencies for the uploader provider.
type UploaderParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewUploader opens the configured bucket and closes it when the app stops.
func NewUploader(params UploaderParams) (*BlobUploader, error) {
	bucketURL := defaultBucketURL
	var (
		publicBaseURL string
		maxImageSize  int64
	)
	if cfg := params.Config.ImageStore; cfg != nil {
		if cfg.BucketURL != "" {
			bucketURL = cfg.BucketURL
		}
		publicBaseURL = cfg.PublicBaseURL
		maxImageSize = cfg.MaxImageSize
	}
	if bucketURL == defaultBucketURL {
		params.Logger.Warn("Image store uses an in-memory bucket; uploaded images are lost on restart")
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image bucket %s", bucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobUploader(bucket, publicBaseURL, maxImageSize, params.Logger), nil
}

// NewBlobUploader wraps an opened bucket.
func NewBlobUploader(bucket *blob.Bucket, publicBaseURL string, maxImageSize int64, logger *slog.Logger) *BlobUploader {
	if maxImageSize <= 0 {
		maxImageSize = defaultMaxImageSize
	}

	return &BlobUploader{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxImageSize:  maxImageSize,
		logger:        logger,
	}
}

// Upload implements service.ImageUploader.
func (u *BlobUploader) Upload(ctx context.Context, image *entity.Image) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", errors.Wrap(ErrNotAnImage, "empty upload")
	}

	size := int64(len(image.Data))
	if size > u.maxImageSize {
		return "", errors.Wrapf(ErrImageTooLarge, "%s > %s", util.FormatBytes(size), util.FormatBytes(u.maxImageSize))
	}

	detected := mimetype.Detect(image.Data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", errors.Wrapf(ErrNotAnImage, "detected %s", detected.String())
	}

	key := keyPrefix + util.Checksum(image.Data) + detected.Extension()
	err := u.bucket.WriteAll(ctx, key, image.Data, &blob.WriterOptions{
		ContentType:  detected.String(),
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", errors.Wrapf(err, "write image %s", key)
	}

	u.logger.Info("Image uploaded",
		slog.String("key", key),
		slog.String("content_type", detected.String()),
		slog.String("size", util.FormatBytes(size)),
		slog.String("filename", image.Filename),
	)

	return u.URL(key), nil
}

// URL returns the public URL of an object key.
func (u *BlobUploader) URL(key string) string {
	if u.publicBaseURL == "" {
		return "/" + key
	}

	return u.publicBaseURL + "/" + key
}

// Open returns a reader for a stored image and its content type.
func (u *BlobUploader) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(key, keyPrefix) || strings.Contains(key, "..") {
		return nil, "", errors.Wrapf(ErrImageNotFound, "key %q", key)
	}

	reader, err := u.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", errors.Wrapf(ErrImageNotFound, "key %q", key)
		}

		return nil, "", errors.Wrapf(err, "open image %s", key)
	}

	return reader, reader.ContentType(), nil
}
