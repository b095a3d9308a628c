package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.ImageStore = (*ImageStore)(nil)

// An ImageStore keeps uploaded product images in the document database's
// binary bucket.
type ImageStore struct {
	bucket *gridfs.Bucket
}

func NewImageStore(store DocumentStore) (ImageStore, error) {
	const op = "NewImageStore"

	bucket, err := gridfs.NewBucket(store.db)
	if err != nil {
		return ImageStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return ImageStore{bucket}, nil
}

func (s ImageStore) UploadImage(
	ctx context.Context, name, contentType string, r io.Reader,
) (string, error) {
	const op = "ImageStore.UploadImage"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	opts := options.GridFSUpload().
		SetMetadata(bson.M{"content_type": contentType})

	id, err := s.bucket.UploadFromStream(name, r, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id.Hex(), nil
}

func (s ImageStore) DownloadImage(
	ctx context.Context, imageID string,
) (io.ReadCloser, string, error) {
	const op = "ImageStore.DownloadImage"

	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := primitive.ObjectIDFromHex(imageID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	var contentType string
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		var meta struct {
			ContentType string `bson:"content_type"`
		}
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil {
			contentType = meta.ContentType
		}
	}
	return stream, contentType, nil
}

func (s ImageStore) DeleteImage(ctx context.Context, imageID string) error {
	const op = "ImageStore.DeleteImage"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	id, err := primitive.ObjectIDFromHex(imageID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	if err := s.bucket.Delete(id); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
