package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// AzureBlobStorage implements Storage interface for Azure Blob Storage
type AzureBlobStorage struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewAzureBlobStorage creates a new Azure Blob Storage instance
func NewAzureBlobStorage(connectionString, containerName string, logger *zap.Logger) (*AzureBlobStorage, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	_, err = client.CreateContainer(context.Background(), containerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	logger.Info("Azure Blob Storage initialized",
		zap.String("container", containerName),
	)

	return &AzureBlobStorage{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

// Upload streams an image into the container
func (s *AzureBlobStorage) Upload(ctx context.Context, contentType string, data io.Reader) (string, int64, error) {
	reference, err := newReference(contentType)
	if err != nil {
		return "", 0, err
	}

	stored := ContentTypeFor(reference)
	uploadOptions := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &stored,
		},
	}

	reader := &countingReader{r: data}
	if _, err := s.client.UploadStream(ctx, s.containerName, reference, reader, uploadOptions); err != nil {
		return "", 0, fmt.Errorf("failed to upload blob: %w", err)
	}

	s.logger.Info("Image uploaded to Azure Blob Storage",
		zap.String("reference", reference),
		zap.String("container", s.containerName),
		zap.Int64("size", reader.count),
	)

	return reference, reader.count, nil
}

// countingReader wraps an io.Reader and counts the number of bytes read
type countingReader struct {
	r     io.Reader
	count int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}

// Download opens a stored image
func (s *AzureBlobStorage) Download(ctx context.Context, reference string) (io.ReadCloser, error) {
	if err := ValidateReference(reference); err != nil {
		return nil, err
	}

	resp, err := s.client.DownloadStream(ctx, s.containerName, reference, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to download blob: %w", err)
	}

	return resp.Body, nil
}

// Delete removes a stored image; deleting a missing one is not an error
func (s *AzureBlobStorage) Delete(ctx context.Context, reference string) error {
	if err := ValidateReference(reference); err != nil {
		return err
	}

	_, err := s.client.DeleteBlob(ctx, s.containerName, reference, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			s.logger.Debug("Blob already deleted or not found",
				zap.String("reference", reference),
				zap.String("container", s.containerName),
			)
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.logger.Info("Image deleted from Azure Blob Storage",
		zap.String("reference", reference),
		zap.String("container", s.containerName),
	)

	return nil
}
