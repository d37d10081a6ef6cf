package file

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
)

// StorageClient abstracts the object storage used for uploaded files. A nil
// client means files are kept as bytes in the database instead.
type StorageClient interface {
	UploadFile(objectName string, fileData io.Reader) error
	DownloadFile(objectName string) (io.ReadCloser, int64, error)
}

// CloudStorageClient implements StorageClient on top of a GCS bucket.
type CloudStorageClient struct {
	BucketName string
	Ctx        context.Context
	Client     *storage.Client
}

// NewCloudStorageClient connects to cloud storage using ambient credentials.
func NewCloudStorageClient(bucketName string) (*CloudStorageClient, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Ctx:        ctx,
		Client:     client,
	}, nil
}

// StorageFromEnv builds a storage client from GCS_BUCKET_NAME.
// Returns nil when the variable is unset so the server falls back to
// database-stored file content.
func StorageFromEnv() StorageClient {
	bucketName := os.Getenv("GCS_BUCKET_NAME")
	if bucketName == "" {
		log.Println("GCS_BUCKET_NAME not set, storing uploaded files in the database")
		return nil
	}
	client, err := NewCloudStorageClient(bucketName)
	if err != nil {
		log.Printf("cloud storage unavailable, falling back to database storage: %v", err)
		return nil
	}
	return client
}

// UploadFile writes fileData to the bucket under objectName.
func (c *CloudStorageClient) UploadFile(objectName string, fileData io.Reader) error {
	bucket := c.Client.Bucket(c.BucketName)
	obj := bucket.Object(objectName)
	wc := obj.NewWriter(c.Ctx)
	if _, err := io.Copy(wc, fileData); err != nil {
		return fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %v", err)
	}
	return nil
}

// DownloadFile opens objectName for reading and reports its size when known.
func (c *CloudStorageClient) DownloadFile(objectName string) (io.ReadCloser, int64, error) {
	bucket := c.Client.Bucket(c.BucketName)
	obj := bucket.Object(objectName)
	reader, err := obj.NewReader(c.Ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open object reader: %v", err)
	}
	return reader, reader.Attrs.Size, nil
}
