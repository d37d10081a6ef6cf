package model

// File represents an uploaded document (CV or profile picture).
// Content holds the raw bytes when the file lives in the database;
// StorageObjectName is set instead when the file was uploaded to cloud storage.
type File struct {
	ID                int `gorm:"primaryKey"`
	Content           []byte
	Extension         string
	StorageObjectName *string
}
