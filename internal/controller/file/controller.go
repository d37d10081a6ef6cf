// Package file provides HTTP handlers for file-related operations.
package file

import (
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/utilities"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileController handles file related endpoints
type FileController struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
}

const (
	// CVObjectPrefix groups uploaded CVs inside the bucket
	CVObjectPrefix      = "cvs"
	pictureObjectPrefix = "pictures"
)

// CVExtensions lists the file extensions accepted for CV uploads.
var CVExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

var pictureExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// declaredContentTypes maps an accepted extension to the content types a
// multipart part may declare for it.
var declaredContentTypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".png":  {"image/png"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
}

// NewFileController creates a new instance of FileController
func NewFileController(db *database.DBinstanceStruct, storage StorageClient) *FileController {
	return &FileController{
		DB:      db,
		Storage: storage,
	}
}

// ReadUpload pulls the named multipart file out of the request and validates
// its extension and declared content type against allowed. It writes the
// error response itself; a nil byte slice means the caller must stop.
func ReadUpload(c *gin.Context, fName string, allowed map[string]bool) ([]byte, string) {
	rawFile, err := c.FormFile(fName)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return nil, ""
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return nil, ""
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !allowed[extension] {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return nil, ""
	}

	declared := rawFile.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil || !utilities.Contains(declaredContentTypes[extension], strings.ToLower(mediaType)) {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Declared content type %q does not match a %s file", declared, extension),
		})
		return nil, ""
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return nil, ""
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close uploaded file: %v", err)
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return nil, ""
	}

	return fileBytes, extension
}

// PersistFileData stores fileBytes either in object storage or inline in the
// file record when storage is nil.
func PersistFileData(storage StorageClient, file *model.File, fileBytes []byte, extension, prefix string) error {
	file.Extension = extension
	if storage == nil {
		file.Content = fileBytes
		file.StorageObjectName = nil
		return nil
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), extension)
	if err := storage.UploadFile(objectName, bytes.NewReader(fileBytes)); err != nil {
		return err
	}

	file.StorageObjectName = &objectName
	file.Content = nil
	return nil
}

// UploadResume function handles the process of uploading a default CV file
// for a visitor and updating the visitor's profile in the database.
// @Summary Upload default CV file for visitor
// @Description Only file that smaller than 5 MB with .pdf, .png, .jpg, or .jpeg extension is permitted
// @Tags Visitor
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume formData file true "Upload your CV file"
// @Success 200 {object} model.VisitorProfile "Successfully upload CV"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as visitor"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 5 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /visitor/profile/resume [post]
func (jc *FileController) UploadResume(c *gin.Context) {

	var visitor = model.VisitorProfile{}

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	// Retrieve original profile from DB
	if err := jc.DB.Preload("User").Where("user_id = ?", user.ID.String()).First(&visitor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user information from database: %s", err.Error()),
		})
		return
	}

	fileBytes, extension := ReadUpload(c, "resume", CVExtensions)
	if fileBytes == nil {
		return
	}

	if err := PersistFileData(jc.Storage, &visitor.Resume, fileBytes, extension, CVObjectPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store CV: %s", err.Error()),
		})
		return
	}

	if err := jc.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(&visitor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update user information: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, visitor)
}

// UploadProfilePicture handles profile picture uploading for any logged-in user.
// @Summary Upload profile picture
// @Description Only file that smaller than 5 MB with .jpg, .jpeg, or .png extension is permitted
// @Tags File
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param picture formData file true "Upload your profile picture"
// @Success 200 {object} model.User "Successfully upload picture"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 5 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/picture [post]
func (jc *FileController) UploadProfilePicture(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	fileBytes, extension := ReadUpload(c, "picture", pictureExtensions)
	if fileBytes == nil {
		return
	}

	if err := PersistFileData(jc.Storage, &user.ProfilePicture, fileBytes, extension, pictureObjectPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store picture: %s", err.Error()),
		})
		return
	}

	if err := jc.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update user information: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetFile function retrieves a file from the database and sends it as a downloadable attachment in
// the response.
// @Summary Retrieve dowloadable attachment
// @Tags File
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of wanted file"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Given file id not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /file/{id} [get]
func (jc *FileController) GetFile(c *gin.Context) {
	var file model.File
	id := c.Param("id")

	if err := jc.DB.First(&file, id).Error; err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	jc.writeFileResponse(c, &file)
}

func (jc *FileController) writeFileResponse(c *gin.Context, file *model.File) {
	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+fmt.Sprint(file.ID)+file.Extension)
	c.Writer.Header().Set("Content-Type", "application/octet-stream")

	if file.StorageObjectName != nil {
		if jc.Storage == nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Cloud storage is disabled while the requested file is stored remotely",
			})
			return
		}
		reader, size, err := jc.Storage.DownloadFile(*file.StorageObjectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to download file from storage: %s", err.Error()),
			})
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("failed to close storage reader: %v", err)
			}
		}()

		if size > 0 {
			c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
		}
		if _, err := io.Copy(c.Writer, reader); err != nil {
			jc.handleWriterError(c, err)
		}
		return
	}

	c.Writer.Header().Set("Content-Length", fmt.Sprint(len(file.Content)))
	if _, err := c.Writer.Write(file.Content); err != nil {
		jc.handleWriterError(c, err)
	}
}

func (jc *FileController) handleWriterError(c *gin.Context, _ error) {
	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to send file content",
		})
	} else {
		c.Abort()
	}
}
