package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"

	"github.com/ctan76-dev/suckthumb/src/core/database"
)

// ObjectKey builds the storage path for an upload: {userId}/{timestamp}-{random}{ext}.
// Keys never collide across retries of the same file, so a failed insert
// leaves at worst an orphaned object, never a reused reference.
func ObjectKey(userID string, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	random := uuid.New().String()[:8]
	return fmt.Sprintf("%s/%d-%s%s", userID, time.Now().Unix(), random, ext)
}

// UploadToSupabaseStorage uploads a file to Supabase storage and returns the
// file's path, public URL, and content type.
func UploadToSupabaseStorage(file *multipart.FileHeader, path string) (string, string, string, error) {
	storageClient, bucketName, err := database.SupabaseStorage()
	if err != nil {
		return "", "", "", err
	}

	fileBody, err := file.Open()
	if err != nil {
		return "", "", "", err
	}
	defer fileBody.Close()

	fileBytes, err := io.ReadAll(fileBody)
	if err != nil {
		return "", "", "", err
	}

	// Reset the file pointer after sniffing the content type
	if _, err := fileBody.Seek(0, io.SeekStart); err != nil {
		return "", "", "", err
	}
	contentType := http.DetectContentType(fileBytes)

	if _, err := storageClient.UploadFile(bucketName, path, fileBody, storage_go.FileOptions{ContentType: &contentType}); err != nil {
		return "", "", "", err
	}

	response := storageClient.GetPublicUrl(bucketName, path)
	return path, response.SignedURL, contentType, nil
}

// UpdateToSupabaseStorage replaces an existing file in Supabase storage.
func UpdateToSupabaseStorage(file *multipart.FileHeader, path string) (string, string, string, error) {
	storageClient, bucketName, err := database.SupabaseStorage()
	if err != nil {
		return "", "", "", err
	}

	fileBody, err := file.Open()
	if err != nil {
		return "", "", "", err
	}
	defer fileBody.Close()

	fileBytes, err := io.ReadAll(fileBody)
	if err != nil {
		return "", "", "", err
	}

	if _, err := fileBody.Seek(0, io.SeekStart); err != nil {
		return "", "", "", err
	}
	contentType := http.DetectContentType(fileBytes)

	if _, err := storageClient.UpdateFile(bucketName, path, fileBody, storage_go.FileOptions{ContentType: &contentType}); err != nil {
		return "", "", "", err
	}

	response := storageClient.GetPublicUrl(bucketName, path)
	return path, response.SignedURL, contentType, nil
}

// DeleteFromSupabaseStorage deletes a file from Supabase storage given the file path.
func DeleteFromSupabaseStorage(path string) error {
	storageClient, bucketName, err := database.SupabaseStorage()
	if err != nil {
		return err
	}

	if _, err := storageClient.RemoveFile(bucketName, []string{path}); err != nil {
		return err
	}
	return nil
}

// MediaTypeFor maps a sniffed content type onto the attachment kinds a
// moment accepts.
func MediaTypeFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "file"
	}
}
