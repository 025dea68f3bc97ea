package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"casting_backend/internal/storage"
	"casting_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type FileService interface {
	// Download скачивает файл по URL (фото из Telegram) и сохраняет
	// его под сгенерированным именем. Возвращает имя файла в сторадже.
	Download(ctx context.Context, url string) (string, error)
	// SaveUpload сохраняет файл из multipart-формы
	SaveUpload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type FileServiceImpl struct {
	store  storage.Storage
	client *http.Client
}

func NewFileService(store storage.Storage) FileService {
	return &FileServiceImpl{
		store: store,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	return uuid.New().String() + ext
}

func (s *FileServiceImpl) Download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternalServiceError, "file", "Failed to download file", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.New(apperrors.CodeExternalServiceError, "file",
			fmt.Sprintf("Unexpected status %d while downloading file", resp.StatusCode), http.StatusBadGateway)
	}

	filename := generateFilename(url)
	contentType := resp.Header.Get("Content-Type")

	if err := s.store.Save(ctx, filename, resp.Body, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}

	return filename, nil
}

func (s *FileServiceImpl) SaveUpload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	filename := generateFilename(file.Filename)
	contentType := file.Header.Get("Content-Type")

	if err := s.store.Save(ctx, filename, src, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}

	return filename, nil
}
