package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/s3/v2"

	"staffdir/pkg/utils"
)

// StorageService defines methods for avatar storage operations
type StorageService interface {
	// SaveAvatar writes the uploaded file to the blob store under key
	SaveAvatar(c *fiber.Ctx, file *multipart.FileHeader, key string) error

	// IsExtensionAllowed checks the filename against the avatar allow-list
	IsExtensionAllowed(filename string) bool

	// AvatarKey generates a collision-resistant object key for an upload
	AvatarKey(employeeID, filename string) string
}

type storageService struct {
	storage *s3.Storage
}

func NewStorageService(storage *s3.Storage) StorageService {
	return &storageService{
		storage: storage,
	}
}

func (s *storageService) SaveAvatar(c *fiber.Ctx, file *multipart.FileHeader, key string) error {
	return c.SaveFileToStorage(file, key, s.storage)
}

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

func (s *storageService) IsExtensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *storageService) AvatarKey(employeeID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	salt := strings.ToLower(utils.GenerateRandomString(8))
	return fmt.Sprintf("icons/%s-%d-%s%s", employeeID, time.Now().Unix(), salt, ext)
}
