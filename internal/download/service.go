package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	vlog "github.com/ytget/videogen/internal/log"
	"github.com/ytget/videogen/internal/platform"
)

// DefaultFilename is the name the generated video is saved under
const DefaultFilename = "video.mp4"

// Service handles saving generated videos
type Service struct {
	mu          sync.RWMutex
	downloadDir string
	filename    string
	onSaved     func(path string) // callback for UI updates
	logger      zerolog.Logger
}

// NewService creates a new download service
func NewService(downloadDir string) *Service {
	return &Service{
		downloadDir: downloadDir,
		filename:    DefaultFilename,
		logger:      vlog.WithComponent("download"),
	}
}

// SetSavedCallback sets the callback function for saved files
func (s *Service) SetSavedCallback(callback func(path string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSaved = callback
}

// SetDownloadDirectory sets the download directory
func (s *Service) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloadDir = dir
}

// OutputPath returns where the next video will be written
func (s *Service) OutputPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filepath.Join(s.downloadDir, s.filename)
}

var _ Saver = (*Service)(nil)

// Save writes data to <downloadDir>/video.mp4, replacing any previous file.
// An empty body is saved as an empty file.
func (s *Service) Save(ctx context.Context, data []byte) (string, error) {
	s.mu.RLock()
	dir := s.downloadDir
	s.mu.RUnlock()

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	path := s.OutputPath()

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(platform.DefaultFilePermissions))
	if err != nil {
		return "", fmt.Errorf("create pending video file: %w", err)
	}
	// Cleanup is a no-op once the file has been committed
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			s.logger.Debug().Err(err).Msg("cleanup pending video file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return "", fmt.Errorf("write video data: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return "", fmt.Errorf("atomically replace video file: %w", err)
	}

	s.logger.Info().Str(vlog.FieldPath, path).Int("bytes", len(data)).Msg("video saved")
	s.notifySaved(path)
	return path, nil
}

// notifySaved calls the saved callback if set
func (s *Service) notifySaved(path string) {
	s.mu.RLock()
	callback := s.onSaved
	s.mu.RUnlock()

	if callback != nil {
		callback(path)
	}
}
