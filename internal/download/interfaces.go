package download

import (
	"context"
)

// Saver defines the interface for the download service.
type Saver interface {
	// Save writes the video and returns the final path
	Save(ctx context.Context, data []byte) (string, error)

	// SetSavedCallback registers a hook invoked with every saved path
	SetSavedCallback(func(path string))

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)

	// OutputPath returns where the next video will be written
	OutputPath() string
}
