// Package bootstrap wires logging, settings, services and the main window.
// Every entry point starts the application through Run.
package bootstrap

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/videogen/internal/api"
	"github.com/ytget/videogen/internal/config"
	"github.com/ytget/videogen/internal/download"
	vlog "github.com/ytget/videogen/internal/log"
	"github.com/ytget/videogen/internal/platform"
	"github.com/ytget/videogen/internal/ui"
)

const (
	AppID   = "com.ytget.videogen"
	AppName = "Video Generator"
)

// Setup prepares the main window of a. The caller shows it.
func Setup(a fyne.App, version string) (fyne.Window, *ui.RootUI) {
	vlog.Configure(vlog.Config{})
	logger := vlog.WithComponent("main")
	logger.Info().Str("version", version).Msg("starting")

	a.Settings().SetTheme(ui.NewCompactTheme())

	window := a.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(a)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		logger.Warn().Err(err).Str(vlog.FieldPath, downloadsDir).Msg("failed to ensure downloads dir")
	}

	client := api.NewClient(settings.GetServerURL(), nil)
	saver := download.NewService(downloadsDir)

	return window, ui.NewRootUI(window, a, client, saver)
}

// Run starts the application and blocks until the window is closed
func Run(version string) {
	window, _ := Setup(app.NewWithID(AppID), version)
	window.ShowAndRun()
}
