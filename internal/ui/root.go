package ui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/videogen/internal/api"
	"github.com/ytget/videogen/internal/config"
	"github.com/ytget/videogen/internal/controller"
	"github.com/ytget/videogen/internal/download"
	vlog "github.com/ytget/videogen/internal/log"
	"github.com/ytget/videogen/internal/model"
	"github.com/ytget/videogen/internal/notify"
	"github.com/ytget/videogen/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	logger       zerolog.Logger

	topicEntry    *widget.Entry
	generateBtn   *widget.Button
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	openBtn       *widget.Button
	revealBtn     *widget.Button
	notifications *fyne.Container

	bannersMu sync.Mutex
	banners   map[string]fyne.CanvasObject

	controller *controller.Controller
	saver      download.Saver
	stack      *notify.Stack

	ctx    context.Context
	cancel context.CancelFunc

	videoMu   sync.Mutex
	lastVideo string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, client *api.Client, saver download.Saver) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       vlog.WithComponent("ui"),
		banners:      make(map[string]fyne.CanvasObject),
		saver:        saver,
		ctx:          ctx,
		cancel:       cancel,
	}

	ui.stack = notify.NewStack(ui, settings.GetNotificationTimeout())
	ui.controller = controller.New(ui, ui.stack, client, saver)
	ui.controller.SetPollInterval(settings.GetPollInterval())
	ui.controller.SetSettledCallback(ui.onSettled)
	saver.SetSavedCallback(ui.onVideoSaved)

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetOnClosed(ui.Close)

	ui.setupUI()
	ui.logger.Info().Str("server", client.BaseURL()).Msg("UI initialized")
	return ui
}

// Controller exposes the submission controller
func (ui *RootUI) Controller() *controller.Controller {
	return ui.controller
}

// Close cancels in-flight work and removes pending banners
func (ui *RootUI) Close() {
	ui.cancel()
	ui.stack.Close()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.topicEntry = widget.NewEntry()
	ui.topicEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterTopic))
	// Pressing Enter submits the form like the button does
	ui.topicEntry.OnSubmitted = func(string) {
		ui.onGenerateClick()
	}

	ui.generateBtn = widget.NewButton(ui.localization.GetText(KeyGenerate), ui.onGenerateClick)
	ui.generateBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Min = ProgressMin
	ui.progressBar.Max = ProgressMax
	ui.progressBar.Hide()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Hide()

	ui.openBtn = widget.NewButton(IconPlay+" "+ui.localization.GetText(KeyOpenVideo), ui.onOpenVideo)
	ui.revealBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyRevealVideo), ui.onRevealVideo)
	ui.openBtn.Disable()
	ui.revealBtn.Disable()

	ui.notifications = container.NewVBox()

	formRow := container.NewBorder(nil, nil, settingsBtn, ui.generateBtn, ui.topicEntry)
	content := container.NewVBox(
		ui.notifications,
		formRow,
		ui.progressBar,
		ui.statusLabel,
		container.NewHBox(ui.openBtn, ui.revealBtn),
	)

	ui.window.SetContent(container.NewPadded(content))
	ui.logger.Debug().Msg("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.topicEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterTopic))
	ui.generateBtn.SetText(ui.localization.GetText(KeyGenerate))
	ui.openBtn.SetText(IconPlay + " " + ui.localization.GetText(KeyOpenVideo))
	ui.revealBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyRevealVideo))
}

// onGenerateClick submits the form. The request runs off the UI goroutine.
func (ui *RootUI) onGenerateClick() {
	if ui.controller.Submitting() {
		return
	}

	form := api.NewForm().Set(api.FieldTopic, strings.TrimSpace(ui.topicEntry.Text))

	go func() {
		err := ui.controller.OnSubmit(ui.ctx, form)
		if errors.Is(err, controller.ErrBusy) {
			ui.logger.Debug().Msg("submit ignored, request already in flight")
		}
	}()
}

// onSettled runs after every submission
func (ui *RootUI) onSettled(sub model.Submission) {
	if sub.Status != model.SubmissionSucceeded {
		return
	}

	fyne.Do(func() {
		ui.openBtn.Enable()
		ui.revealBtn.Enable()
	})

	if ui.settings.GetAutoRevealOnComplete() {
		ui.onRevealVideo()
	}
}

// onVideoSaved remembers the path the saver wrote to
func (ui *RootUI) onVideoSaved(path string) {
	ui.videoMu.Lock()
	defer ui.videoMu.Unlock()
	ui.lastVideo = path
}

// LastVideo returns the path of the last saved video
func (ui *RootUI) LastVideo() string {
	ui.videoMu.Lock()
	defer ui.videoMu.Unlock()
	return ui.lastVideo
}

func (ui *RootUI) onOpenVideo() {
	if err := platform.OpenFileWithDefaultApp(ui.LastVideo()); err != nil {
		ui.logger.Error().Err(err).Msg("open video")
		ui.stack.Notify(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), model.SeverityDanger)
	}
}

func (ui *RootUI) onRevealVideo() {
	if err := platform.OpenFileInManager(ui.LastVideo()); err != nil {
		ui.logger.Error().Err(err).Msg("reveal video")
		ui.stack.Notify(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), model.SeverityDanger)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings pushes saved settings into the running services
func (ui *RootUI) applySettings() {
	ui.controller.SetGenerator(api.NewClient(ui.settings.GetServerURL(), nil))
	ui.controller.SetPollInterval(ui.settings.GetPollInterval())
	ui.saver.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
	ui.stack.SetAutoHide(ui.settings.GetNotificationTimeout())

	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()
}

// ResetProgress implements controller.View
func (ui *RootUI) ResetProgress() {
	fyne.Do(func() {
		ui.progressBar.SetValue(ProgressMin)
		ui.progressBar.Show()
		ui.statusLabel.SetText("")
		ui.statusLabel.Show()
	})
}

// SetProgress implements controller.View
func (ui *RootUI) SetProgress(percent float64, text string) {
	fyne.Do(func() {
		ui.progressBar.SetValue(percent)
		ui.statusLabel.SetText(text)
	})
}

// SetSubmitEnabled implements controller.View
func (ui *RootUI) SetSubmitEnabled(enabled bool) {
	fyne.Do(func() {
		if enabled {
			ui.generateBtn.Enable()
		} else {
			ui.generateBtn.Disable()
		}
	})
}

// Prepend implements notify.Container
func (ui *RootUI) Prepend(f notify.Fragment) {
	fyne.Do(func() {
		banner := newBanner(f, func() { ui.stack.Dismiss(f.ID) })

		ui.bannersMu.Lock()
		ui.banners[f.ID] = banner
		ui.bannersMu.Unlock()

		ui.notifications.Objects = append([]fyne.CanvasObject{banner}, ui.notifications.Objects...)
		ui.notifications.Refresh()
	})
}

// Remove implements notify.Container
func (ui *RootUI) Remove(id string) {
	fyne.Do(func() {
		ui.bannersMu.Lock()
		banner, ok := ui.banners[id]
		delete(ui.banners, id)
		ui.bannersMu.Unlock()

		if ok {
			ui.notifications.Remove(banner)
		}
	})
}
