package ui

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/videogen/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	serverURLEntry    *widget.Entry
	downloadDirEntry  *widget.Entry
	pollIntervalEntry *widget.Entry
	notifyEntry       *widget.Entry
	languageSelect    *widget.Select
	autoRevealCheck   *widget.Check
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after values are stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog builds and shows the dialog in one step
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.serverURLEntry = widget.NewEntry()
	sd.serverURLEntry.SetPlaceHolder(config.DefaultServerURL)
	sd.serverURLEntry.Validator = config.ValidateServerURL

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.pollIntervalEntry = widget.NewEntry()
	sd.pollIntervalEntry.SetPlaceHolder(strconv.Itoa(int(config.MinPollInterval/time.Millisecond)) +
		"-" + strconv.Itoa(int(config.MaxPollInterval/time.Millisecond)))

	sd.notifyEntry = widget.NewEntry()
	sd.notifyEntry.SetPlaceHolder(strconv.Itoa(int(config.DefaultNotifyTimeout / time.Millisecond)))

	languageOptions := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	form := container.NewVBox(
		widget.NewLabel(text(KeyServerURL)+":"),
		sd.serverURLEntry,

		widget.NewLabel(text(KeyDownloadDirectory)+":"),
		downloadDirRow,

		widget.NewLabel(text(KeyPollInterval)+":"),
		sd.pollIntervalEntry,

		widget.NewLabel(text(KeyNotificationTimeout)+":"),
		sd.notifyEntry,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyLanguage)+":"),
		sd.languageSelect,
		sd.autoRevealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.serverURLEntry.SetText(sd.settings.GetServerURL())
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.pollIntervalEntry.SetText(strconv.Itoa(int(sd.settings.GetPollInterval() / time.Millisecond)))
	sd.notifyEntry.SetText(strconv.Itoa(int(sd.settings.GetNotificationTimeout() / time.Millisecond)))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if !sd.apply() {
		dialog.ShowInformation(sd.localization.GetText(KeySettings),
			sd.localization.GetText(KeyInvalidServerURL), sd.window)
		return
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply stores the entered values. It reports false when the server URL is rejected;
// the remaining fields are stored regardless.
func (sd *SettingsDialog) apply() bool {
	serverURL := strings.TrimSpace(sd.serverURLEntry.Text)
	valid := serverURL == "" || config.ValidateServerURL(serverURL) == nil
	if serverURL != "" && valid {
		sd.settings.SetServerURL(serverURL)
	}

	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if ms, err := strconv.Atoi(strings.TrimSpace(sd.pollIntervalEntry.Text)); err == nil {
		sd.settings.SetPollInterval(time.Duration(ms) * time.Millisecond)
	}

	if ms, err := strconv.Atoi(strings.TrimSpace(sd.notifyEntry.Text)); err == nil {
		sd.settings.SetNotificationTimeout(time.Duration(ms) * time.Millisecond)
	}

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)
	return valid
}
