package config

import (
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/videogen/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyServerURL          = "server_url"
	KeyDownloadDir        = "download_directory"
	KeyPollIntervalMs     = "poll_interval_ms"
	KeyNotifyTimeoutMs    = "notification_timeout_ms"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultServerURL          = "http://localhost:5000"
	DefaultPollInterval       = 1 * time.Second
	DefaultNotifyTimeout      = 5 * time.Second
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// Bounds for the poll interval
const (
	MinPollInterval = 250 * time.Millisecond
	MaxPollInterval = 10 * time.Second
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServerURL returns the base URL of the generation server
func (s *Settings) GetServerURL() string {
	value := s.app.Preferences().String(KeyServerURL)
	if value == "" {
		s.SetServerURL(DefaultServerURL)
		return DefaultServerURL
	}
	return value
}

// SetServerURL sets the server base URL; invalid values reset to the default
func (s *Settings) SetServerURL(value string) {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if ValidateServerURL(value) != nil {
		value = DefaultServerURL
	}
	s.app.Preferences().SetString(KeyServerURL, value)
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir := platform.DefaultDownloadDir()
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetPollInterval returns the progress poll period
func (s *Settings) GetPollInterval() time.Duration {
	ms := s.app.Preferences().Int(KeyPollIntervalMs)
	if ms <= 0 {
		s.SetPollInterval(DefaultPollInterval)
		return DefaultPollInterval
	}
	return time.Duration(ms) * time.Millisecond
}

// SetPollInterval sets the progress poll period
func (s *Settings) SetPollInterval(interval time.Duration) {
	if interval < MinPollInterval {
		interval = MinPollInterval
	}
	if interval > MaxPollInterval {
		interval = MaxPollInterval
	}
	s.app.Preferences().SetInt(KeyPollIntervalMs, int(interval/time.Millisecond))
}

// GetNotificationTimeout returns how long banners stay visible
func (s *Settings) GetNotificationTimeout() time.Duration {
	ms := s.app.Preferences().Int(KeyNotifyTimeoutMs)
	if ms <= 0 {
		return DefaultNotifyTimeout
	}
	return time.Duration(ms) * time.Millisecond
}

// SetNotificationTimeout sets how long banners stay visible
func (s *Settings) SetNotificationTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	s.app.Preferences().SetInt(KeyNotifyTimeoutMs, int(timeout/time.Millisecond))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal the saved video
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the saved video
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// ValidateServerURL checks that value is an absolute http(s) URL
func ValidateServerURL(value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidServerURL
	}
	if parsed.Host == "" {
		return ErrInvalidServerURL
	}
	return nil
}
