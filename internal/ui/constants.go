package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconFolder   = "📁"
	IconClose    = "×"
)

// Progress bar range, in percent
const (
	ProgressMin = 0
	ProgressMax = 100
)

// Window sizing
const (
	WindowWidth  float32 = 640
	WindowHeight float32 = 420
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 420
)

// Banner layout
const (
	BannerCornerRadius float32 = 4
	BannerMinHeight    float32 = 36
)
