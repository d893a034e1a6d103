package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyGenerate            = "generate"
	KeyEnterTopic          = "enter_topic"
	KeyTopic               = "topic"
	KeySettings            = "settings"
	KeyFile                = "file"
	KeyLanguage            = "language"
	KeyServerURL           = "server_url"
	KeyDownloadDirectory   = "download_directory"
	KeyPollInterval        = "poll_interval"
	KeyNotificationTimeout = "notification_timeout"
	KeyAutoReveal          = "auto_reveal"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeyBrowse              = "browse"
	KeySettingsSaved       = "settings_saved"
	KeyOpenVideo           = "open_video"
	KeyRevealVideo         = "reveal_video"
	KeyErrorOpeningFile    = "error_opening_file"
	KeyInvalidServerURL    = "invalid_server_url"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "Video Generator",
		KeyGenerate:            "Generate Video",
		KeyEnterTopic:          "Enter a topic, e.g. How volcanoes work",
		KeyTopic:               "Topic",
		KeySettings:            "Settings",
		KeyFile:                "File",
		KeyLanguage:            "Language",
		KeyServerURL:           "Server URL",
		KeyDownloadDirectory:   "Download Directory",
		KeyPollInterval:        "Progress Poll Interval (ms)",
		KeyNotificationTimeout: "Notification Timeout (ms)",
		KeyAutoReveal:          "Reveal video when done",
		KeySave:                "Save",
		KeyCancel:              "Cancel",
		KeyBrowse:              "Browse",
		KeySettingsSaved:       "Settings saved successfully!",
		KeyOpenVideo:           "Open video",
		KeyRevealVideo:         "Show in folder",
		KeyErrorOpeningFile:    "Error opening file",
		KeyInvalidServerURL:    "Invalid server URL",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "Генератор видео",
		KeyGenerate:            "Создать видео",
		KeyEnterTopic:          "Введите тему, например: Как работают вулканы",
		KeyTopic:               "Тема",
		KeySettings:            "Настройки",
		KeyFile:                "Файл",
		KeyLanguage:            "Язык",
		KeyServerURL:           "Адрес сервера",
		KeyDownloadDirectory:   "Папка загрузки",
		KeyPollInterval:        "Интервал опроса (мс)",
		KeyNotificationTimeout: "Время показа уведомлений (мс)",
		KeyAutoReveal:          "Показать видео после создания",
		KeySave:                "Сохранить",
		KeyCancel:              "Отмена",
		KeyBrowse:              "Обзор",
		KeySettingsSaved:       "Настройки успешно сохранены!",
		KeyOpenVideo:           "Открыть видео",
		KeyRevealVideo:         "Показать в папке",
		KeyErrorOpeningFile:    "Ошибка открытия файла",
		KeyInvalidServerURL:    "Неверный адрес сервера",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:            "Gerador de Vídeo",
		KeyGenerate:            "Gerar Vídeo",
		KeyEnterTopic:          "Digite um tema, ex.: Como funcionam os vulcões",
		KeyTopic:               "Tema",
		KeySettings:            "Configurações",
		KeyFile:                "Arquivo",
		KeyLanguage:            "Idioma",
		KeyServerURL:           "URL do Servidor",
		KeyDownloadDirectory:   "Diretório de Download",
		KeyPollInterval:        "Intervalo de Consulta (ms)",
		KeyNotificationTimeout: "Tempo de Notificação (ms)",
		KeyAutoReveal:          "Mostrar vídeo ao concluir",
		KeySave:                "Salvar",
		KeyCancel:              "Cancelar",
		KeyBrowse:              "Navegar",
		KeySettingsSaved:       "Configurações salvas com sucesso!",
		KeyOpenVideo:           "Abrir vídeo",
		KeyRevealVideo:         "Mostrar na pasta",
		KeyErrorOpeningFile:    "Erro ao abrir arquivo",
		KeyInvalidServerURL:    "URL do servidor inválida",
	}
}
