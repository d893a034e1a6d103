package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// AppDownloadsSubdir is created under the user's Downloads directory
const AppDownloadsSubdir = "videogen"

// FallbackDownloadsDir is used when the home directory cannot be resolved
const FallbackDownloadsDir = "/tmp/videogen"

// CommandRunner runs an external command; replaced in tests
var CommandRunner = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// DefaultDownloadDir returns ~/Downloads/videogen, or FallbackDownloadsDir
func DefaultDownloadDir() string {
	dir, err := GetHomeDownloadsDir()
	if err != nil {
		return FallbackDownloadsDir
	}
	return filepath.Join(dir, AppDownloadsSubdir)
}

// RevealCommand returns the command that shows filePath in the system file manager
func RevealCommand(goos, filePath string) (string, []string, error) {
	switch goos {
	case OSDarwin:
		return OpenCommand, []string{MacOSSelectFlag, filePath}, nil
	case OSWindows:
		return ExplorerCommand, []string{WindowsSelectParam, filePath}, nil
	case OSLinux:
		// File selection is not standardized on Linux, open the parent directory
		return XDGOpenCommand, []string{filepath.Dir(filePath)}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// OpenCommandFor returns the command that opens filePath with the default application
func OpenCommandFor(goos, filePath string) (string, []string, error) {
	switch goos {
	case OSDarwin:
		return OpenCommand, []string{filePath}, nil
	case OSWindows:
		return CmdCommand, []string{WindowsCmdFlag, StartCommand, "", filePath}, nil
	case OSLinux:
		return XDGOpenCommand, []string{filePath}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}
	name, args, err := RevealCommand(runtime.GOOS, absPath)
	if err != nil {
		return err
	}
	return CommandRunner(name, args...)
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}
	name, args, err := OpenCommandFor(runtime.GOOS, absPath)
	if err != nil {
		return err
	}
	return CommandRunner(name, args...)
}

func existingAbsPath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %v", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}
