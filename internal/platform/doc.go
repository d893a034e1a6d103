package platform

// Package platform contains OS integration glue: download directory
// resolution, directory creation and opening/revealing saved videos.
