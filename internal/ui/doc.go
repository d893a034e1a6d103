package ui

// Package ui provides the Fyne window: the topic form, progress widgets,
// the notification stack and the settings dialog.
