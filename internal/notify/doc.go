package notify

// Package notify renders notification banners and keeps a stack of them,
// removing each one after a fixed timeout.
