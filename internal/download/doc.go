package download

// Package download delivers a generated video to disk. The bytes go to a
// pending temp file first, which is either atomically renamed into place or
// removed, so a partial file is never left behind.
