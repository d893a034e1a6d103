package config

import "errors"

// ErrInvalidServerURL is returned for server URLs that are not absolute http(s) URLs
var ErrInvalidServerURL = errors.New("server URL must start with http:// or https://")
