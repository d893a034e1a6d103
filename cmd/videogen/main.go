package main

import "github.com/ytget/videogen/internal/bootstrap"

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	bootstrap.Run(version)
}
