// Package version exposes build information set through -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/fetchkit/version.Version=1.0.0"
package version
