//go:build tools
// +build tools

// Package tools declares Go tool dependencies so `go mod tidy` keeps them in
// go.sum even though no non-test, non-generate code imports them.
package tools

import (
	_ "golang.org/x/lint/golint"
	_ "golang.org/x/tools/cmd/stringer"
)
