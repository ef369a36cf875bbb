//go:build tools

package tools

// Tracks the goose and swag CLIs in go.mod for `go run`.
import (
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
)
