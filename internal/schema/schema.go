// Package schema holds the descriptor of the course database that grounds
// every prompt. It is documentation for the model, not DDL that gets run.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed courses.sql
var courses string

// Default returns the descriptor compiled into the binary.
func Default() string {
	return courses
}

// Load returns the descriptor stored at path, or Default when path is empty.
// The file is read once at startup so the text can follow schema migrations
// without a rebuild.
func Load(path string) (string, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read schema descriptor: %w", err)
	}
	text := string(b)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("schema descriptor %s is empty", path)
	}
	return text, nil
}
