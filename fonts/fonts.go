// Package fonts resolves font files from an ordered fallback chain.
// The chain is policy data owned by configuration, never by the layout
// engine.
package fonts

import (
	"errors"
	"os"

	"golang.org/x/image/font/gofont/goregular"
)

// ErrNotFound means no file in the chain could be read.
var ErrNotFound = errors.New("fonts: no font file found in chain")

// Resolve returns the path and bytes of the first readable font in the
// ordered chain.
func Resolve(chain []string) (string, []byte, error) {
	for _, path := range chain {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			return path, data, nil
		}
	}
	return "", nil, ErrNotFound
}

// Fallback returns the built-in face used for degraded rendering when
// every configured candidate is unavailable. It has no Arabic coverage;
// callers should log a warning when they fall back to it.
func Fallback() []byte {
	return goregular.TTF
}
