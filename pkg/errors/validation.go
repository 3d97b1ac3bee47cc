package errors

import (
	"net"
	"regexp"
	"strings"
	"unicode"
)

// ValidateInputPath validates a user-supplied input file path.
// It rejects paths that are empty, unreasonably long, or carry control
// characters. Existence is checked separately by the caller; this guards
// against garbage before any filesystem access happens.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "input path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "input path contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// The same character rules as ValidateInputPath apply, plus the path must
// not name a directory.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path cannot be a directory")
	}

	return nil
}

// hexColorRegex matches 6-digit hexadecimal colors with a leading #.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHexColor validates a color string like "#4e79a7".
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid hex color: %q", color)
	}

	return nil
}

// ValidatePalette validates a cluster color palette.
// A palette must contain at least one color and every entry must be a
// 6-digit hex color.
func ValidatePalette(palette []string) error {
	if len(palette) == 0 {
		return New(ErrCodeInvalidInput, "palette cannot be empty")
	}

	for i, color := range palette {
		if err := ValidateHexColor(color); err != nil {
			return New(ErrCodeInvalidInput, "palette entry %d: %s", i, UserMessage(err))
		}
	}

	return nil
}

// ValidateListenAddr validates a host:port listen address for the preview
// server.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "listen address cannot be empty")
	}

	if _, _, err := net.SplitHostPort(addr); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid listen address: %q", addr)
	}

	return nil
}
