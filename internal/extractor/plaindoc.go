package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lu4p/cat"
)

// extractPlainDoc handles the simple text-bearing formats (.txt, .rtf,
// .odt). The cat library works on paths, so the bytes take a short detour
// through a temp file.
func (e *documentExtractor) extractPlainDoc(data []byte, ext string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "screener-doc-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "resume"+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	text, err := cat.File(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = CleanWhitespace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n"), nil
}
