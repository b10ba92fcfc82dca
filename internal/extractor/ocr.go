package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	defaultOCRDPI     = 300
	defaultOCRTimeout = 60 * time.Second
)

// Runner lets tests stub the external binaries.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// OCRConfig configures the rasterize-and-recognize fallback. Binary names
// can be absolute paths; empty values fall back to the PATH lookups.
type OCRConfig struct {
	Pdftoppm  string
	Tesseract string
	DPI       int
	Timeout   time.Duration
}

// OCRClient shells out to pdftoppm and tesseract. Recognition runs with a
// fixed engine mode tuned for uniform text blocks (LSTM engine, single
// block page segmentation).
type OCRClient struct {
	cfg    OCRConfig
	runner Runner
}

func NewOCRClient(cfg OCRConfig) *OCRClient {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = defaultOCRDPI
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultOCRTimeout
	}
	return &OCRClient{cfg: cfg, runner: execRunner{}}
}

// RasterizePDF renders every page of the PDF to PNG images in a temp
// directory and returns the image paths in page order. Call cleanup to
// remove the temp files.
func (c *OCRClient) RasterizePDF(ctx context.Context, data []byte) ([]string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "screener-ocr-*")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	input := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(input, data, 0o600); err != nil {
		cleanup()
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png input.pdf <tmp>/page
	_, errb, err := c.runner.Run(ctx, c.cfg.Pdftoppm, "-r", strconv.Itoa(c.cfg.DPI), "-png", input, prefix)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm: %w (%s)", err, bytes.TrimSpace(errb))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm produced no images")
	}
	return matches, cleanup, nil
}

// RecognizePage runs tesseract over one rasterized page image.
func (c *OCRClient) RecognizePage(ctx context.Context, imagePath, language string) (string, error) {
	if language == "" {
		language = DefaultOCRLanguage
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	// tesseract <img> stdout -l <lang> --oem 1 --psm 6
	out, errb, err := c.runner.Run(ctx, c.cfg.Tesseract,
		imagePath, "stdout", "-l", language, "--oem", "1", "--psm", "6")
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, bytes.TrimSpace(errb))
	}
	return string(out), nil
}
