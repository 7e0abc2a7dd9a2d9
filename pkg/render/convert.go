package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Format is a raster or print output produced from SVG.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// rsvgConvert is the librsvg converter binary.
var rsvgConvert = "rsvg-convert"

// Convert turns SVG into format with librsvg. scale only applies to PNG.
func Convert(ctx context.Context, svg []byte, format Format, scale float64) ([]byte, error) {
	args := []string{"-f", string(format)}
	switch format {
	case FormatPDF:
	case FormatPNG:
		if scale <= 0 {
			scale = 1
		}
		args = append(args, "-z", strconv.FormatFloat(scale, 'f', 2, 64))
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	path, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, fmt.Errorf("%s export requires librsvg (brew install librsvg, apt install librsvg2-bin): %w", format, err)
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &out, &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", rsvgConvert, err, stderr.String())
	}
	return out.Bytes(), nil
}
