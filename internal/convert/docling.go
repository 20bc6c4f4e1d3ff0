// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/smyrgeorge/lexis/internal/container"
)

const imageDocling = "docling:latest"

// DoclingConverter converts PDFs by piping them through the docling
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type DoclingConverter struct {
	runtime container.Runtime
}

// NewDoclingConverter creates a converter that uses the given container
// runtime to run the docling image. It verifies that the image exists
// locally before returning.
func NewDoclingConverter(rt container.Runtime) (*DoclingConverter, error) {
	if err := rt.ImageExists(imageDocling); err != nil {
		return nil, fmt.Errorf("docling image not available in %s: %w", rt.Name(), err)
	}
	return &DoclingConverter{runtime: rt}, nil
}

// Convert reads the PDF at pdfPath, pipes it through the docling container,
// and returns the resulting Markdown text.
func (d *DoclingConverter) Convert(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := d.runtime.Run(imageDocling, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with docling: %w", pdfPath, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("docling produced empty output for %s", pdfPath)
	}

	return out.String(), nil
}
