// Package snapshot renders evaluated frames to PNG images for offline
// inspection of the terrain and color networks.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/Faultbox/neuraterra/internal/engine/frame"
	"github.com/Faultbox/neuraterra/internal/engine/terrain"
)

// Writer saves frame snapshots as PNG files.
type Writer struct {
	outputDir string
	prefix    string
}

// NewWriter creates a snapshot writer. Files are written to outputDir
// with names like "<prefix>_color_0042.png".
func NewWriter(outputDir, prefix string) *Writer {
	return &Writer{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// SetOutputDir sets the output directory for snapshots.
func (w *Writer) SetOutputDir(dir string) {
	w.outputDir = dir
}

// SaveColor renders the per-vertex colors of a frame as a PNG and returns
// the written filename.
func (w *Writer) SaveColor(grid *terrain.Grid, res *frame.Result, frameIndex int) (string, error) {
	img := ColorImage(grid, res)
	return w.save(img, "color", frameIndex)
}

// SaveHeight renders the height field of a frame as a grayscale PNG,
// normalized to the frame's observed height range, and returns the
// written filename.
func (w *Writer) SaveHeight(grid *terrain.Grid, res *frame.Result, frameIndex int) (string, error) {
	img := HeightImage(grid, res)
	return w.save(img, "height", frameIndex)
}

func (w *Writer) save(img image.Image, kind string, frameIndex int) (string, error) {
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := fmt.Sprintf("%s_%s_%04d.png", w.prefix, kind, frameIndex)
	if w.outputDir != "" {
		filename = filepath.Join(w.outputDir, filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// ColorImage maps each grid vertex to one pixel using its evaluated color.
// Grid row 0 (smallest Z) lands on the bottom image row.
func ColorImage(grid *terrain.Grid, res *frame.Result) *image.RGBA {
	size := grid.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for row := 0; row < size; row++ {
		imgY := size - 1 - row
		for col := 0; col < size; col++ {
			out := res.Outputs[row*size+col]
			img.SetRGBA(col, imgY, color.RGBA{
				R: channelByte(out.Color[0]),
				G: channelByte(out.Color[1]),
				B: channelByte(out.Color[2]),
				A: 255,
			})
		}
	}
	return img
}

// HeightImage maps each grid vertex to one grayscale pixel, normalized to
// the frame's [MinHeight, MaxHeight] range. A flat frame renders mid-gray.
func HeightImage(grid *terrain.Grid, res *frame.Result) *image.Gray {
	size := grid.Size
	img := image.NewGray(image.Rect(0, 0, size, size))

	span := res.MaxHeight - res.MinHeight
	for row := 0; row < size; row++ {
		imgY := size - 1 - row
		for col := 0; col < size; col++ {
			h := res.Outputs[row*size+col].Position.Y
			var t float32 = 0.5
			if span > 0 {
				t = (h - res.MinHeight) / span
			}
			img.SetGray(col, imgY, color.Gray{Y: channelByte(t)})
		}
	}
	return img
}

func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
