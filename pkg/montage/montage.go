// Package montage implements the grid montage layout engine: it arranges
// a fixed number of images onto a base canvas, resizing each one with its
// aspect ratio preserved and placing it into a computed grid cell.
package montage

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/types"
)

// ErrUnsupportedImageCount is returned when the number of input images
// has no entry in the layout table.
var ErrUnsupportedImageCount = errors.New("unsupported image count")

// Engine composes grid montages. It is synchronous and holds no state
// across calls beyond its scaler; it is safe to call from any single
// goroutine without locking.
type Engine struct {
	scaler xdraw.Scaler
	logger logger.Logger
}

// NewEngine creates a montage engine using a Catmull-Rom scaler.
func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		scaler: xdraw.CatmullRom,
		logger: log,
	}
}

// CreateMontage derives the grid layout from the number of image paths,
// builds the base canvas from spec and composes the montage. For counts
// outside the layout table it returns ErrUnsupportedImageCount and no
// canvas is produced.
func (e *Engine) CreateMontage(paths []string, spec types.CanvasSpec) (*image.RGBA, error) {
	layout, ok := types.LayoutForCount(len(paths))
	if !ok {
		return nil, fmt.Errorf("%w: got %d images, supported counts are %v",
			ErrUnsupportedImageCount, len(paths), types.SupportedCounts())
	}

	base, err := NewCanvas(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}

	return e.Compose(base, paths, layout)
}

// Compose resizes each image to fit its grid cell and pastes it onto the
// base canvas in input order. The canvas is mutated in place and returned;
// when the layout has more columns than rows the canvas is first rotated
// 90 degrees with its bounding box expanded, so portrait grids stay
// upright. Any unreadable image fails the whole composition.
func (e *Engine) Compose(base *image.RGBA, paths []string, layout types.Layout) (*image.RGBA, error) {
	rows, cols := layout.Rows, layout.Cols
	if cols > rows {
		base = rotate90(base)
	}

	width := base.Bounds().Dx()
	height := base.Bounds().Dy()
	offset := width / 100
	maxImgW := (width - (rows+1)*offset) / rows
	maxImgH := (height - (cols+1)*offset) / cols
	canvasAspect := float64(width) / float64(height)

	if e.logger != nil {
		e.logger.Debug(fmt.Sprintf("Composing %dx%d montage on %dx%d canvas (cell %dx%d, offset %d)",
			rows, cols, width, height, maxImgW, maxImgH, offset))
	}

	for i, path := range paths {
		img, err := loadImage(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", path, err)
		}

		// Resize bound: touch the cell's width or height exactly,
		// whichever the image's aspect ratio hits first.
		imgW := img.Bounds().Dx()
		imgH := img.Bounds().Dy()
		imgAspect := float64(imgW) / float64(imgH)

		var newW, newH int
		if imgAspect > canvasAspect {
			newW = maxImgW
			newH = int(float64(maxImgW) / imgAspect)
		} else {
			newW = int(float64(maxImgH) * imgAspect)
			newH = maxImgH
		}

		posX := offset + (i%rows)*(maxImgW+offset)
		posY := offset + (i/rows)*(maxImgH+offset)

		cell := image.Rect(posX, posY, posX+newW, posY+newH)
		e.scaler.Scale(base, cell, img, img.Bounds(), xdraw.Src, nil)

		if e.logger != nil {
			e.logger.Debug(fmt.Sprintf("Pasted image %d at (%d,%d) as %dx%d", i, posX, posY, newW, newH))
		}
	}

	return base, nil
}
