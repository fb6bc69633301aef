package montage

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png" // capture frames and backgrounds may be PNG
	"os"

	"github.com/schimen/photobooth/pkg/types"
)

// jpegQuality is used when persisting montages.
const jpegQuality = 90

// NewCanvas builds the base canvas for a montage: a loaded background
// image when spec.Background is set, otherwise a solid-fill buffer of
// the configured dimensions.
func NewCanvas(spec types.CanvasSpec) (*image.RGBA, error) {
	if spec.Background != "" {
		img, err := loadImage(spec.Background)
		if err != nil {
			return nil, fmt.Errorf("failed to read background %s: %w", spec.Background, err)
		}
		return toRGBA(img), nil
	}

	width := spec.Width
	height := spec.Height
	if width <= 0 || height <= 0 {
		width = types.DefaultCanvasWidth
		height = types.DefaultCanvasHeight
	}

	base := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(base, base.Bounds(), image.NewUniform(spec.Fill.Color()), image.Point{}, draw.Src)
	return base, nil
}

// SaveJPEG persists a composed montage as a JPEG file.
func SaveJPEG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// loadImage decodes an image file. JPEG and PNG are registered.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// toRGBA returns img as *image.RGBA, copying only when necessary.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// rotate90 rotates the canvas a quarter turn counter-clockwise and
// expands the bounding box, swapping width and height.
func rotate90(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.Set(x, y, src.At(bounds.Min.X+w-1-y, bounds.Min.Y+x))
		}
	}
	return dst
}
