package terminal

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"

	"github.com/BourgeoisBear/rasterm"
	"github.com/nfnt/resize"
)

// TermImageMode represents the terminal's image display capability
type TermImageMode int

const (
	TermModeNone TermImageMode = iota
	TermModeKitty
	TermModeIterm
	TermModeSixel
)

// HeroImageID is a stable ID for the hero backdrop (Kitty protocol)
const HeroImageID uint32 = 1008

// Approximate pixel size of one terminal cell, used to size images
const (
	CellWidthPx  = 10
	CellHeightPx = 20
)

// String returns a human-readable name for the terminal mode
func (m TermImageMode) String() string {
	switch m {
	case TermModeKitty:
		return "Kitty"
	case TermModeIterm:
		return "iTerm2"
	case TermModeSixel:
		return "Sixel"
	default:
		return "None"
	}
}

// DetectTerminalMode checks which image protocol the terminal supports
func DetectTerminalMode() TermImageMode {
	if rasterm.IsKittyCapable() {
		return TermModeKitty
	}
	if rasterm.IsItermCapable() {
		return TermModeIterm
	}
	if capable, _ := rasterm.IsSixelCapable(); capable {
		return TermModeSixel
	}
	return TermModeNone
}

// FitImage scales img to cover a cols x rows cell area, keeping its aspect
// ratio. The result may be taller than the area; Crop picks the slice.
func FitImage(img image.Image, cols, rows int) image.Image {
	if img == nil || cols <= 0 || rows <= 0 {
		return img
	}
	width := uint(cols * CellWidthPx)
	b := img.Bounds()
	if b.Dx() == 0 {
		return img
	}
	height := uint(float64(b.Dy()) * float64(width) / float64(b.Dx()))
	minHeight := uint(rows * CellHeightPx)
	if height < minHeight {
		// too wide; scale on height instead and let the sides overflow
		return resize.Resize(0, minHeight, img, resize.Bilinear)
	}
	return resize.Resize(width, height, img, resize.Bilinear)
}

// Crop returns the window of img that is rows cells tall, starting offset
// (0 to 1) of the way down the spare height.
func Crop(img image.Image, cols, rows int, offset float64) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	viewW := min(b.Dx(), cols*CellWidthPx)
	viewH := min(b.Dy(), rows*CellHeightPx)

	offset = max(0, min(1, offset))
	x := b.Min.X + (b.Dx()-viewW)/2
	y := b.Min.Y + int(offset*float64(b.Dy()-viewH))

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(image.Rect(x, y, x+viewW, y+viewH))
	}
	return img
}

// ImageToPaletted converts an image to a paletted image required for Sixel
func ImageToPaletted(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(paletted, bounds, img, bounds.Min, draw.Src)
	return paletted
}

// RenderImageToString renders an image to an escape sequence for the
// terminal mode. Unsupported terminals get an empty string.
func RenderImageToString(img image.Image, mode TermImageMode) (string, error) {
	var buf bytes.Buffer
	var err error

	switch mode {
	case TermModeKitty:
		err = rasterm.KittyWriteImage(&buf, img, rasterm.KittyImgOpts{ImageId: HeroImageID})
	case TermModeIterm:
		err = rasterm.ItermWriteImage(&buf, img)
	case TermModeSixel:
		err = rasterm.SixelWriteImage(&buf, ImageToPaletted(img))
	default:
		return "", nil
	}

	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ClearImages returns the escape sequence that removes drawn images. It is
// printed before leaving the hero view.
func ClearImages(mode TermImageMode) string {
	switch mode {
	case TermModeKitty:
		return fmt.Sprintf("\x1b_Ga=d,i=%d\x1b\\", HeroImageID)
	case TermModeIterm, TermModeSixel:
		// images live in the character grid; a screen clear removes them
		return "\x1b[2J\x1b[H"
	default:
		return ""
	}
}
