// Package art renders images as ANSI half-block art.
//
// Each terminal cell shows two vertical pixels: the upper one as the
// foreground of '▀' and the lower one as the background. Colours are
// averaged over 2x2 blocks of the resized image.
package art

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Decode reads an image in any registered format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Render converts img to width x height cells of truecolor ANSI art.
func Render(img image.Image, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	resized := resize.Resize(uint(width*2), uint(height*4), img, resize.Lanczos3)

	var b strings.Builder
	for row := 0; row < height; row++ {
		y := row * 4
		for col := 0; col < width; col++ {
			x := col * 2
			upper := averageColor(
				colorAt(resized, x, y), colorAt(resized, x+1, y),
				colorAt(resized, x, y+1), colorAt(resized, x+1, y+1),
			)
			lower := averageColor(
				colorAt(resized, x, y+2), colorAt(resized, x+1, y+2),
				colorAt(resized, x, y+3), colorAt(resized, x+1, y+3),
			)
			b.WriteString(cell('▀', upper, lower))
		}
		if row < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Placeholder draws a plain box of the given size with a centred label.
// Used for images that are still loading or failed to load.
func Placeholder(width, height int, label string) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = blank
	}

	runes := []rune(label)
	if len(runes) > width {
		runes = runes[:width]
	}
	pad := (width - len(runes)) / 2
	lines[height/2] = strings.Repeat(" ", pad) + string(runes) + strings.Repeat(" ", width-pad-len(runes))
	return strings.Join(lines, "\n")
}

// colorAt returns black outside the image bounds.
func colorAt(img image.Image, x, y int) colorful.Color {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// fully transparent pixel
		return colorful.Color{}
	}
	return c
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}.Clamped()
}

func cell(ch rune, fg, bg colorful.Color) string {
	f := toRGBA(fg)
	k := toRGBA(bg)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		f.R, f.G, f.B, k.R, k.G, k.B, ch)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
