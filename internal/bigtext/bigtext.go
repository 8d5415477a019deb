// Package bigtext renders short text as large half-block art.
//
// Text is rasterized with the Go fonts and every terminal cell covers one
// pixel column and two pixel rows (▀ ▄ █), so a font size in px maps to
// roughly px/2 terminal rows.
package bigtext

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Weight selects the typeface of a run.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Run is a piece of text drawn with one weight.
type Run struct {
	Text   string
	Weight Weight
}

// Span marks the columns [Start, End) drawn by the run at index Run.
type Span struct {
	Start int
	End   int
	Run   int
}

// Block is rendered half-block art. Every row has exactly Width runes.
type Block struct {
	Rows  []string
	Spans []Span
	Width int
}

const (
	// MinSize is the smallest pixel size Fit will try.
	MinSize = 8
	padding = 1
	// threshold for a pixel to count as ink
	threshold = 96
)

type faceKey struct {
	weight Weight
	size   int
}

var (
	fontsOnce sync.Once
	fonts     map[Weight]*opentype.Font
	fontsErr  error

	facesMu sync.Mutex
	faces   = map[faceKey]font.Face{}
)

func loadFonts() {
	fonts = map[Weight]*opentype.Font{}
	for weight, ttf := range map[Weight][]byte{Regular: goregular.TTF, Bold: gobold.TTF} {
		parsed, err := opentype.Parse(ttf)
		if err != nil {
			fontsErr = fmt.Errorf("failed to parse font: %w", err)
			return
		}
		fonts[weight] = parsed
	}
}

func faceFor(weight Weight, size int) (font.Face, error) {
	fontsOnce.Do(loadFonts)
	if fontsErr != nil {
		return nil, fontsErr
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	key := faceKey{weight: weight, size: size}
	if face, ok := faces[key]; ok {
		return face, nil
	}
	parsed, ok := fonts[weight]
	if !ok {
		parsed = fonts[Regular]
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	faces[key] = face
	return face, nil
}

// Render rasterizes runs side by side at the given pixel size.
func Render(runs []Run, size int) (Block, error) {
	if size < 1 {
		return Block{}, fmt.Errorf("font size must be > 0")
	}
	runFaces := make([]font.Face, len(runs))
	widths := make([]int, len(runs))
	ascent, descent := 0, 0
	total := padding * 2
	for i, run := range runs {
		face, err := faceFor(run.Weight, size)
		if err != nil {
			return Block{}, err
		}
		runFaces[i] = face
		widths[i] = font.MeasureString(face, run.Text).Ceil()
		total += widths[i]
		metrics := face.Metrics()
		if a := metrics.Ascent.Ceil(); a > ascent {
			ascent = a
		}
		if d := metrics.Descent.Ceil(); d > descent {
			descent = d
		}
	}
	height := ascent + descent
	if height%2 == 1 {
		height++
	}
	if height == 0 || total <= padding*2 {
		return Block{}, nil
	}

	img := image.NewGray(image.Rect(0, 0, total, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	spans := make([]Span, 0, len(runs))
	x := padding
	for i, run := range runs {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.White,
			Face: runFaces[i],
			Dot:  fixed.P(x, ascent),
		}
		d.DrawString(run.Text)
		spans = append(spans, Span{Start: x, End: x + widths[i], Run: i})
		x += widths[i]
	}
	if len(spans) > 0 {
		spans[0].Start = 0
		spans[len(spans)-1].End = total
	}

	return Block{Rows: halfBlocks(img), Spans: spans, Width: total}, nil
}

// Fit renders runs at the largest size <= size whose width fits maxCols.
// It reports false when even MinSize does not fit.
func Fit(runs []Run, size, maxCols int) (Block, bool) {
	for s := size; s >= MinSize; s -= 2 {
		block, err := Render(runs, s)
		if err != nil {
			return Block{}, false
		}
		if block.Width <= maxCols {
			return block, true
		}
	}
	return Block{}, false
}

func halfBlocks(img *image.Gray) []string {
	bounds := img.Bounds()
	rows := make([]string, 0, bounds.Dy()/2)
	line := make([]rune, bounds.Dx())
	for y := 0; y < bounds.Dy(); y += 2 {
		for x := 0; x < bounds.Dx(); x++ {
			top := img.GrayAt(x, y).Y > threshold
			bottom := y+1 < bounds.Dy() && img.GrayAt(x, y+1).Y > threshold
			switch {
			case top && bottom:
				line[x] = '█'
			case top:
				line[x] = '▀'
			case bottom:
				line[x] = '▄'
			default:
				line[x] = ' '
			}
		}
		rows = append(rows, string(line))
	}
	return rows
}
