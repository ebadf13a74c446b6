package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hailam/chesscore/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// cell is the side of one square in SVG user units.
const cell = 100

// labelMargin is the strip left of and below the board used for
// coordinates, in pixels.
const labelMargin = 16

var (
	lightSquare     = "#f0d9b5"
	darkSquare      = "#b58863"
	highlightSquare = "#9fc76a"
	background      = color.RGBA{0x30, 0x2e, 0x2b, 0xff}
	labelColor      = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
)

// Options controls the diagram.
type Options struct {
	Size      int            // board side in pixels, without labels; default 400
	Flip      bool           // draw from Black's side
	Highlight []board.Square // squares to tint, e.g. possible moves
}

// Image rasterizes the board into an RGBA image.
func Image(v board.View, opts Options) (*image.RGBA, error) {
	size := opts.Size
	if size <= 0 {
		size = 400
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(boardSVG(v, opts)))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}

	w, h := size+labelMargin, size+labelMargin
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	icon.SetTarget(labelMargin, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	drawLabels(rgba, size, opts.Flip)
	return rgba, nil
}

// Encode writes img as png, bmp or tiff.
func Encode(w io.Writer, format string, img image.Image) error {
	switch strings.ToLower(format) {
	case "", "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format: %s", format)
	}
}

// FormatFromPath picks an image format from a file extension.
func FormatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// squareOrigin returns the SVG coordinates of the top-left corner of sq.
func squareOrigin(sq board.Square, flip bool) (x, y int) {
	col, row := sq.File, board.Size-1-sq.Rank
	if flip {
		col, row = board.Size-1-sq.File, sq.Rank
	}
	return col * cell, row * cell
}

func boardSVG(v board.View, opts Options) string {
	var sb strings.Builder
	side := board.Size * cell
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`, side, side, side, side)

	lit := make(map[board.Square]bool, len(opts.Highlight))
	for _, sq := range opts.Highlight {
		lit[sq] = true
	}

	for rank := 0; rank < board.Size; rank++ {
		for file := 0; file < board.Size; file++ {
			sq := board.NewSquare(file, rank)
			x, y := squareOrigin(sq, opts.Flip)
			fill := lightSquare
			if (file+rank)%2 == 0 {
				fill = darkSquare
			}
			if lit[sq] {
				fill = highlightSquare
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`, x, y, cell, cell, fill)
		}
	}

	for rank := 0; rank < board.Size; rank++ {
		for file := 0; file < board.Size; file++ {
			sq := board.NewSquare(file, rank)
			p, ok := v.PieceAt(sq)
			if !ok {
				continue
			}
			x, y := squareOrigin(sq, opts.Flip)
			writePiece(&sb, p, x, y)
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// Piece outlines in a 100x100 cell.
var (
	pawnBody   = []int{30, 85, 70, 85, 60, 50, 40, 50}
	rookBody   = []int{25, 85, 75, 85, 75, 75, 68, 75, 68, 40, 75, 40, 75, 20, 65, 20, 65, 28, 56, 28, 56, 20, 44, 20, 44, 28, 35, 28, 35, 20, 25, 20, 25, 40, 32, 40, 32, 75, 25, 75}
	bishopBody = []int{50, 15, 68, 55, 60, 75, 75, 85, 25, 85, 40, 75, 32, 55}
	knightBody = []int{30, 85, 72, 85, 70, 50, 62, 22, 45, 18, 25, 45, 32, 52, 46, 42, 38, 62, 30, 75}
	queenBody  = []int{22, 30, 34, 55, 40, 25, 50, 52, 60, 25, 66, 55, 78, 30, 72, 85, 28, 85}
	kingBody   = []int{30, 85, 70, 85, 64, 45, 36, 45}
	kingCross  = []int{46, 12, 54, 12, 54, 22, 62, 22, 62, 30, 54, 30, 54, 42, 46, 42, 46, 30, 38, 30, 38, 22, 46, 22}
)

func writePiece(sb *strings.Builder, p board.Piece, x, y int) {
	fill, stroke := "#f8f8f8", "#202020"
	if p.Color == board.Black {
		fill, stroke = "#202020", "#e8e8e8"
	}
	style := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="3"`, fill, stroke)

	polygon := func(pts []int) {
		fmt.Fprintf(sb, `<polygon points="%s" %s/>`, points(x, y, pts), style)
	}

	switch p.Type {
	case board.Pawn:
		polygon(pawnBody)
		fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="14" %s/>`, x+50, y+38, style)
	case board.Knight:
		polygon(knightBody)
	case board.Bishop:
		polygon(bishopBody)
		fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="5" %s/>`, x+50, y+12, style)
	case board.Rook:
		polygon(rookBody)
	case board.Queen:
		polygon(queenBody)
	case board.King:
		polygon(kingBody)
		polygon(kingCross)
	}
}

func points(x, y int, pts []int) string {
	parts := make([]string, 0, len(pts)/2)
	for i := 0; i+1 < len(pts); i += 2 {
		parts = append(parts, strconv.Itoa(x+pts[i])+","+strconv.Itoa(y+pts[i+1]))
	}
	return strings.Join(parts, " ")
}

func drawLabels(dst *image.RGBA, size int, flip bool) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}
	step := size / board.Size

	for i := 0; i < board.Size; i++ {
		file, rank := i, board.Size-1-i
		if flip {
			file, rank = board.Size-1-i, i
		}

		fileLabel := string(rune('a' + file))
		adv := d.MeasureString(fileLabel).Ceil()
		d.Dot = fixed.P(labelMargin+i*step+(step-adv)/2, size+labelMargin-3)
		d.DrawString(fileLabel)

		rankLabel := strconv.Itoa(rank + 1)
		adv = d.MeasureString(rankLabel).Ceil()
		d.Dot = fixed.P((labelMargin-adv)/2, i*step+step/2+5)
		d.DrawString(rankLabel)
	}
}
