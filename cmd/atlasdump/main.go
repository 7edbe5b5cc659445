// Command atlasdump builds a glyph atlas from a font file and writes
// the coverage texture as a grayscale PNG, optionally with a report of
// every packed glyph. It is the quickest way to eyeball what a Font
// will hand to the GPU.
package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/fontatlas"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		fontPath string
		faceName string
		size     int
		bold     bool
		italic   bool
		pow2     bool
		flipV    bool
		ranges   string
		outPath  string
		list     bool
		verbose  bool
	)

	pflag.StringVarP(&fontPath, "font", "f", "", "Path to a TTF/OTF font file (required)")
	pflag.StringVar(&faceName, "face", "", "Face name to select (default: the file's family name)")
	pflag.IntVarP(&size, "size", "s", 32, "Pixel height to rasterize at")
	pflag.BoolVarP(&bold, "bold", "b", false, "Prefer the bold variant")
	pflag.BoolVarP(&italic, "italic", "i", false, "Prefer the italic variant")
	pflag.BoolVar(&pow2, "pow2", false, "Round atlas extents up to powers of two")
	pflag.BoolVar(&flipV, "flip-v", false, "Flip the V texture axis (OpenGL convention)")
	pflag.StringVarP(&ranges, "ranges", "r", "", "Code point ranges, e.g. \"32-127,160-255\" (default: 32-127)")
	pflag.StringVarP(&outPath, "out", "o", "atlas.png", "Output PNG path")
	pflag.BoolVarP(&list, "list", "l", false, "Print a report of every packed glyph")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pflag.Parse()

	if fontPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --font is required")
		pflag.Usage()
		return 1
	}

	if verbose {
		fontatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading font: %v\n", err)
		return 1
	}

	src, err := fontatlas.NewSFNTSource(data, fontatlas.WithGoTextKerning())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing font: %v\n", err)
		return 1
	}
	if faceName == "" {
		names := src.FaceNames()
		if len(names) == 0 || names[0] == "" {
			fmt.Fprintln(os.Stderr, "Error: font has no family name; pass --face")
			return 1
		}
		faceName = names[0]
	}

	charRanges, err := parseRanges(ranges)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing ranges: %v\n", err)
		return 1
	}

	var flags fontatlas.FontFlags
	if bold {
		flags |= fontatlas.FontBold
	}
	if italic {
		flags |= fontatlas.FontItalic
	}
	if pow2 {
		flags |= fontatlas.TexturePow2
	}
	if flipV {
		flags |= fontatlas.TextureFromLeftBottom
	}

	font, err := fontatlas.Build(fontatlas.FontDesc{
		FaceName:    faceName,
		PixelHeight: size,
		Flags:       flags,
		CharRanges:  charRanges,
	}, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building atlas: %v\n", err)
		return 1
	}

	pixels, width, height, rowPitch := font.TextureData()
	if err := writePNG(outPath, pixels, width, height, rowPitch); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing PNG: %v\n", err)
		return 1
	}
	fmt.Printf("%s: %dx%d pixels, row pitch %d, line gap %.3f\n",
		outPath, width, height, rowPitch, font.LineGap())

	if list {
		printGlyphReport(os.Stdout, font, charRanges)
	}
	return 0
}

// parseRanges parses "32-127,160-255" into CharRanges. An empty string
// selects the default range.
func parseRanges(s string) ([]fontatlas.CharRange, error) {
	if s == "" {
		return nil, nil
	}
	var out []fontatlas.CharRange
	for part := range strings.SplitSeq(s, ",") {
		lo, hi, found := strings.Cut(strings.TrimSpace(part), "-")
		if !found {
			return nil, fmt.Errorf("range %q: want lo-hi", part)
		}
		loV, err := strconv.ParseInt(strings.TrimSpace(lo), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", part, err)
		}
		hiV, err := strconv.ParseInt(strings.TrimSpace(hi), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", part, err)
		}
		out = append(out, fontatlas.CharRange{Lo: rune(loV), Hi: rune(hiV)})
	}
	return out, nil
}

// writePNG saves the single-channel atlas as a grayscale PNG.
func writePNG(path string, pixels []byte, width, height, rowPitch int) error {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+width], pixels[y*rowPitch:y*rowPitch+width])
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // only Encode's error is reported
	return png.Encode(f, img)
}

// printGlyphReport lists every covered code point with its Unicode
// name, advance, and quad size.
func printGlyphReport(w *os.File, font *fontatlas.Font, ranges []fontatlas.CharRange) {
	if len(ranges) == 0 {
		ranges = []fontatlas.CharRange{fontatlas.DefaultCharRange}
	}
	for _, cr := range ranges {
		for r := cr.Lo; r <= cr.Hi; r++ {
			if !font.HasGlyph(r) {
				continue
			}
			rec := font.Record(r)
			fmt.Fprintf(w, "U+%04X %-40s adv %.3f size %.3fx%.3f\n",
				r, runenames.Name(r), rec.Advance, rec.Size.X, rec.Size.Y)
		}
	}
}
