// Package fonts locates TrueType faces for the raster backend and names the
// equivalent web font stacks for the markup backend.
//
// Fonts are searched in an optional directory (NAMETAG_FONT_DIR) and then in
// the platform font directories. When nothing usable is found the raster
// backend falls back to the built-in 7x13 bitmap face from
// golang.org/x/image/font/basicfont, enlarged to the requested size.
package fonts

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// EnvFontDir names the environment variable holding an extra font directory.
const EnvFontDir = "NAMETAG_FONT_DIR"

// Family names match prefs.FontFamily values.
const (
	Helvetica = "helvetica"
	Times     = "times"
	Courier   = "courier"

	// Handwriting families of the QR surround banners.
	Caveat        = "caveat"
	DancingScript = "dancing-script"
	Kalam         = "kalam"
)

type candidates struct {
	regular, bold []string
}

// files lists metric-compatible TrueType files per family, most preferred
// first.
var files = map[string]candidates{
	Helvetica: {
		regular: []string{"Helvetica.ttf", "Arial.ttf", "arial.ttf", "LiberationSans-Regular.ttf", "DejaVuSans.ttf"},
		bold:    []string{"Helvetica-Bold.ttf", "Arial Bold.ttf", "arialbd.ttf", "LiberationSans-Bold.ttf", "DejaVuSans-Bold.ttf"},
	},
	Times: {
		regular: []string{"Times New Roman.ttf", "times.ttf", "LiberationSerif-Regular.ttf", "DejaVuSerif.ttf"},
		bold:    []string{"Times New Roman Bold.ttf", "timesbd.ttf", "LiberationSerif-Bold.ttf", "DejaVuSerif-Bold.ttf"},
	},
	Courier: {
		regular: []string{"Courier New.ttf", "cour.ttf", "LiberationMono-Regular.ttf", "DejaVuSansMono.ttf"},
		bold:    []string{"Courier New Bold.ttf", "courbd.ttf", "LiberationMono-Bold.ttf", "DejaVuSansMono-Bold.ttf"},
	},
	Caveat: {
		regular: []string{"Caveat-Regular.ttf", "Caveat[wght].ttf"},
		bold:    []string{"Caveat-Bold.ttf", "Caveat-Regular.ttf", "Caveat[wght].ttf"},
	},
	DancingScript: {
		regular: []string{"DancingScript-Regular.ttf", "DancingScript[wght].ttf"},
		bold:    []string{"DancingScript-Bold.ttf", "DancingScript-Regular.ttf", "DancingScript[wght].ttf"},
	},
	Kalam: {
		regular: []string{"Kalam-Regular.ttf"},
		bold:    []string{"Kalam-Bold.ttf", "Kalam-Regular.ttf"},
	},
}

// webStacks are the CSS font-family values of each family.
var webStacks = map[string]string{
	Helvetica: "Arial, Helvetica, sans-serif",
	Times:     `"Times New Roman", Times, serif`,
	Courier:   `"Courier New", Courier, monospace`,

	Caveat:        "Caveat, cursive",
	DancingScript: `"Dancing Script", cursive`,
	Kalam:         "Kalam, cursive",
}

// WebStack returns the CSS font-family stack for family. Unknown families
// get the sans-serif stack.
func WebStack(family string) string {
	if s, ok := webStacks[family]; ok {
		return s
	}
	return webStacks[Helvetica]
}

// Fallback returns the built-in bitmap face at its native 13px height.
func Fallback() font.Face { return basicfont.Face7x13 }

// Resolver finds and parses TrueType fonts. Parsed fonts are cached, so a
// Resolver should be shared across renders. It is safe for concurrent use.
type Resolver struct {
	dir    string
	system bool

	mu     sync.Mutex
	parsed map[string]*truetype.Font
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDir adds a directory searched before the system font directories.
func WithDir(dir string) Option {
	return func(r *Resolver) { r.dir = dir }
}

// WithSystemFonts enables or disables the platform font lookup.
func WithSystemFonts(enabled bool) Option {
	return func(r *Resolver) { r.system = enabled }
}

// NewResolver creates a Resolver. System fonts are searched unless
// disabled; the directory from NAMETAG_FONT_DIR is used when no WithDir
// option is given.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		dir:    os.Getenv(EnvFontDir),
		system: true,
		parsed: make(map[string]*truetype.Font),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the extra font directory, if any.
func (r *Resolver) Dir() string { return r.dir }

// Find returns the path of the TrueType file for family and weight.
func (r *Resolver) Find(family string, bold bool) (string, error) {
	c, ok := files[family]
	if !ok {
		return "", errs.New(errs.ErrCodeInvalidFontFamily, "unknown font family %q", family)
	}
	names := c.regular
	if bold {
		names = c.bold
	}

	if r.dir != "" {
		for _, name := range names {
			p := filepath.Join(r.dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, nil
			}
		}
	}
	if r.system {
		for _, name := range names {
			if p, err := findfont.Find(name); err == nil {
				return p, nil
			}
		}
	}
	return "", errs.New(errs.ErrCodeAssetUnavailable, "no TrueType font for %s (bold=%v)", family, bold)
}

// Font returns the parsed TrueType font for family and weight.
func (r *Resolver) Font(family string, bold bool) (*truetype.Font, error) {
	path, err := r.Find(family, bold)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.parsed[path]; ok {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "read font %s", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "parse font %s", path)
	}
	r.parsed[path] = f
	return f, nil
}

// Face returns a face of the given point size rendered at dpi. Faces hold
// glyph caches and must not be shared between goroutines.
func (r *Resolver) Face(family string, bold bool, size, dpi float64) (font.Face, error) {
	f, err := r.Font(family, bold)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

// Resolution reports where one family and weight resolved to.
type Resolution struct {
	Family string
	Bold   bool
	Path   string
	Err    error
}

// Report resolves every family and weight.
func (r *Resolver) Report() []Resolution {
	var out []Resolution
	for _, fam := range []string{Helvetica, Times, Courier} {
		for _, bold := range []bool{false, true} {
			p, err := r.Find(fam, bold)
			out = append(out, Resolution{Family: fam, Bold: bold, Path: p, Err: err})
		}
	}
	return out
}

// Ascent returns the ascent of face in pixels.
func Ascent(face font.Face) float64 {
	return toFloat(face.Metrics().Ascent)
}

// Descent returns the descent of face in pixels.
func Descent(face font.Face) float64 {
	return toFloat(face.Metrics().Descent)
}

// Width returns the advance width of s in pixels.
func Width(face font.Face, s string) float64 {
	return toFloat(font.MeasureString(face, s))
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
