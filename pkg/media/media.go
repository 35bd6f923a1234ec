// Package media loads the profile photos and company logos drawn as
// signature images on name tags.
//
// References are either paths relative to a media directory or http(s)
// URLs. Fetched bytes are cached; decoded images are not.
package media

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/httputil"
)

// Kind names a signature image source on the card.
type Kind string

const (
	KindProfile Kind = "profile"
	KindLogo    Kind = "logo"
)

// Loader resolves media references to decoded images.
type Loader struct {
	dir    string
	client *httputil.Client
	cache  cache.Cache
	keyer  cache.Keyer
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient sets the HTTP client used for URL references.
func WithClient(c *httputil.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithCache caches fetched bytes of URL references.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(l *Loader) {
		if c != nil {
			l.cache = c
		}
		if k != nil {
			l.keyer = k
		}
	}
}

// NewLoader creates a Loader reading relative paths from dir.
func NewLoader(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:    dir,
		client: httputil.NewClient(),
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ref returns the media reference of kind on rec.
func Ref(rec *card.Record, kind Kind) string {
	switch kind {
	case KindProfile:
		return rec.ProfilePhoto
	case KindLogo:
		return rec.CompanyLogo
	}
	return ""
}

// Signature loads the signature image of kind for rec.
func (l *Loader) Signature(ctx context.Context, rec *card.Record, kind Kind) (image.Image, error) {
	ref := strings.TrimSpace(Ref(rec, kind))
	if ref == "" {
		return nil, errs.New(errs.ErrCodeAssetUnavailable, "card %s has no %s image", rec.ID, kind)
	}
	return l.Load(ctx, ref)
}

// Load reads and decodes the image at ref. EXIF orientation is applied.
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	data, err := l.read(ctx, ref)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "load media %s", ref)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "decode media %s", ref)
	}
	return img, nil
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if err := errs.ValidateURL(ref); err != nil {
			return nil, err
		}
		data, _, err := cache.Fetch(ctx, l.cache, l.keyer.MediaKey(ref), cache.TTLMedia, func() ([]byte, error) {
			return l.client.GetBytes(ctx, "media", ref, cache.TTLMedia)
		})
		return data, err
	}

	ref = strings.TrimPrefix(ref, "/")
	if err := errs.ValidateMediaPath(ref); err != nil {
		return nil, err
	}
	if l.dir == "" {
		return nil, errs.New(errs.ErrCodeAssetUnavailable, "no media directory configured")
	}
	return os.ReadFile(filepath.Join(l.dir, filepath.FromSlash(ref)))
}
