package qr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// DefaultTimeout bounds a single QR obtain.
const DefaultTimeout = 5 * time.Second

// Compositor produces QR assets sized for a render.
type Compositor struct {
	provider Provider
	timeout  time.Duration
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger
}

// CompositorOption configures a Compositor.
type CompositorOption func(*Compositor)

// WithTimeout sets the obtain timeout.
func WithTimeout(d time.Duration) CompositorOption {
	return func(c *Compositor) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCache caches composed bitmaps as PNG.
func WithCache(ch cache.Cache, k cache.Keyer) CompositorOption {
	return func(c *Compositor) {
		if ch != nil {
			c.cache = ch
		}
		if k != nil {
			c.keyer = k
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) CompositorOption {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCompositor creates a Compositor. A nil provider encodes locally.
func NewCompositor(p Provider, opts ...CompositorOption) *Compositor {
	if p == nil {
		p = NewLocalProvider()
	}
	c := &Compositor{
		provider: p,
		timeout:  DefaultTimeout,
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the configured provider.
func (c *Compositor) Provider() Provider { return c.provider }

// Symbol encodes content for vector output.
func (c *Compositor) Symbol(ctx context.Context, content string) (*Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "qr symbol")
	}
	return Encode(content)
}

// Raster returns an edge × edge bitmap of the QR code for content with the
// quiet zone removed.
func (c *Compositor) Raster(ctx context.Context, content string, edge int) (image.Image, error) {
	if edge <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "qr edge must be positive, got %d", edge)
	}
	key := c.keyer.QRKey(c.provider.Name(), content, edge)
	data, hit, err := cache.Fetch(ctx, c.cache, key, cache.TTLQR, func() ([]byte, error) {
		img, err := c.obtain(ctx, content, edge)
		if err != nil {
			return nil, err
		}
		return encodePNG(img)
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "qr via %s", c.provider.Name())
	}
	c.logger.Debug("qr ready", "provider", c.provider.Name(), "edge", edge, "cached", hit)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "decode cached qr")
	}
	return img, nil
}

func (c *Compositor) obtain(ctx context.Context, content string, edge int) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	src, err := c.provider.Fetch(ctx, content, edge)
	if err != nil {
		return nil, err
	}
	return Fit(CropQuietZone(src), edge), nil
}
