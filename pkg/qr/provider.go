package qr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/url"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/httputil"
)

// Provider obtains a QR bitmap of at least px pixels per side. The image
// may include a quiet zone.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, content string, px int) (image.Image, error)
}

// =============================================================================
// Local
// =============================================================================

// LocalProvider encodes QR codes in-process.
type LocalProvider struct{}

// NewLocalProvider creates a LocalProvider.
func NewLocalProvider() *LocalProvider { return &LocalProvider{} }

// Name implements Provider.
func (*LocalProvider) Name() string { return "local" }

// Fetch implements Provider.
func (*LocalProvider) Fetch(ctx context.Context, content string, px int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sym, err := Encode(content)
	if err != nil {
		return nil, err
	}
	return sym.Image(px)
}

// =============================================================================
// Remote
// =============================================================================

// DefaultEndpoint is the qrserver.com image API.
const DefaultEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// Size limits of the remote endpoint.
const (
	remoteMinPx = 10
	remoteMaxPx = 1000
)

// RemoteProvider fetches QR images from an HTTP image API compatible with
// api.qrserver.com.
type RemoteProvider struct {
	client   *httputil.Client
	endpoint string
	ttl      time.Duration
}

// NewRemoteProvider creates a provider backed by client. An empty endpoint
// uses DefaultEndpoint.
func NewRemoteProvider(client *httputil.Client, endpoint string) *RemoteProvider {
	if client == nil {
		client = httputil.NewClient()
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &RemoteProvider{client: client, endpoint: endpoint, ttl: cache.TTLQR}
}

// Name implements Provider.
func (*RemoteProvider) Name() string { return "remote" }

// RequestURL returns the image URL requested for content at px pixels.
func (p *RemoteProvider) RequestURL(content string, px int) string {
	px = max(remoteMinPx, min(remoteMaxPx, px))
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%dx%d", px, px))
	q.Set("data", content)
	return p.endpoint + "?" + q.Encode()
}

// Fetch implements Provider.
func (p *RemoteProvider) Fetch(ctx context.Context, content string, px int) (image.Image, error) {
	data, err := p.client.GetBytes(ctx, "qr", p.RequestURL(content, px), p.ttl)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeAssetUnavailable, err, "decode qr image")
	}
	return img, nil
}

// =============================================================================
// Fallback
// =============================================================================

// FallbackProvider returns the first successful result of its providers.
type FallbackProvider struct {
	providers []Provider
}

// NewFallbackProvider creates a provider trying each of providers in order.
func NewFallbackProvider(providers ...Provider) *FallbackProvider {
	return &FallbackProvider{providers: providers}
}

// Name implements Provider.
func (p *FallbackProvider) Name() string {
	name := "fallback"
	for _, sub := range p.providers {
		name += ":" + sub.Name()
	}
	return name
}

// Fetch implements Provider.
func (p *FallbackProvider) Fetch(ctx context.Context, content string, px int) (image.Image, error) {
	var errList []error
	for _, sub := range p.providers {
		img, err := sub.Fetch(ctx, content, px)
		if err == nil {
			return img, nil
		}
		errList = append(errList, fmt.Errorf("%s: %w", sub.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	if len(errList) == 0 {
		return nil, errs.New(errs.ErrCodeAssetUnavailable, "no qr provider configured")
	}
	return nil, errors.Join(errList...)
}

// encodePNG is used to cache composed images.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
