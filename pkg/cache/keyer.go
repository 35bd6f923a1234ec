package cache

// Keyer derives cache keys for the asset kinds the renderers fetch.
type Keyer interface {
	// QRKey is the key for a QR image of url rendered at edge pixels.
	QRKey(provider, url string, edge int) string

	// MediaKey is the key for a fetched signature image.
	MediaKey(ref string) string

	// HTTPKey is the key for a raw HTTP response body.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer hashes key components so arbitrary URLs map to fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// QRKey implements Keyer.
func (DefaultKeyer) QRKey(provider, url string, edge int) string {
	return assetKey("qr", qrParts(provider, url, edge)...)
}

// MediaKey implements Keyer.
func (DefaultKeyer) MediaKey(ref string) string {
	return assetKey("media", ref)
}

// HTTPKey implements Keyer.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "nametag:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// QRKey implements Keyer.
func (k *ScopedKeyer) QRKey(provider, url string, edge int) string {
	return k.prefix + k.inner.QRKey(provider, url, edge)
}

// MediaKey implements Keyer.
func (k *ScopedKeyer) MediaKey(ref string) string {
	return k.prefix + k.inner.MediaKey(ref)
}

// HTTPKey implements Keyer.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}
