// Package httputil provides the HTTP client used to fetch external assets:
// QR images from a remote QR service and signature images hosted on a
// media server.
//
// # Overview
//
//   - [Client]: GET with a short per-request timeout, status mapping,
//     retries and an optional byte cache
//   - [Retry]: Automatic retry with exponential backoff
//
// # Retry
//
// Only failures wrapped in [RetryableError] are retried: transport errors
// and 5xx responses. A 404 maps to a NOT_FOUND coded error and is returned
// immediately.
//
//	err := httputil.Retry(ctx, 3, 200*time.Millisecond, func() error {
//	    return fetch()
//	})
//
// # Caching
//
// [Client.GetBytes] consults a [cache.Cache] before hitting the network.
// The cache stores raw response bodies keyed by [cache.Keyer.HTTPKey]. The
// CLI uses a file cache under the XDG cache dir; the server can share a
// Redis cache across instances.
package httputil
