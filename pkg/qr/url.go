package qr

import (
	"net/url"
	"strings"
)

// DefaultHost serves the public card pages.
const DefaultHost = "sharemycard.app"

// TargetURL returns the card page URL encoded in the QR code:
// https://<host>/card.php?id=<id>[&src=<source>].
func TargetURL(host, cardID, source string) string {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if host == "" {
		host = DefaultHost
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u := host + "/card.php?id=" + url.QueryEscape(cardID)
	if source != "" {
		u += "&src=" + url.QueryEscape(source)
	}
	return u
}
