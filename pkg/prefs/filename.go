package prefs

import (
	"strings"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
)

// DownloadFilename builds the attachment name of a rendered sheet:
// First_Last[_Company][_Title]_NameTags.<ext>. Characters outside
// [A-Za-z0-9_-] become underscores.
func DownloadFilename(rec *card.Record, ext string) string {
	return filename(rec, "_NameTags", ext)
}

// Filename returns the attachment name for a render with p. QR surround
// sheets end in _NameTags_HelloMyNameIs.
func (p *Preferences) Filename(rec *card.Record, ext string) string {
	if p.Surround() {
		return filename(rec, "_NameTags_HelloMyNameIs", ext)
	}
	return DownloadFilename(rec, ext)
}

func filename(rec *card.Record, suffix, ext string) string {
	parts := []string{rec.FirstName, rec.LastName}
	if c := strings.TrimSpace(rec.Company); c != "" {
		parts = append(parts, c)
	}
	if t := strings.TrimSpace(rec.JobTitle); t != "" {
		parts = append(parts, t)
	}
	name := strings.Map(func(r rune) rune {
		if isFilenameRune(r) {
			return r
		}
		return '_'
	}, strings.Join(parts, "_")+suffix)
	return name + "." + strings.TrimPrefix(ext, ".")
}

func isFilenameRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-'
}
