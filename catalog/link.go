package catalog

import "regexp"

// embeddableImageBase is the direct-serving host for Drive file ids.
const embeddableImageBase = "https://lh3.googleusercontent.com/d/"

var driveFileIDRe = regexp.MustCompile(`/d/([A-Za-z0-9_-]+)`)

// NormalizeImageLink rewrites a shared Drive link (".../d/{id}/view") into a URL an
// image element can load directly. Links without a file id are returned unchanged so
// the original can still be forwarded verbatim in order messages.
func NormalizeImageLink(link string) string {
	if link == "" {
		return ""
	}
	m := driveFileIDRe.FindStringSubmatch(link)
	if len(m) < 2 || m[1] == "" {
		return link
	}
	return embeddableImageBase + m[1]
}
