package catalog

import "strings"

// Image path layout on the static server. Bare filenames land under the
// product uploads directory.
const (
	staticPrefix       = "static/"
	uploadsPrefix      = "uploads/"
	productUploadsPath = "/static/uploads/productos/"
)

// ResolveImageURL normalizes an image reference to a servable URL.
//
// Absolute URLs and root-relative paths pass through unchanged. Paths
// already under the static prefix gain a leading slash, paths under the
// uploads marker gain the static root, and anything else is treated as
// a bare filename under the default product uploads path. An empty
// reference resolves to the empty string; the renderer substitutes a
// placeholder.
func ResolveImageURL(ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.Contains(ref, "://"), strings.HasPrefix(ref, "/"):
		return ref
	case strings.HasPrefix(ref, staticPrefix):
		return "/" + ref
	case strings.HasPrefix(ref, uploadsPrefix):
		return "/static/" + ref
	default:
		return productUploadsPath + ref
	}
}

// CoverImage picks the image reference to display for a product: the
// cover-flagged image first, then the first image, then the legacy
// single image reference. Returns the raw reference, not yet resolved.
func (p Product) CoverImage() string {
	for _, img := range p.Images {
		if img.IsCover {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return p.ImageReference
}

// CoverImageURL is CoverImage passed through ResolveImageURL.
func (p Product) CoverImageURL() string {
	return ResolveImageURL(p.CoverImage())
}
