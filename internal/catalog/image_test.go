package catalog

import "testing"

func TestResolveImageURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"absolute http", "http://x/y.png", "http://x/y.png"},
		{"absolute https", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"root relative", "/already/abs.png", "/already/abs.png"},
		{"static prefix", "static/a.png", "/static/a.png"},
		{"uploads prefix", "uploads/a.png", "/static/uploads/a.png"},
		{"bare filename", "a.png", "/static/uploads/productos/a.png"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveImageURL(tc.in); got != tc.want {
				t.Errorf("ResolveImageURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCoverImage(t *testing.T) {
	p := Product{
		ImageReference: "legacy.png",
		Images: []Image{
			{URL: "first.png"},
			{URL: "cover.png", IsCover: true},
		},
	}
	if got := p.CoverImage(); got != "cover.png" {
		t.Errorf("expected cover-flagged image, got %q", got)
	}

	p.Images = []Image{{URL: "first.png"}, {URL: "second.png"}}
	if got := p.CoverImage(); got != "first.png" {
		t.Errorf("expected first image when no cover flagged, got %q", got)
	}

	p.Images = nil
	if got := p.CoverImage(); got != "legacy.png" {
		t.Errorf("expected legacy reference fallback, got %q", got)
	}
}

func TestCoverImageURL(t *testing.T) {
	p := Product{Images: []Image{{URL: "uploads/shoe.png", IsCover: true}}}
	if got := p.CoverImageURL(); got != "/static/uploads/shoe.png" {
		t.Errorf("CoverImageURL = %q", got)
	}
}
