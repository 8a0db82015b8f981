package services

import (
	"regexp"
	"strings"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func TestSlugifyTurkishCharacters(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kadıköy Kahve Turu", "kadikoy-kahve-turu"},
		{"İstanbul'un En İyi Çiğ Köftecileri", "istanbul-un-en-iyi-cig-koftecileri"},
		{"ŞÜKRÜ'NÜN YERİ", "sukru-nun-yeri"},
		{"Göreme & Ürgüp", "goreme-urgup"},
		{"  -- trimmed --  ", "trimmed"},
		{"çğıöşü ÇĞÖŞÜ", "cgiosu-cgosu"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyMatchesPattern(t *testing.T) {
	inputs := []string{
		"Adana'nın En İyi Kebapçıları",
		"Fazıl Bey'in Türk Kahvesi",
		"İzmir   Kahvaltı!!!",
	}
	for _, in := range inputs {
		got := Slugify(in)
		if !slugPattern.MatchString(got) {
			t.Errorf("Slugify(%q) = %q does not match %s", in, got, slugPattern)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Slugify(%q) = %q has a leading/trailing hyphen", in, got)
		}
	}
}

func TestNewSlugAppendsSuffix(t *testing.T) {
	slug := NewSlug("Kadıköy Kahve Turu")
	if !strings.HasPrefix(slug, "kadikoy-kahve-turu-") {
		t.Fatalf("NewSlug prefix wrong: %q", slug)
	}
	suffix := strings.TrimPrefix(slug, "kadikoy-kahve-turu-")
	if len(suffix) != slugSuffixLen {
		t.Errorf("suffix length = %d, want %d (%q)", len(suffix), slugSuffixLen, slug)
	}
	if !slugPattern.MatchString(slug) {
		t.Errorf("NewSlug produced invalid slug %q", slug)
	}
}

func TestNewSlugFallsBackToSuffixAlone(t *testing.T) {
	// No mappable characters: the base degenerates to empty and the suffix
	// alone carries the slug.
	slug := NewSlug("商店 🍜")
	if len(slug) != slugSuffixLen {
		t.Fatalf("fallback slug = %q, want bare %d-char suffix", slug, slugSuffixLen)
	}
	if !slugPattern.MatchString(slug) {
		t.Errorf("fallback slug %q invalid", slug)
	}
}

func TestNewSlugsDiffer(t *testing.T) {
	a := NewSlug("Aynı İsim")
	b := NewSlug("Aynı İsim")
	if a == b {
		t.Errorf("two NewSlug calls produced the same slug %q", a)
	}
}
