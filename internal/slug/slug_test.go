package slug

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Panouri Acustice", "panouri-acustice"},
		{"Plăci de gips-carton", "placi-de-gips-carton"},
		{"Heradesign® Superfine", "heradesign-superfine"},
		{"THERMATEX™ Alpha", "thermatex-alpha"},
		{"  T24   Support Grid  ", "t24-support-grid"},
		{"Ecophon (Focus) / Ds", "ecophon-focus-ds"},
		{"---", ""},
		{"", ""},
		{"Ţiglă Metalică", "tigla-metalica"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Vinyl Coated Gypsum Panel",
		"Plafoane metalice suspendate",
		"Sistem T24 de Susținere",
		"glass-wool-ceiling-panels",
	}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}
