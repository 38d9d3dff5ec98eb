package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Belajar Go", "belajar-go"},
		{"  Spasi  Berlebih  ", "spasi-berlebih"},
		{"C++ untuk Pemula!", "c-untuk-pemula"},
		{"UPPER case Title", "upper-case-title"},
		{"angka 123 ok", "angka-123-ok"},
		{"---", ""},
		{"", ""},
		{"émigré café", "migr-caf"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
