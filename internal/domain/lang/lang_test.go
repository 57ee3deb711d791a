package lang

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		prefs []string
		want  Lang
	}{
		{"no prefs", nil, English},
		{"empty", []string{""}, English},
		{"exact en", []string{"en"}, English},
		{"exact ar", []string{"ar"}, Arabic},
		{"regional ar", []string{"ar-EG"}, Arabic},
		{"accept-language header", []string{"ar-SA,ar;q=0.9,en;q=0.8"}, Arabic},
		{"unsupported falls back", []string{"ja"}, English},
		{"first non-empty wins", []string{"", "ar"}, Arabic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.prefs...); got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.prefs, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if l, ok := Parse("ar"); !ok || l != Arabic {
		t.Errorf("Parse(ar) = %q, %v", l, ok)
	}
	if _, ok := Parse("fr"); ok {
		t.Error("Parse(fr) should fail")
	}
	if Lang("xx").IsValid() {
		t.Error("xx should be invalid")
	}
}

func TestSupported_ReturnsCopy(t *testing.T) {
	s := Supported()
	s[0] = "zz"
	if Supported()[0] != English {
		t.Error("Supported() must not expose internal slice")
	}
}
