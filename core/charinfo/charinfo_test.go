package charinfo

import (
	"reflect"
	"testing"
)

func TestDescribe(t *testing.T) {
	infos := Describe("ê̂a")
	if len(infos) != 3 {
		t.Fatalf("Describe() returned %d entries, want 3", len(infos))
	}

	tests := []struct {
		r      rune
		name   string
		decomp []rune
	}{
		{'ê', "LATIN SMALL LETTER E WITH CIRCUMFLEX", []rune{'e', 0x0302}},
		{0x0302, "COMBINING CIRCUMFLEX ACCENT", nil},
		{'a', "LATIN SMALL LETTER A", nil},
	}
	for i, tt := range tests {
		got := infos[i]
		if got.Rune != tt.r || got.Name != tt.name || !reflect.DeepEqual(got.Decomposition, tt.decomp) {
			t.Errorf("Describe()[%d] = %+v, want rune %U name %q decomposition %U", i, got, tt.r, tt.name, tt.decomp)
		}
	}
	if !infos[0].Decomposable() || infos[2].Decomposable() {
		t.Error("Decomposable() wrong")
	}
}

func TestDescribeFullDecomposition(t *testing.T) {
	// U+01D6 decomposes through U+00FC.
	got := Describe("ǖ")[0].Decomposition
	want := []rune{'u', 0x0308, 0x0304}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decomposition = %U, want %U", got, want)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"é", "é: NFC?: True, NFD: 0065 0301, LATIN SMALL LETTER E WITH ACUTE"},
		{"a", "a: NFC?: False, NFD: None, LATIN SMALL LETTER A"},
		{"̈", "̈: NFC?: False, NFD: None, COMBINING DIAERESIS"},
	}
	for _, tt := range tests {
		if got := Format(Describe(tt.in)[0]); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCodePoints(t *testing.T) {
	if got := CodePoints([]rune{0x65, 0x1F600}); got != "0065 1F600" {
		t.Errorf("CodePoints() = %q", got)
	}
	if got := CodePoints(nil); got != "" {
		t.Errorf("CodePoints(nil) = %q", got)
	}
}

func TestFormatUnnamed(t *testing.T) {
	if got := Format(Info{Rune: 0x0378}); got != "͸: NFC?: False, NFD: None, None" {
		t.Errorf("Format() = %q", got)
	}
}
