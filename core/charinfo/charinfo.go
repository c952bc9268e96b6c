// Package charinfo reports the Unicode makeup of text, one rune at a time:
// its name and its canonical decomposition. Sango orthography mixes
// precomposed and combining diacritics, and this is how they are told
// apart.
package charinfo

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// Info describes one rune.
type Info struct {
	Rune rune
	// Name is the Unicode character name, empty when unassigned.
	Name string
	// Decomposition is the rune's full canonical (NFD) decomposition, nil
	// when the rune does not decompose.
	Decomposition []rune
}

// Decomposable reports whether the rune has a canonical decomposition.
func (i Info) Decomposable() bool { return len(i.Decomposition) > 0 }

// Describe returns an Info for every rune of s.
func Describe(s string) []Info {
	var out []Info
	for _, r := range s {
		info := Info{Rune: r, Name: runenames.Name(r)}
		if d := norm.NFD.String(string(r)); d != string(r) {
			info.Decomposition = []rune(d)
		}
		out = append(out, info)
	}
	return out
}

// CodePoints renders runes as space-separated hex code points, e.g.
// "0065 0301".
func CodePoints(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("%04X", r)
	}
	return strings.Join(parts, " ")
}

// Format renders the one-line report for a rune:
//
//	é: NFC?: True, NFD: 0065 0301, LATIN SMALL LETTER E WITH ACUTE
//
// "NFC?" is True for a precomposed rune, i.e. one that decomposes.
func Format(i Info) string {
	nfc, nfd := "False", "None"
	if i.Decomposable() {
		nfc, nfd = "True", CodePoints(i.Decomposition)
	}
	name := i.Name
	if name == "" {
		name = "None"
	}
	return fmt.Sprintf("%c: NFC?: %s, NFD: %s, %s", i.Rune, nfc, nfd, name)
}
