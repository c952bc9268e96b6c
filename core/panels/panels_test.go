package panels

import (
	"errors"
	"reflect"
	"testing"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
)

var refLines = []string{
	"P12",
	"Kapa 1",
	"Nzapa atene",
	"Kapa2",
	"Lo gue",
	"P13",
	"Kapa 1",
	"Ala mû mbeni ye",
}

func TestIndex(t *testing.T) {
	pages, err := Index(refLines)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if !reflect.DeepEqual(pages.Labels(), []string{"P12", "P13"}) {
		t.Errorf("Labels() = %v", pages.Labels())
	}
	p12, _ := pages.Get("P12")
	if !reflect.DeepEqual(p12.Offsets, []int{1, 3}) {
		t.Errorf("P12 offsets = %v, want [1 3]", p12.Offsets)
	}
	p13, _ := pages.Get("P13")
	if p13.Line != 5 || !reflect.DeepEqual(p13.Offsets, []int{1}) {
		t.Errorf("P13 = %+v", p13)
	}
}

func TestIndexPanelBeforePage(t *testing.T) {
	_, err := Index([]string{"intro", "Kapa 1"})
	var pe *sgerrors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestInsert(t *testing.T) {
	pages, err := Index(refLines)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	out := []string{
		"Title",
		" P12 ",
		"God said",
		"He went",
		"P13",
		"They did something",
	}
	orig := append([]string(nil), out...)

	got := Insert(pages, out)
	want := []string{
		"Title",
		" P12 ",
		"Panel 1",
		"God said",
		"Panel 2",
		"He went",
		"P13",
		"Panel 1",
		"They did something",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Insert() =\n%q\nwant\n%q", got, want)
	}
	if !reflect.DeepEqual(out, orig) {
		t.Error("Insert must not modify its input")
	}
}

func TestInsertPastEnd(t *testing.T) {
	pages, err := Index([]string{"P100", "a", "b", "Kapa 1"})
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	got := Insert(pages, []string{"P100"})
	want := []string{"P100", "Panel 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Insert() = %q, want %q", got, want)
	}
}

func TestInsertNoPages(t *testing.T) {
	pages, _ := Index(nil)
	in := []string{"a", "b"}
	if got := Insert(pages, in); !reflect.DeepEqual(got, in) {
		t.Errorf("Insert() = %q, want input unchanged", got)
	}
}
