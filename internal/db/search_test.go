package db

import "testing"

func TestBuildFTSQuery_StopwordRemoval(t *testing.T) {
	got := BuildFTSQuery("the art of product management for founders")
	want := `"art" OR "product" OR "management" OR "founders"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildFTSQuery_ShortWords(t *testing.T) {
	got := BuildFTSQuery("go to PM land now")
	want := `"land" OR "now"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildFTSQuery_PunctuationTrimming(t *testing.T) {
	got := BuildFTSQuery("(Shreyas Doshi), growth-loops!")
	want := `"Shreyas" OR "Doshi" OR "growth-loops"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildFTSQuery_AllStopwords(t *testing.T) {
	got := BuildFTSQuery("the a an in on at")
	if got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestBuildFTSQuery_Empty(t *testing.T) {
	got := BuildFTSQuery("")
	if got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestEscapeLike(t *testing.T) {
	got := escapeLike(`50%_off\`)
	want := `50\%\_off\\`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
