package translate

import (
	"context"
	"testing"
)

func TestHasJapanese(t *testing.T) {
	cases := map[string]bool{
		"東京都港区六本木":      true,
		"メルカリ":          true,
		"ひらがな":          true,
		"Mercari, Inc.": false,
		"도쿄도 미나토구":      false,
		"12345":         false,
	}
	for text, want := range cases {
		if got := HasJapanese(text); got != want {
			t.Errorf("HasJapanese(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestTranslateFieldsPassThroughWithoutJapanese(t *testing.T) {
	// Nothing to translate means no API call is made at all.
	tr := &Translator{}
	out, err := tr.TranslateFields(context.Background(), map[string]string{
		"headquarters": "Seoul, Korea",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["headquarters"] != "Seoul, Korea" {
		t.Errorf("got %q", out["headquarters"])
	}
}

func TestTranslateFieldsSkipsExcludedKeys(t *testing.T) {
	// Identifier fields pass through verbatim even when they contain
	// Japanese script.
	tr := &Translator{}
	out, err := tr.TranslateFields(context.Background(), map[string]string{
		"name":     "株式会社メルカリ",
		"name_en":  "Mercari, Inc.",
		"sec_code": "4385",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["name"] != "株式会社メルカリ" {
		t.Errorf("expected the name untouched, got %q", out["name"])
	}
}
