package registry

import (
	"strings"
	"testing"
)

func TestParseValidRegistry(t *testing.T) {
	yaml := `
companies:
  - key: mercari
    keywords: ["株式会社メルカリ"]
    domains: ["mercari.com"]
  - key: rakuten
    keywords: ["楽天グループ株式会社"]
`
	reg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.Companies) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(reg.Companies))
	}
	if reg.Companies[0].Key != "mercari" || reg.Companies[0].Keywords[0] != "株式会社メルカリ" {
		t.Errorf("unexpected first entry: %+v", reg.Companies[0])
	}

	tracked := reg.Tracked()
	if len(tracked) != 2 || tracked[1].Key != "rakuten" {
		t.Errorf("unexpected tracked conversion: %+v", tracked)
	}
}

func TestParseRejectsEmptyRegistry(t *testing.T) {
	if _, err := Parse([]byte("companies: []")); err == nil {
		t.Error("expected an error for an empty registry")
	}
}

func TestParseRejectsMissingKey(t *testing.T) {
	yaml := `
companies:
  - keywords: ["株式会社メルカリ"]
`
	_, err := Parse([]byte(yaml))
	if err == nil || !strings.Contains(err.Error(), "no key") {
		t.Errorf("expected a no-key error, got %v", err)
	}
}

func TestParseRejectsMissingKeywords(t *testing.T) {
	yaml := `
companies:
  - key: mercari
`
	_, err := Parse([]byte(yaml))
	if err == nil || !strings.Contains(err.Error(), "keywords") {
		t.Errorf("expected a keywords error, got %v", err)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("companies: [not closed")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
