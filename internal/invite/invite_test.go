package invite

import (
	"regexp"
	"testing"
)

var hexCode = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestCodeShape(t *testing.T) {
	g := NewGenerator("https://app.example.com")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := g.Code()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !hexCode.MatchString(code) {
			t.Fatalf("code %q is not 16 lowercase hex chars", code)
		}
		if seen[code] {
			t.Fatalf("code %q repeated within 100 draws", code)
		}
		seen[code] = true
	}
}

func TestLinks(t *testing.T) {
	g := NewGenerator("https://app.example.com/")
	if got := g.ListLink("abcd1234abcd1234"); got != "https://app.example.com/join/abcd1234abcd1234" {
		t.Fatalf("list link: %q", got)
	}
	if got := g.GroupLink("abcd1234abcd1234"); got != "https://app.example.com/joingroup/abcd1234abcd1234" {
		t.Fatalf("group link: %q", got)
	}
}
