package browser

import (
	"errors"
	"slices"
	"testing"
)

func TestOpenRejectsNonWebLinks(t *testing.T) {
	for _, raw := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "/relative/path", "https://"} {
		if err := Open(raw); !errors.Is(err, ErrUnsupportedURL) {
			t.Errorf("Open(%q) = %v, want ErrUnsupportedURL", raw, err)
		}
	}
}

func TestOpenStartsPlatformCommand(t *testing.T) {
	var gotName string
	var gotArgs []string
	orig := start
	start = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}
	defer func() { start = orig }()

	if err := Open(" https://example.com/brief.pdf "); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if gotName == "" || !slices.Contains(gotArgs, "https://example.com/brief.pdf") {
		t.Errorf("started %q %v", gotName, gotArgs)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		goos, want string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "rundll32"},
	}
	for _, tt := range tests {
		name, args, err := command(tt.goos, "https://x.test")
		if err != nil || name != tt.want || args[len(args)-1] != "https://x.test" {
			t.Errorf("command(%s) = %q %v %v", tt.goos, name, args, err)
		}
	}
	if _, _, err := command("plan9", "https://x.test"); err == nil {
		t.Error("expected error for unsupported OS")
	}
}
