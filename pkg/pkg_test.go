package pkg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if expected := "permute"; Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew, got %v", Author)
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestDirs(t *testing.T) {
	prefix := Prefix()
	if prefix == "" || strings.HasPrefix(prefix, ".") {
		t.Errorf("Prefix() = %q, want a non-empty name without leading dots", prefix)
	}

	for name, dir := range map[string]string{
		"ConfigDir": ConfigDir(),
		"CacheDir":  CacheDir(),
	} {
		if filepath.Base(dir) != prefix {
			t.Errorf("%s() = %q, want it to end in %q", name, dir, prefix)
		}
	}
}

func TestEnvName(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{prefix: "permute", name: "path", want: "PERMUTE_PATH"},
		{prefix: "my-tool", name: "log level", want: "MY_TOOL_LOG_LEVEL"},
		{prefix: "", name: "path", want: "PATH"},
	}

	for _, tt := range tests {
		if got := envName(tt.prefix, tt.name); got != tt.want {
			t.Errorf("envName(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}
