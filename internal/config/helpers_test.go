package config

import (
	"os"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// unsetAfter removes a variable that .env loading may have set directly on
// the process environment.
func unsetAfter(t *testing.T, key string) {
	t.Helper()
	t.Cleanup(func() { _ = os.Unsetenv(key) })
}
