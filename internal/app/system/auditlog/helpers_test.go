package auditlog_test

import (
	"os"
	"strings"
	"testing"
)

func assertFileContains(t *testing.T, path, want string) {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if !strings.Contains(string(b), want) {
		t.Errorf("%s does not contain %s:\n%s", path, want, b)
	}
}
