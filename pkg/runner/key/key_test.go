package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestKeyListsMarkers(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	if err := (&Key{Out: &buf}).Do(context.Background()); err != nil {
		t.Fatalf("key: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"task completed", "task overdue", "note", "high priority"} {
		if !strings.Contains(out, want) {
			t.Fatalf("legend missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "task overdue") > strings.Index(out, "high priority") {
		t.Fatalf("state markers should print before priorities:\n%s", out)
	}
}
