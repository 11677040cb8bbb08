package logging

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	if FromContext(context.Background()) != DefaultLogger() {
		t.Errorf("empty context must return the default logger")
	}

	var buf bytes.Buffer
	logger := log.New(&buf, "Test: ", log.Lmsgprefix)
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Printf("source %s", "tcmb")

	if diff := cmp.Diff("Test: source tcmb\n", buf.String()); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}
