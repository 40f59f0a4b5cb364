package templates

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// keyLocalizer echoes keys and their arguments.
type keyLocalizer struct{}

func (keyLocalizer) T(key message.Reference, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprint(append([]any{key}, args...)...)
}

// catalogLocalizer formats the catalog entry registered under key.
type catalogLocalizer map[string]string

func (c catalogLocalizer) T(key message.Reference, args ...any) string {
	name, _ := key.(string)
	format, ok := c[name]
	if !ok {
		return name
	}
	return fmt.Sprintf(format, args...)
}

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	if ctx == nil {
		ctx = context.Background()
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}
