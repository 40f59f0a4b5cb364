package templates

import (
	"strings"
	"testing"
)

func TestHTMLWriterEscapesDynamicValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(h *html)
		want  string
	}{
		{
			name:  "text",
			write: func(h *html) { h.text(`<script>alert("x")</script> & co`) },
			want:  `&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; co`,
		},
		{
			name:  "attr",
			write: func(h *html) { h.attr("title", `a" onmouseover='b'`) },
			want:  ` title="a&#34; onmouseover=&#39;b&#39;"`,
		},
		{
			name:  "href drops script scheme",
			write: func(h *html) { h.href(`javascript:alert(1)`) },
			want:  ` href="about:invalid#TemplFailedSanitizationURL"`,
		},
		{
			name:  "href escapes query",
			write: func(h *html) { h.href(`/app/patient/images?q="<b>"&page=2`) },
			want:  ` href="/app/patient/images?q=&#34;&lt;b&gt;&#34;&amp;page=2"`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := renderString(t, nil, component(tc.write))
			if got != tc.want {
				t.Fatalf("render = %q, want %q", got, tc.want)
			}
			if strings.Contains(got, "<script") {
				t.Fatalf("render leaked markup: %q", got)
			}
		})
	}
}
