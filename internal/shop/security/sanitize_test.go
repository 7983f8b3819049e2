package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTMLKeepsAllowedMarkup(t *testing.T) {
	in := `<p class="lead">Hello <strong>world</strong> and <em>friends</em></p><ul><li>one</li><li>two</li></ul>`
	assert.Equal(t, in, SanitizeHTML(in))

	img := `<img src="https://images.example.com/a.jpg" alt="Serum" width="600"/>`
	assert.Equal(t, img, SanitizeHTML(img))
}

// Output is re-serialized, so quotes come back as numeric references. The
// result renders identically in a browser.
func TestSanitizeHTMLReencodesQuotes(t *testing.T) {
	assert.Equal(t,
		`<p title="it&#39;s">say &#34;halo&#34; &amp; it&#39;s</p>`,
		SanitizeHTML(`<p title="it's">say "halo" &amp; it's</p>`))
	assert.Equal(t, `<span title="&#34;q&#34;">a &lt; b</span>`, SanitizeHTML(`<span title='"q"'>a &lt; b</span>`))
}

func TestSanitizeHTMLDropsDangerousContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "script removed with its content",
			in:   `<p>Soft</p><script>alert("x")</script>`,
			want: `<p>Soft</p>`,
		},
		{
			name: "iframe removed",
			in:   `<div>Look<iframe src="https://evil.example"></iframe></div>`,
			want: `<div>Look</div>`,
		},
		{
			name: "event handlers stripped",
			in:   `<img src="a.jpg" onerror="alert(1)" onload="x()"/>`,
			want: `<img src="a.jpg"/>`,
		},
		{
			name: "javascript urls stripped",
			in:   `<span src=" JavaScript:alert(1)" title="t">x</span>`,
			want: `<span title="t">x</span>`,
		},
		{
			name: "unknown attributes stripped",
			in:   `<p data-x="1" id="intro" style="color: red">x</p>`,
			want: `<p style="color: red">x</p>`,
		},
		{
			name: "disallowed wrapper drops allowed children",
			in:   `<section><p>gone</p></section><p>kept</p>`,
			want: `<p>kept</p>`,
		},
		{
			name: "comments dropped",
			in:   `<p>a<!-- hidden --></p>`,
			want: `<p>a</p>`,
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeHTML(tc.in)
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "<script")
			assert.NotContains(t, got, "<iframe")
			assert.NotContains(t, got, "onerror")
		})
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Serum ringan untuk kulit", PlainText("<p>Serum <strong>ringan</strong>\n untuk kulit</p>"))
	assert.Equal(t, "Tom & Jerry", PlainText("<p>Tom &amp; Jerry</p>"))
	assert.Equal(t, "safe", PlainText(`<p>safe</p><script>alert(1)</script>`))
	assert.Equal(t, "", PlainText(""))
}
