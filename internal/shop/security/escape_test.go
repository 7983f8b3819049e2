package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Luminous Silk Serum", "Luminous Silk Serum"},
		{"script tag", `<script>alert("x")</script>`, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"},
		{"single quote", "it's", "it&#039;s"},
		{"ampersand", "salt & pepper", "salt &amp; pepper"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeInput(tc.in))
		})
	}
}

func TestEscapeInputLeavesNoRawSpecials(t *testing.T) {
	inputs := []string{
		`<img src=x onerror='alert(1)'>`,
		`"quoted" & <b>bold</b>`,
		`&&<<>>""''`,
		`a&b&c`,
	}
	for _, in := range inputs {
		out := EscapeInput(in)
		assert.NotContains(t, out, "<")
		assert.NotContains(t, out, ">")
		assert.NotContains(t, out, `"`)
		assert.NotContains(t, out, "'")
		// every remaining ampersand starts one of our entities
		for i := strings.Index(out, "&"); i >= 0; {
			rest := out[i:]
			ok := strings.HasPrefix(rest, "&amp;") || strings.HasPrefix(rest, "&lt;") ||
				strings.HasPrefix(rest, "&gt;") || strings.HasPrefix(rest, "&quot;") ||
				strings.HasPrefix(rest, "&#039;")
			assert.True(t, ok, "bare ampersand in %q", out)
			next := strings.Index(out[i+1:], "&")
			if next < 0 {
				break
			}
			i = i + 1 + next
		}
	}
}

func TestEscapeInputIsNotIdempotent(t *testing.T) {
	once := EscapeInput("&")
	twice := EscapeInput(once)
	assert.Equal(t, "&amp;", once)
	assert.Equal(t, "&amp;amp;", twice)
}
