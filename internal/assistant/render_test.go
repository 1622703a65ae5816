package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RendersMarkdown(t *testing.T) {
	html, err := NewRenderer().Render("## Breakfast\n\n- **Oats** 50g\n\n| Nutrient | Amount |\n|---|---|\n| Protein | 6g |\n")
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, "<h2")
	assert.Contains(t, s, "<strong>Oats</strong>")
	assert.Contains(t, s, "<table>")
}

func TestRenderer_StripsUnsafeMarkup(t *testing.T) {
	html, err := NewRenderer().Render("Hello <script>alert('x')</script> [click](javascript:alert(1)) <img src=x onerror=alert(1)>")
	require.NoError(t, err)

	s := string(html)
	assert.NotContains(t, s, "<script")
	assert.NotContains(t, s, "javascript:")
	assert.NotContains(t, s, "onerror")
	assert.Contains(t, s, "Hello")
}
