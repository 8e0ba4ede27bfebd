package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	out, err := p.Parse([]byte("**Ship** the _redesign_"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>Ship</strong>")
	assert.Contains(t, string(out), "<em>redesign</em>")
}

func TestParser_HTML(t *testing.T) {
	p := NewParser()

	t.Run("RawHTMLDropped", func(t *testing.T) {
		out := p.HTML(`<script>alert("x")</script>`)
		assert.NotContains(t, out, "<script>")
	})

	t.Run("TaskList", func(t *testing.T) {
		out := p.HTML("- [x] wireframes\n- [ ] QA testing")
		assert.Contains(t, out, `type="checkbox"`)
	})

	t.Run("HardWraps", func(t *testing.T) {
		out := p.HTML("first line\nsecond line")
		assert.Contains(t, out, "<br />")
	})

	t.Run("LinksOpenInNewTab", func(t *testing.T) {
		out := p.HTML("[docs](https://example.com) and https://go.dev")
		assert.Contains(t, out, `href="https://example.com"`)
		assert.Contains(t, out, `target="_blank"`)
		assert.Contains(t, out, `rel="noopener noreferrer nofollow"`)
		assert.Contains(t, out, `href="https://go.dev"`)
	})
}
