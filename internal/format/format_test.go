package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Narrative(t *testing.T) {
	in := "Line one.\nLine two."
	assert.Equal(t, in, Render(in, StyleNarrative))
	// unknown styles behave like narrative
	assert.Equal(t, in, Render(in, "fancy"))
}

func TestRender_Bullets(t *testing.T) {
	in := "First point\n\n- already bulleted\nsecond point"
	want := "- First point\n- already bulleted\n- second point"
	assert.Equal(t, want, Render(in, StyleBullets))
}

func TestRender_BulletsIdempotent(t *testing.T) {
	once := Render("alpha\nbeta", StyleBullets)
	assert.Equal(t, once, Render(once, StyleBullets))
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML("# Title\n\nBody text.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<p>Body text.</p>")
}
