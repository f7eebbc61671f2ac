package directive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negarbot/negar/directive"
)

func TestParsePlainMessagePassesThrough(t *testing.T) {
	msg := "سلام دنیا\nخط دوم"
	d, rest, err := directive.Parse(msg)
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, msg, rest)
}

func TestParseFullDirective(t *testing.T) {
	d, rest, err := directive.Parse("@card size 96 pages 1 bg image_2.jpg\nbody text")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 96, d.Size)
	assert.Equal(t, 1, d.Pages)
	assert.Equal(t, "image_2.jpg", d.Background)
	assert.Equal(t, "body text", rest)
}

func TestParsePartialDirective(t *testing.T) {
	d, rest, err := directive.Parse("@card pages 2\nتن متن")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Zero(t, d.Size)
	assert.Equal(t, 2, d.Pages)
	assert.Empty(t, d.Background)
	assert.Equal(t, "تن متن", rest)
}

func TestParseDirectiveOnlyLine(t *testing.T) {
	d, rest, err := directive.Parse("@card size 80")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 80, d.Size)
	assert.Empty(t, rest)
}

func TestParseMalformedDirectiveErrors(t *testing.T) {
	_, rest, err := directive.Parse("@card size huge\ntext")
	assert.Error(t, err)
	assert.Equal(t, "@card size huge\ntext", rest)
}

func TestParseRejectsOutOfRangeValues(t *testing.T) {
	_, _, err := directive.Parse("@card size 5\ntext")
	assert.Error(t, err)

	_, _, err = directive.Parse("@card pages 99\ntext")
	assert.Error(t, err)

	_, _, err = directive.Parse("@card bg ../../etc/passwd\ntext")
	assert.Error(t, err)
}
