package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	SetVerbose(false)

	t.Setenv("TL_DEBUG", "")
	assert.False(t, DebugEnabled(), "empty TL_DEBUG should not enable debug output")

	t.Setenv("TL_DEBUG", "1")
	assert.True(t, DebugEnabled())

	t.Setenv("TL_DEBUG", "true")
	assert.True(t, DebugEnabled())
}

func TestSetVerbose(t *testing.T) {
	t.Setenv("TL_DEBUG", "")
	SetVerbose(true)
	defer SetVerbose(false)

	assert.True(t, DebugEnabled(), "verbose mode should enable debug output")
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)
	SetVerbose(false)

	t.Setenv("TL_DEBUG", "")
	Debugf("hidden: %s\n", "test")
	assert.Empty(t, buf.String())

	t.Setenv("TL_DEBUG", "1")
	Debugf("shown: %s\n", "test")
	assert.Equal(t, "shown: test\n", buf.String())
}

func TestDebugln(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)
	SetVerbose(false)

	t.Setenv("TL_DEBUG", "")
	Debugln("hidden")
	assert.Empty(t, buf.String())

	t.Setenv("TL_DEBUG", "1")
	Debugln("loaded", 3, "tasks")
	assert.Equal(t, "loaded 3 tasks\n", buf.String())
}
