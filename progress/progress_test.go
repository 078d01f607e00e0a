package progress

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(zerolog.New(&buf).Level(zerolog.DebugLevel))
	r.SetTaskTitle("solving")
	r.IncrementCompletionPercent(30)
	r.IncrementCompletionPercent(90)
	assert.Equal(t, 100, r.Percent())
	r.SetCompletionPercent(-5)
	assert.Equal(t, 0, r.Percent())
	assert.Contains(t, buf.String(), `"task":"solving"`)
}

func TestNopSatisfiesReporter(t *testing.T) {
	var r Reporter = Nop{}
	r.SetTaskTitle("x")
	r.IncrementCompletionPercent(1)
	r.SetCompletionPercent(1)
}
