package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name           string
		offset, length int
		size           int
		ok             bool
	}{
		{"whole", 0, 4, 4, true},
		{"empty at end", 4, 0, 4, true},
		{"tail", 2, 2, 4, true},
		{"past end", 3, 2, 4, false},
		{"negative offset", -1, 1, 4, false},
		{"negative length", 0, -1, 4, false},
		{"offset past size", 5, 0, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRange("view", tt.offset, tt.length, tt.size)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange))
			var re *RangeError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, "view", re.Arg)
			assert.Equal(t, tt.size, re.Size)
		})
	}
}

func TestMustRangePanics(t *testing.T) {
	assert.NotPanics(t, func() { MustRange("i", 0, 1, 1) })
	assert.PanicsWithError(t, "i: range [1, 2) out of bounds for size 1", func() { MustRange("i", 1, 1, 1) })
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel(" warning "))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("info"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	elapsed := c.Elapsed()
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)

	c.Stop()
	time.Sleep(2 * time.Millisecond)
	c.Update()
	assert.Equal(t, elapsed, c.Elapsed())
}
