package ngen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyOutput(t *testing.T) {
	tests := []struct {
		name     string
		out      *Output
		expected bool
		err      error
	}{
		{"Exit 0", &Output{ExitCode: 0}, true, nil},
		{"Exit 1", &Output{ExitCode: 1}, false, nil},
		{
			"Permission sentinel with exit 0",
			&Output{Lines: []string{"Microsoft (R) CLR Native Image Generator", "Administrator permissions are needed to use the selected options."}},
			false, ErrPermissionDenied,
		},
		{
			"Permission sentinel with exit 1",
			&Output{Lines: []string{"Administrator permissions are needed"}, ExitCode: 1},
			false, ErrPermissionDenied,
		},
		{
			"Empty native images listing",
			&Output{Lines: []string{"NGEN Roots:", "C:\\app\\App.exe", "Native Images:"}, ExitCode: 0},
			false, nil,
		},
		{
			"Native images listed",
			&Output{Lines: []string{"NGEN Roots:", "C:\\app\\App.exe", "Native Images:", "App, Version=1.0.0.0"}, ExitCode: 0},
			true, nil,
		},
		{
			"Native images listed but exit 1",
			&Output{Lines: []string{"Native Images:", "App, Version=1.0.0.0"}, ExitCode: 1},
			false, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := classifyOutput(tt.out)
			assert.Equal(t, tt.expected, ok)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	lines := splitLines("first\r\n\r\nsecond\n\nthird")
	assert.Equal(t, []string{"first", "second", "third"}, lines)
	assert.Empty(t, splitLines(""))
}
