package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{"Int", 42, 42, false},
		{"Uint8", uint8(9), 9, false},
		{"Whole float", 42.0, 42, false},
		{"Float string", "42.0", 42, false},
		{"Padded string", " 42 ", 42, false},
		{"Thousands separator", "1,250", 1250, false},
		{"Truncates", "3.9", 3, false},
		{"Nil", nil, 0, true},
		{"Blank", "  ", 0, true},
		{"Text", "wide", 0, true},
		{"NaN", "NaN", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "12", ToString(12))
	assert.Equal(t, "", ToString(nil))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool([]byte("1")))
	assert.True(t, ToBool(" yes "))
	assert.True(t, ToBool("on"))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool(nil))
}
