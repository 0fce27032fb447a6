package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name  string
		param string
		want  uint
		ok    bool
	}{
		{name: "plain number", param: "42", want: 42, ok: true},
		{name: "surrounding whitespace", param: " 7 ", want: 7, ok: true},
		{name: "zero is not a valid id", param: "0"},
		{name: "alphabetic", param: "testing123"},
		{name: "negative", param: "-1"},
		{name: "empty", param: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.param)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, id)
			} else {
				assert.ErrorIs(t, err, ErrInvalidID)
			}
		})
	}
}

func TestSanitizeStripsMarkup(t *testing.T) {
	assert.Equal(t, "plain", Sanitize("  plain  "))
	assert.Equal(t, "bold", Sanitize("<b>bold</b>"))
	assert.Equal(t, "", Sanitize("<script>alert(1)</script>"))
}
