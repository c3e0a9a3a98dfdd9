package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages_Scan(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    Languages
		wantErr bool
	}{
		{"bytes", []byte(`{"Go":1200,"Shell":40}`), Languages{"Go": 1200, "Shell": 40}, false},
		{"string", `{"TypeScript":7}`, Languages{"TypeScript": 7}, false},
		{"nil", nil, Languages{}, false},
		{"empty", []byte{}, Languages{}, false},
		{"bad type", 42, nil, true},
		{"bad json", []byte(`[1,2]`), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Languages
			err := l.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestLanguages_Value(t *testing.T) {
	var empty Languages
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)

	v, err = Languages{"Go": 10}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Go":10}`, string(v.([]byte)))
}

func TestLanguages_HasAndNames(t *testing.T) {
	l := Languages{"Rust": 3, "Go": 5, "C": 1}

	assert.True(t, l.Has("Go"))
	assert.False(t, l.Has("go"))
	assert.Equal(t, []string{"C", "Go", "Rust"}, l.Names())
}
