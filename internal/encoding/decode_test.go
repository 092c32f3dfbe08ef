package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
)

func TestDecode(t *testing.T) {
	type testCase struct {
		name  string
		input []byte
		want  string
	}

	tests := []testCase{
		{
			name:  "UTF8Passthrough",
			input: []byte("Date,Description\n2023-04-15,Café\n"),
			want:  "Date,Description\n2023-04-15,Café\n",
		},
		{
			name:  "UTF8BOMStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Amount\n")...),
			want:  "Date,Amount\n",
		},
		{
			// Windows-1252: é = 0xE9
			name:  "Latin1",
			input: []byte{'C', 'a', 'f', 0xE9, ',', '1', '2', '\n'},
			want:  "Café,12\n",
		},
		{
			name:  "UTF16LE",
			input: []byte{0xFF, 0xFE, 'a', 0x00, ',', 0x00, 'b', 0x00},
			want:  "a,b",
		},
		{
			name:  "UTF16BE",
			input: []byte{0xFE, 0xFF, 0x00, 'a', 0x00, ',', 0x00, 'b'},
			want:  "a,b",
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encoding.Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
