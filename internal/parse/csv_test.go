package parse_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/parse"
)

func TestCSV(t *testing.T) {
	type testCase struct {
		name string
		text string
		want [][]string
	}

	tests := []testCase{
		{
			name: "Simple",
			text: "Date,Description,Amount\n2023-04-15,Groceries,-12.50\n",
			want: [][]string{
				{"Date", "Description", "Amount"},
				{"2023-04-15", "Groceries", "-12.50"},
			},
		},
		{
			name: "CRLFAndBlankLines",
			text: "a,b\r\n\r\n   \r\nc,d",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "QuotedComma",
			text: `2023-04-15,"Dinner, with friends","$1,234.50"`,
			want: [][]string{{"2023-04-15", "Dinner, with friends", "$1,234.50"}},
		},
		{
			name: "TrailingEmptyField",
			text: "a,b,",
			want: [][]string{{"a", "b", ""}},
		},
		{
			name: "DoubledQuoteIsNotAnEscape",
			text: `"a""b",c`,
			want: [][]string{{"ab", "c"}},
		},
		{
			name: "UnbalancedQuoteSwallowsRest",
			text: `"a,b,c`,
			want: [][]string{{"a,b,c"}},
		},
		{
			name: "Empty",
			text: "\n\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parse.CSV(tt.text))
		})
	}
}

// Rows whose cells have no quotes or newlines survive a join-quote-parse round trip.
func TestCSV_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []rune("abc XYZ019,.-$é")

	for range 200 {
		rows := make([][]string, 1+rng.IntN(5))
		cols := 1 + rng.IntN(6)

		var sb strings.Builder

		for i := range rows {
			row := make([]string, cols)
			quoted := make([]string, cols)

			for j := range row {
				cell := make([]rune, rng.IntN(8))
				for k := range cell {
					cell[k] = alphabet[rng.IntN(len(alphabet))]
				}

				row[j] = string(cell)
				quoted[j] = `"` + row[j] + `"`
			}

			// A row of blank cells would be dropped as a blank line; anchor it.
			row[0] = "r" + row[0]
			quoted[0] = `"` + row[0] + `"`

			rows[i] = row
			sb.WriteString(strings.Join(quoted, ","))
			sb.WriteString("\n")
		}

		assert.Equal(t, rows, parse.CSV(sb.String()))
	}
}
