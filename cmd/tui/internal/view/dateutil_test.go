package view

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTimeframeRange(t *testing.T) {
	type args struct {
		tf    Timeframe
		today civil.Date
	}

	type testCase struct {
		name     string
		args     args
		wantFrom civil.Date
		wantTo   civil.Date
	}

	// 2024-03-14 is a Thursday.
	thursday := civil.Date{Year: 2024, Month: 3, Day: 14}

	tests := []testCase{
		{
			name:     "this week starts on monday",
			args:     args{tf: TimeframeThisWeek, today: thursday},
			wantFrom: civil.Date{Year: 2024, Month: 3, Day: 11},
			wantTo:   thursday,
		},
		{
			name:     "this week on a sunday",
			args:     args{tf: TimeframeThisWeek, today: civil.Date{Year: 2024, Month: 3, Day: 17}},
			wantFrom: civil.Date{Year: 2024, Month: 3, Day: 11},
			wantTo:   civil.Date{Year: 2024, Month: 3, Day: 17},
		},
		{
			name:     "last week",
			args:     args{tf: TimeframeLastWeek, today: thursday},
			wantFrom: civil.Date{Year: 2024, Month: 3, Day: 4},
			wantTo:   civil.Date{Year: 2024, Month: 3, Day: 10},
		},
		{
			name:     "this month",
			args:     args{tf: TimeframeThisMonth, today: thursday},
			wantFrom: civil.Date{Year: 2024, Month: 3, Day: 1},
			wantTo:   thursday,
		},
		{
			name:     "last month in a leap year",
			args:     args{tf: TimeframeLastMonth, today: thursday},
			wantFrom: civil.Date{Year: 2024, Month: 2, Day: 1},
			wantTo:   civil.Date{Year: 2024, Month: 2, Day: 29},
		},
		{
			name:     "last month across a year boundary",
			args:     args{tf: TimeframeLastMonth, today: civil.Date{Year: 2025, Month: 1, Day: 9}},
			wantFrom: civil.Date{Year: 2024, Month: 12, Day: 1},
			wantTo:   civil.Date{Year: 2024, Month: 12, Day: 31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := TimeframeRange(tt.args.tf, tt.args.today)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "-$12.50", FormatAmount(decimal.RequireFromString("-12.5")))
	assert.Equal(t, "$1000.00", FormatAmount(decimal.RequireFromString("1000")))
}
