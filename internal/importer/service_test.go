package importer_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/storage/memory"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

var defaultMapping = importer.Mapping{Date: 0, Description: 1, Amount: 2, Category: 3}

type fixture struct {
	txs     *transaction.Service
	notices *notify.Recorder
	svc     *importer.Service
}

func newFixture() fixture {
	txs := transaction.NewService(store.New(memory.New()), notify.Discard)
	notices := &notify.Recorder{}

	return fixture{
		txs:     txs,
		notices: notices,
		svc:     importer.NewService(txs, notices, 0),
	}
}

func csvFile(body string) importer.File {
	return importer.File{Name: "import.csv", ContentType: "text/csv", Size: int64(len(body))}
}

func (f fixture) stored(t *testing.T) []*transaction.Transaction {
	t.Helper()

	txs, err := f.txs.List(context.Background(), transaction.ListFilter{})
	require.NoError(t, err)

	return txs
}

func TestService_Import_SkipsBadDate(t *testing.T) {
	f := newFixture()
	body := "Date,Description,Amount,Category\n" +
		"2023-04-15,Grocery Shopping,$328.45,groceries\n" +
		"yesterday-ish,Coffee,-3.20,food\n"

	res, err := f.svc.Import(context.Background(), csvFile(body), strings.NewReader(body), defaultMapping)
	require.NoError(t, err)

	assert.Len(t, res.Imported, 1)
	assert.Equal(t, 1, res.Skipped)

	stored := f.stored(t)
	require.Len(t, stored, 1)

	tx := stored[0]
	assert.Equal(t, civil.Date{Year: 2023, Month: 4, Day: 15}, tx.Date)
	assert.Equal(t, "Grocery Shopping", tx.Description)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("328.45")))
	assert.Equal(t, transaction.CategoryFood, tx.Category)
	assert.Equal(t, "Imported from CSV", tx.Notes)

	assert.Equal(t, []notify.Notice{{
		Message:  "Successfully imported 1 transactions. 1 rows were skipped due to errors.",
		Severity: notify.SeveritySuccess,
	}}, f.notices.Notices())
}

func TestService_Import_Failures(t *testing.T) {
	type args struct {
		file    importer.File
		body    string
		mapping importer.Mapping
	}

	type testCase struct {
		name       string
		args       args
		wantErr    error
		wantNotice string
	}

	header := "Date,Description,Amount,Category\n"

	tests := []testCase{
		{
			name:       "NotCSV",
			args:       args{file: importer.File{Name: "notes.txt", ContentType: "text/plain", Size: 3}, body: "abc", mapping: defaultMapping},
			wantErr:    importer.ErrInvalidFile,
			wantNotice: "Please upload a valid CSV file.",
		},
		{
			name:       "TooLarge",
			args:       args{file: importer.File{Name: "big.csv", Size: importer.DefaultMaxSize + 1}, body: header, mapping: defaultMapping},
			wantErr:    importer.ErrInvalidFile,
			wantNotice: "File size exceeds 10MB limit.",
		},
		{
			name:       "Empty",
			args:       args{file: csvFile("\n\n"), body: "\n \n", mapping: defaultMapping},
			wantErr:    importer.ErrEmptyInput,
			wantNotice: "The CSV file appears to be empty.",
		},
		{
			name:       "HeaderOnly",
			args:       args{file: csvFile(header), body: header, mapping: defaultMapping},
			wantErr:    importer.ErrNoValidRows,
			wantNotice: "No valid transactions found in the CSV file.",
		},
		{
			name:       "EveryRowBad",
			args:       args{file: csvFile(""), body: header + "nope,x,1,food\n2023-01-01,y,abc,food\n2023-01-02,short\n", mapping: defaultMapping},
			wantErr:    importer.ErrNoValidRows,
			wantNotice: "No valid transactions found in the CSV file.",
		},
		{
			name:    "NegativeMapping",
			args:    args{file: csvFile(header), body: header, mapping: importer.Mapping{Date: -1}},
			wantErr: importer.ErrInvalidMapping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.Import(context.Background(), tt.args.file, strings.NewReader(tt.args.body), tt.args.mapping)
			require.ErrorIs(t, err, tt.wantErr)

			assert.Empty(t, f.stored(t))

			last, ok := f.notices.Last()
			require.True(t, ok)
			assert.Equal(t, notify.SeverityError, last.Severity)

			if tt.wantNotice != "" {
				assert.Equal(t, tt.wantNotice, last.Message)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestService_Import_ReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := notify.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), notify.Notice{Message: "Error reading file.", Severity: notify.SeverityError})

	svc := importer.NewService(transaction.NewService(store.New(memory.New()), notify.Discard), notifier, 0)

	_, err := svc.Import(context.Background(), csvFile("x"), failingReader{}, defaultMapping)
	assert.ErrorIs(t, err, importer.ErrReadFailure)
}

func TestService_Import_StoresNMinusK(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for round := range 25 {
		n := 1 + rng.IntN(30)

		var (
			sb  strings.Builder
			bad int
		)

		sb.WriteString("Date,Description,Amount,Category\n")

		for i := range n {
			switch rng.IntN(4) {
			case 0:
				bad++
				fmt.Fprintf(&sb, "not-a-date,row %d,1.00,food\n", i)
			case 1:
				bad++
				fmt.Fprintf(&sb, "2023-04-%02d,row %d,n/a,food\n", 1+i%28, i)
			case 2:
				bad++
				fmt.Fprintf(&sb, "2023-04-%02d,row %d\n", 1+i%28, i)
			default:
				fmt.Fprintf(&sb, "4/%d/2023,\"row, %d\",\"-$1,0%02d.50\",bill\n", 1+i%28, i, i)
			}
		}

		f := newFixture()
		body := sb.String()

		res, err := f.svc.Import(context.Background(), csvFile(body), strings.NewReader(body), defaultMapping)
		if bad == n {
			assert.ErrorIs(t, err, importer.ErrNoValidRows, "round %d", round)
			assert.Empty(t, f.stored(t))

			continue
		}

		require.NoError(t, err, "round %d", round)
		assert.Equal(t, bad, res.Skipped, "round %d", round)
		assert.Len(t, f.stored(t), n-bad, "round %d", round)
	}
}

func TestService_Import_AppendsToExisting(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.txs.Create(ctx, transaction.CreateParams{
		Date:        civil.Date{Year: 2023, Month: 1, Day: 1},
		Description: "Existing",
		Amount:      decimal.NewFromInt(5),
		Type:        transaction.TypeExpense,
		Category:    transaction.CategoryOther,
	})
	require.NoError(t, err)

	body := "d,desc,amt,cat\n2023-04-14,Monthly Salary,8230.00,salary\n2023-04-13,Electric Bill,-156.78,electric\n"

	res, err := f.svc.Import(ctx, csvFile(body), strings.NewReader(body), defaultMapping)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	assert.Len(t, f.stored(t), 3)

	last, _ := f.notices.Last()
	assert.Equal(t, "Successfully imported 2 transactions.", last.Message)
}

func TestService_Import_CustomMapping(t *testing.T) {
	f := newFixture()
	body := "category;ignored,amount,date,description\nrestaurant,x,-20,2023-04-01,Dinner\n"

	res, err := f.svc.Import(context.Background(), csvFile(body), strings.NewReader(body), importer.Mapping{Date: 3, Description: 4, Amount: 2, Category: 0})
	require.NoError(t, err)
	require.Len(t, res.Imported, 1)

	assert.Equal(t, "Dinner", res.Imported[0].Description)
	assert.Equal(t, transaction.CategoryFood, res.Imported[0].Category)
}

func TestService_Preview(t *testing.T) {
	f := newFixture()

	var sb strings.Builder
	sb.WriteString("Date,Description,Amount,Category\n")

	for i := range 8 {
		fmt.Fprintf(&sb, "2023-04-%02d,row %d,1,food\n", i+1, i)
	}

	body := sb.String()

	p, err := f.svc.Preview(context.Background(), csvFile(body), strings.NewReader(body), 5)
	require.NoError(t, err)

	assert.Len(t, p.Rows, 5)
	assert.Equal(t, []string{"Date", "Description", "Amount", "Category"}, p.Rows[0])
	assert.Equal(t, 4, p.Columns)
	assert.Equal(t, 9, p.Total)
	assert.Equal(t, defaultMapping, p.Mapping)
	assert.Empty(t, f.stored(t))
	assert.Empty(t, f.notices.Notices())
}
