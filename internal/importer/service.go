package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/parse"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Ledger stores a batch of imported transactions in one write.
type Ledger interface {
	AppendBatch(ctx context.Context, txs []*transaction.Transaction) error
}

type Service struct {
	ledger   Ledger
	notifier notify.Notifier
	maxSize  int64
}

func NewService(ledger Ledger, notifier notify.Notifier, maxSize int64) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &Service{ledger: ledger, notifier: notifier, maxSize: maxSize}
}

type Result struct {
	Imported []*transaction.Transaction `json:"imported"`
	Skipped  int                        `json:"skipped"`
}

type Preview struct {
	Rows    [][]string `json:"rows"`
	Columns int        `json:"columns"`
	Total   int        `json:"total"`
	Mapping Mapping    `json:"mapping"`
}

// Preview reads f and returns up to n leading rows (header included) so the
// caller can choose a column mapping. The suggested mapping follows the
// header titles when they are recognised, otherwise the positional default
// is suggested with an info notice.
func (s *Service) Preview(ctx context.Context, f File, r io.Reader, n int) (*Preview, error) {
	rows, err := s.read(ctx, f, r)
	if err != nil {
		return nil, err
	}

	columns := len(rows[0])

	mapping, ok := DetectMapping(rows[0])
	if !ok {
		mapping = DefaultMapping(columns)
		notify.Info(ctx, s.notifier, "Column titles were not recognised. Check the column mapping before importing.")
	}

	return &Preview{
		Rows:    rows[:min(n, len(rows))],
		Columns: columns,
		Total:   len(rows),
		Mapping: mapping,
	}, nil
}

// Import parses f with mapping m and appends every valid row in a single
// write. Invalid rows are skipped and counted. Nothing is written when no row
// is valid.
func (s *Service) Import(ctx context.Context, f File, r io.Reader, m Mapping) (*Result, error) {
	if err := m.Validate(0); err != nil {
		return nil, s.fail(ctx, err)
	}

	rows, err := s.read(ctx, f, r)
	if err != nil {
		return nil, err
	}

	txs, skipped := buildTransactions(rows, m)
	if len(txs) == 0 {
		return nil, s.fail(ctx, ErrNoValidRows)
	}

	if err := s.ledger.AppendBatch(ctx, txs); err != nil {
		notify.Error(ctx, s.notifier, "Error processing CSV file: "+err.Error())
		return nil, fmt.Errorf("storing imported transactions: %w", err)
	}

	msg := fmt.Sprintf("Successfully imported %d transactions.", len(txs))
	if skipped > 0 {
		msg += fmt.Sprintf(" %d rows were skipped due to errors.", skipped)
	}

	notify.Success(ctx, s.notifier, msg)

	return &Result{Imported: txs, Skipped: skipped}, nil
}

func (s *Service) read(ctx context.Context, f File, r io.Reader) ([][]string, error) {
	if err := CheckFile(f, s.maxSize); err != nil {
		return nil, s.fail(ctx, err)
	}

	// One byte past the limit is enough to notice a size header that lied.
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, s.fail(ctx, fmt.Errorf("%w: %w", ErrReadFailure, err))
	}

	if int64(len(data)) > s.maxSize {
		return nil, s.fail(ctx, tooLarge(s.maxSize))
	}

	text, err := encoding.Decode(data)
	if err != nil {
		return nil, s.fail(ctx, fmt.Errorf("%w: %w", ErrReadFailure, err))
	}

	rows := parse.CSV(text)
	if len(rows) == 0 {
		return nil, s.fail(ctx, ErrEmptyInput)
	}

	return rows, nil
}

// fail reports err to the notifier and returns it.
func (s *Service) fail(ctx context.Context, err error) error {
	notify.Error(ctx, s.notifier, userMessage(err))
	return err
}

func userMessage(err error) string {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Reason
	}

	switch {
	case errors.Is(err, ErrEmptyInput):
		return "The CSV file appears to be empty."
	case errors.Is(err, ErrNoValidRows):
		return "No valid transactions found in the CSV file."
	case errors.Is(err, ErrReadFailure):
		return "Error reading file."
	default:
		return err.Error()
	}
}
