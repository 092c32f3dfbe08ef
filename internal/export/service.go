package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Header matches importer.DefaultMapping, so an export re-imports without remapping.
var Header = []string{"Date", "Description", "Amount", "Category", "Notes"}

type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Service writes transactions out as CSV files and text digests.
type Service struct {
	transactions Lister
	now          func() time.Time
}

func NewService(transactions Lister) *Service {
	return &Service{transactions: transactions, now: time.Now}
}

// WriteCSV writes every transaction matching filter to w, oldest first, and
// returns how many rows were written.
func (s *Service) WriteCSV(ctx context.Context, filter transaction.ListFilter, w io.Writer) (int, error) {
	if filter.Sort == "" {
		filter.Sort = transaction.SortDateAsc
	}

	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.Date.String(),
			tx.Description,
			tx.Amount.StringFixed(2),
			string(tx.Category),
			tx.Notes,
		}

		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(txs), nil
}

// ExportFile writes the CSV into dir under a dated file name and returns its path.
func (s *Service) ExportFile(ctx context.Context, filter transaction.ListFilter, dir string) (string, int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, s.FileName(filter))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	n, err := s.WriteCSV(ctx, filter, f)
	if err != nil {
		return "", 0, err
	}

	return path, n, nil
}

// FileName is tally_YYYYMMDD.csv, or tally_FROM_TO.csv when the export is bounded.
func (s *Service) FileName(filter transaction.ListFilter) string {
	if filter.From == nil && filter.To == nil {
		return fmt.Sprintf("tally_%s.csv", s.now().Format("20060102"))
	}

	from, to := "start", "today"
	if filter.From != nil {
		from = strings.ReplaceAll(filter.From.String(), "-", "")
	}

	if filter.To != nil {
		to = strings.ReplaceAll(filter.To.String(), "-", "")
	}

	return fmt.Sprintf("tally_%s_%s.csv", from, to)
}

// Summary renders one line per transaction, suitable for pasting into a message.
func Summary(txs []*transaction.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := ""
		if tx.Amount.IsPositive() {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n", tx.Date, tx.Description, sign, tx.Amount.StringFixed(2), tx.Category)
	}

	return sb.String()
}
