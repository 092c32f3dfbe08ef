package view

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestExportModel_Steps(t *testing.T) {
	m := NewExportModel(nil, nil)
	assert.Equal(t, exportPickRange, m.step)

	from := civil.Date{Year: 2024, Month: 3, Day: 1}
	model, cmd := m.Update(TimeframeSelectedMsg{From: &from})
	m = model.(ExportModel)

	assert.NotNil(t, cmd)
	assert.Equal(t, exportPickDir, m.step)
	assert.Equal(t, transaction.ListFilter{From: &from, Sort: transaction.SortDateAsc}, m.filter)
	assert.Contains(t, m.View(), "Output directory")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(ExportModel)
	assert.Equal(t, exportPickRange, m.step)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, BackMsg{}, cmd())
}

func TestExportDoneMsg_View(t *testing.T) {
	type testCase struct {
		name string
		msg  exportDoneMsg
		want string
	}

	tests := []testCase{
		{name: "Written", msg: exportDoneMsg{path: "exports/tally.csv", count: 3, summary: "food: -12.00"}, want: "Wrote 3 transactions to exports/tally.csv"},
		{name: "Empty", msg: exportDoneMsg{path: "exports/tally.csv"}, want: "No transactions in this range."},
		{name: "Failed", msg: exportDoneMsg{err: errors.New("disk full")}, want: "Error: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.msg.view(), tt.want)
		})
	}
}
