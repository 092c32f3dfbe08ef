package view

import (
	"testing"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeframePicker_SelectsLastMonth(t *testing.T) {
	picker := NewTimeframePicker(TimeframeThisWeek)
	picker.today = func() civil.Date { return civil.Date{Year: 2024, Month: 3, Day: 14} }

	for range 3 {
		picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	_, cmd := picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2024, Month: 2, Day: 1}, *msg.From)
	assert.Equal(t, civil.Date{Year: 2024, Month: 2, Day: 29}, *msg.To)
}

func TestTimeframePicker_AllTime(t *testing.T) {
	picker := NewTimeframePicker(TimeframeAll)

	_, cmd := picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Nil(t, msg.From)
	assert.Nil(t, msg.To)
}

func TestCustomRange(t *testing.T) {
	from, to, err := customRange("2024-01-01", "1/31/2024")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 1}, *from)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 31}, *to)

	from, to, err = customRange("", "2024-01-31")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.NotNil(t, to)

	_, _, err = customRange("2024-02-01", "2024-01-01")
	assert.Error(t, err)

	_, _, err = customRange("2024-02-30", "")
	assert.Error(t, err)
}

func TestTimeframePicker_CustomRangeFormAndEsc(t *testing.T) {
	picker := NewTimeframePicker(TimeframeAll)
	require.True(t, picker.IsSelecting())

	picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyDown})
	picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, picker.IsSelecting())
	assert.Contains(t, picker.View(), "Custom Range")

	picker, cmd := picker.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.True(t, picker.IsSelecting())
}

func TestTimeframePicker_CursorStaysInBounds(t *testing.T) {
	picker := NewTimeframePicker(TimeframeLastMonth)

	picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, picker.cursor)

	for range 10 {
		picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, TimeframeCustom, picker.presets[picker.cursor])
}
