package view

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/goal"
)

func TestGoalDraft_Params(t *testing.T) {
	d := goalDraft{Name: "Vacation", Target: "5000", TargetDate: "12/31/2025", Saved: "", Notes: "Summer trip"}

	p, err := d.params()
	require.NoError(t, err)
	assert.Equal(t, "Vacation", p.Name)
	assert.True(t, decimal.NewFromInt(5000).Equal(p.TargetAmount))
	assert.True(t, p.SavedAmount.IsZero())
	require.NotNil(t, p.TargetDate)
	assert.Equal(t, civil.Date{Year: 2025, Month: 12, Day: 31}, *p.TargetDate)

	d.Target = "lots"
	_, err = d.params()
	assert.Error(t, err)
}

func TestDraftFromGoal(t *testing.T) {
	g := &goal.Goal{
		ID:           "goal1",
		Name:         "Car",
		TargetAmount: decimal.NewFromInt(10000),
		SavedAmount:  decimal.RequireFromString("2500.5"),
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	d := draftFromGoal(g)
	assert.Equal(t, "10000.00", d.Target)
	assert.Equal(t, "2500.50", d.Saved)
	assert.Empty(t, d.TargetDate)

	p, err := d.params()
	require.NoError(t, err)
	assert.Nil(t, p.TargetDate)
	assert.True(t, g.SavedAmount.Equal(p.SavedAmount))
}
