package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeDraft() *BookingDraft {
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	return &BookingDraft{
		CustomerID:   7,
		BusinessID:   1,
		LocationID:   2,
		ServiceID:    3,
		VariantID:    4,
		VariantName:  "Стрижка",
		VariantPrice: 45,
		StartTime:    start,
		EndTime:      start.Add(45 * time.Minute),
		TotalPrice:   45,
	}
}

func TestBookingDraft_Validate_Complete(t *testing.T) {
	assert.NoError(t, completeDraft().Validate())
}

func TestBookingDraft_Validate_ReportsFirstMissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *BookingDraft)
		field  string
	}{
		{"missing business", func(d *BookingDraft) { d.BusinessID = 0 }, "business"},
		{"missing location", func(d *BookingDraft) { d.LocationID = 0 }, "location"},
		{"missing variant", func(d *BookingDraft) { d.VariantID = 0 }, "variant"},
		{"missing start time", func(d *BookingDraft) { d.StartTime = time.Time{} }, "start_time"},
		{"missing end time", func(d *BookingDraft) { d.EndTime = time.Time{} }, "end_time"},
		{"zero price", func(d *BookingDraft) { d.TotalPrice = 0 }, "total_price"},
		{"missing customer", func(d *BookingDraft) { d.CustomerID = 0 }, "customer_id"},
		{"end before start", func(d *BookingDraft) { d.EndTime = d.StartTime.Add(-time.Minute) }, "end_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			tt.mutate(draft)

			err := draft.Validate()
			require.Error(t, err)

			var incomplete *IncompleteDraftError
			require.ErrorAs(t, err, &incomplete)
			assert.Equal(t, tt.field, incomplete.Field)
		})
	}
}

func TestBookingDraft_Validate_BusinessCheckedBeforeLocation(t *testing.T) {
	// Порядок проверки полей фиксирован: при нескольких пропусках
	// возвращается самый ранний шаг выбора
	draft := completeDraft()
	draft.BusinessID = 0
	draft.LocationID = 0
	draft.VariantID = 0

	var incomplete *IncompleteDraftError
	require.ErrorAs(t, draft.Validate(), &incomplete)
	assert.Equal(t, "business", incomplete.Field)
}

func TestBookingDraft_ComputeTotalPrice(t *testing.T) {
	draft := completeDraft()
	draft.AddOns = []DraftAddOn{
		{ID: 11, Name: "Уход", Price: 15},
		{ID: 12, Name: "Укладка", Price: 20},
	}

	assert.Equal(t, 80.0, draft.ComputeTotalPrice())
}

func TestBookingDraft_ComputeTotalPrice_NoAddOns(t *testing.T) {
	assert.Equal(t, 45.0, completeDraft().ComputeTotalPrice())
}

func TestBookingDraft_AddOnIDs(t *testing.T) {
	draft := completeDraft()
	draft.AddOns = []DraftAddOn{{ID: 11}, {ID: 12}}

	assert.Equal(t, []int64{11, 12}, draft.AddOnIDs())
}
