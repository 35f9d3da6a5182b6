package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingState(t *testing.T) {
	tests := []struct {
		token string
		want  BookingState
		ok    bool
	}{
		{"", StateAll, true},
		{"ALL", StateAll, true},
		{"CURRENT", StateCurrent, true},
		{"PAST", StatePast, true},
		{"FUTURE", StateFuture, true},
		{"WAITING", StateWaiting, true},
		{"REJECTED", StateRejected, true},
		{"all", "", false},
		{"BOGUS", "", false},
		{"APPROVED", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseBookingState(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingState_Matches(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	past := &Booking{Start: now.Add(-10 * day), End: now.Add(-7 * day), Status: StatusApproved}
	startsNow := &Booking{Start: now, End: now.Add(2 * day), Status: StatusWaiting}
	current := &Booking{Start: now.Add(-2 * day), End: now.Add(2 * day), Status: StatusRejected}
	future := &Booking{Start: now.Add(3 * day), End: now.Add(8 * day), Status: StatusWaiting}

	t.Run("Current", func(t *testing.T) {
		assert.False(t, StateCurrent.Matches(past, now))
		assert.False(t, StateCurrent.Matches(startsNow, now))
		assert.True(t, StateCurrent.Matches(current, now))
		assert.False(t, StateCurrent.Matches(future, now))
	})

	t.Run("Past", func(t *testing.T) {
		assert.True(t, StatePast.Matches(past, now))
		assert.False(t, StatePast.Matches(current, now))
	})

	t.Run("Future", func(t *testing.T) {
		assert.True(t, StateFuture.Matches(future, now))
		assert.False(t, StateFuture.Matches(startsNow, now))
	})

	t.Run("Status", func(t *testing.T) {
		assert.True(t, StateWaiting.Matches(startsNow, now))
		assert.False(t, StateWaiting.Matches(current, now))
		assert.True(t, StateRejected.Matches(current, now))
		assert.True(t, StateAll.Matches(past, now))
	})
}

func TestPage_Valid(t *testing.T) {
	assert.True(t, Page{From: 0, Size: 1}.Valid())
	assert.False(t, Page{From: -1, Size: 10}.Valid())
	assert.False(t, Page{From: 0, Size: 0}.Valid())
	assert.False(t, Page{From: 5, Size: -3}.Valid())
}

func TestLocalDateTime_JSON(t *testing.T) {
	var in struct {
		Start LocalDateTime `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2025-03-04T05:06:07"}`), &in))

	got := in.Start.Time()
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 7, got.Second())

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-03-04T05:06:07"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"04.03.2025"}`), &in))
}

func TestLocalDateTime_Zero(t *testing.T) {
	out, err := json.Marshal(LocalDateTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestNewItemRequestView_EmptyItems(t *testing.T) {
	view := NewItemRequestView(&ItemRequest{ID: 1, Description: "drill"}, nil)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
}
