package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:30"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "23:59"},
		{name: "bad hour", input: "24:00", wantErr: true},
		{name: "bad minutes", input: "10:61", wantErr: true},
		{name: "no leading zero", input: "9:30", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		add     int
		want    TimeString
		wantErr bool
	}{
		{name: "plain", start: "10:00", add: 60, want: "11:00"},
		{name: "cross hour", start: "10:45", add: 30, want: "11:15"},
		{name: "zero", start: "10:00", add: 0, want: "10:00"},
		{name: "negative", start: "10:00", add: -30, want: "09:30"},
		{name: "past midnight", start: "23:30", add: 60, wantErr: true},
		{name: "before day start", start: "00:10", add: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.add)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("13:30").IsAfter("13:00"))
	assert.False(t, TimeString("13:00").IsAfter("13:00"))
}

func TestTimeString_At(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	day := time.Date(2025, 10, 15, 0, 0, 0, 0, loc)
	got, err := TimeString("13:45").At(day, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 15, 13, 45, 0, 0, loc), got)
}

func TestNewTimeString(t *testing.T) {
	loc := time.UTC
	assert.Equal(t, TimeString("08:05"), NewTimeString(time.Date(2025, 1, 2, 8, 5, 59, 0, loc)))
}
