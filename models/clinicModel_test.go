package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusPending, "bogus", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusConfirmed))
	assert.True(t, IsTerminalStatus(StatusCancelled))
	assert.True(t, IsTerminalStatus(StatusCompleted))
}

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"Monday", "Wednesday"}

	value, err := list.Value()
	assert.NoError(t, err)

	var scanned StringList
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringListNilValue(t *testing.T) {
	var list StringList
	value, err := list.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestMedicineListScanBytes(t *testing.T) {
	var list MedicineList
	err := list.Scan([]byte(`[{"name":"Ibuprofen","dosage":"200mg","duration":"5 days"}]`))
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Ibuprofen", list[0].Name)
}

func TestMedicineListScanRejectsUnknownType(t *testing.T) {
	var list MedicineList
	assert.Error(t, list.Scan(42))
}
