package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/kitchen-stock/pkg/apperr"
)

func TestStatusWireValues(t *testing.T) {
	for s, want := range map[Status]string{
		StatusReady:     "0",
		StatusApproved:  "1",
		StatusInTransit: "2",
		StatusDelivered: "3",
	} {
		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"IN_TRANSIT"`), &s))
	assert.Equal(t, StatusInTransit, s)
	require.NoError(t, json.Unmarshal([]byte(`3`), &s))
	assert.Equal(t, StatusDelivered, s)
	assert.Error(t, json.Unmarshal([]byte(`4`), &s))
}

func TestTransitions(t *testing.T) {
	all := []Status{StatusReady, StatusApproved, StatusInTransit, StatusDelivered}

	allowed := map[string]map[Status]bool{
		"approve":  {StatusReady: true, StatusApproved: true},
		"reject":   {StatusReady: true, StatusApproved: true, StatusInTransit: true},
		"dispatch": {StatusApproved: true},
		"deliver":  {StatusInTransit: true},
	}
	apply := map[string]func(o *Order) error{
		"approve":  (*Order).Approve,
		"reject":   (*Order).CheckRejectable,
		"dispatch": func(o *Order) error { return o.Dispatch("driver-1") },
		"deliver":  (*Order).Deliver,
	}

	for action, fn := range apply {
		for _, from := range all {
			o := &Order{ID: "o-1", Status: from}
			err := fn(o)
			if allowed[action][from] {
				assert.NoError(t, err, "%s from %s", action, from)
			} else {
				assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "%s from %s", action, from)
				assert.Equal(t, from, o.Status, "status unchanged on refusal")
			}
		}
	}
}

func TestDispatchRecordsDriver(t *testing.T) {
	o := &Order{Status: StatusApproved}
	require.NoError(t, o.Dispatch("driver-9"))
	assert.Equal(t, StatusInTransit, o.Status)
	assert.Equal(t, "driver-9", o.DriverID)
}
