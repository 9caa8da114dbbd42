package domain

import (
	"encoding/json"
	"fmt"
)

// Status is an order's lifecycle state.
type Status string

const (
	StatusReady     Status = "READY"
	StatusApproved  Status = "APPROVED"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
)

// Wire values are part of the API contract. Append only.
var statusWire = map[Status]int{
	StatusReady:     0,
	StatusApproved:  1,
	StatusInTransit: 2,
	StatusDelivered: 3,
}

func (s Status) Valid() bool {
	_, ok := statusWire[s]
	return ok
}

// StatusFromWire maps a wire int back to its status.
func StatusFromWire(n int) (Status, bool) {
	for s, v := range statusWire {
		if v == n {
			return s, true
		}
	}
	return "", false
}

func (s Status) MarshalJSON() ([]byte, error) {
	v, ok := statusWire[s]
	if !ok {
		return nil, fmt.Errorf("unknown order status %q", string(s))
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts the wire int or the name.
func (s *Status) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		st, ok := StatusFromWire(n)
		if !ok {
			return fmt.Errorf("unknown order status %d", n)
		}
		*s = st
		return nil
	}

	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	if !Status(name).Valid() {
		return fmt.Errorf("unknown order status %q", name)
	}
	*s = Status(name)
	return nil
}
