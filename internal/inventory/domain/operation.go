package domain

import (
	"encoding/json"
	"fmt"
)

// Operation tags a change entry.
type Operation string

const (
	OperationInsert Operation = "INSERT"
	OperationRemove Operation = "REMOVE"
)

// Wire values are part of the API contract. Append only.
var operationWire = map[Operation]int{
	OperationRemove: 0,
	OperationInsert: 1,
}

func (o Operation) Valid() bool {
	_, ok := operationWire[o]
	return ok
}

func (o Operation) MarshalJSON() ([]byte, error) {
	v, ok := operationWire[o]
	if !ok {
		return nil, fmt.Errorf("unknown inventory operation %q", string(o))
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts the wire int or the name.
func (o *Operation) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		for op, v := range operationWire {
			if v == n {
				*o = op
				return nil
			}
		}
		return fmt.Errorf("unknown inventory operation %d", n)
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !Operation(s).Valid() {
		return fmt.Errorf("unknown inventory operation %q", s)
	}
	*o = Operation(s)
	return nil
}
