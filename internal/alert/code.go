package alert

import (
	"encoding/json"
	"fmt"
)

// Code classifies an alert.
type Code string

const (
	CodeItemsToExpire          Code = "ITEMS_TO_EXPIRE"
	CodeLowQuantityItems       Code = "LOW_QUANTITY_ITEMS"
	CodeOrderReady             Code = "ORDER_READY"
	CodeOrderPlaced            Code = "ORDER_PLACED"
	CodeOrderDelivered         Code = "ORDER_DELIVERED"
	CodeCheckingFunctionResult Code = "CHECKING_FUNCTION_RESULT"
)

// Wire values are read by existing clients. Append only.
var codeWire = map[Code]int{
	CodeItemsToExpire:          0,
	CodeLowQuantityItems:       1,
	CodeOrderReady:             2,
	CodeOrderPlaced:            3,
	CodeOrderDelivered:         4,
	CodeCheckingFunctionResult: 5,
}

func (c Code) Valid() bool {
	_, ok := codeWire[c]
	return ok
}

func (c Code) MarshalJSON() ([]byte, error) {
	v, ok := codeWire[c]
	if !ok {
		return nil, fmt.Errorf("unknown alert code %q", string(c))
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts the wire int or the name.
func (c *Code) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		for code, v := range codeWire {
			if v == n {
				*c = code
				return nil
			}
		}
		return fmt.Errorf("unknown alert code %d", n)
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !Code(s).Valid() {
		return fmt.Errorf("unknown alert code %q", s)
	}
	*c = Code(s)
	return nil
}
