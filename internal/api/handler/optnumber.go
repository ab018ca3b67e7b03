package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OptNumber is an optional numeric request field with blank-to-absent
// coercion: JSON null or an empty string decode to absent, a number or a
// numeric string decode to a value. Forms submit numeric inputs as strings,
// so both shapes must be accepted. Coercion happens once here, at the
// request boundary.
type OptNumber struct {
	Value *float64
}

func (n *OptNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		n.Value = nil
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			n.Value = nil
			return nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", str)
		}
		n.Value = &f
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	n.Value = &f
	return nil
}

func (n OptNumber) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
