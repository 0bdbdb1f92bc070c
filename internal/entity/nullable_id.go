package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NullableID is an optional reference to another row.
// It decodes from a number, a numeric string, "" or null; the last two leave it unset.
type NullableID struct {
	id  int
	set bool
}

func NewNullableID(id int) NullableID {
	return NullableID{id: id, set: true}
}

// Ptr returns nil when the id is unset.
func (n NullableID) Ptr() *int {
	if !n.set {
		return nil
	}
	id := n.id
	return &id
}

func (n NullableID) Valid() bool {
	return n.set
}

func (n NullableID) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.id)), nil
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = NullableID{}
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = NullableID{}
			return nil
		}
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("id %s is not an integer", data)
	}
	*n = NewNullableID(id)
	return nil
}
