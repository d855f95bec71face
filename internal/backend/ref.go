package backend

import (
	"bytes"
	"encoding/json"
)

// Ref is an id the backend sends either bare ("u1", 42) or as a populated
// object ({"id": "u1", ...}).
type Ref string

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref(s)
	case '{':
		var obj struct {
			ID    string `json:"id"`
			OldID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.ID != "" {
			*r = Ref(obj.ID)
		} else {
			*r = Ref(obj.OldID)
		}
	default:
		*r = Ref(data)
	}
	return nil
}

// String returns the id.
func (r Ref) String() string { return string(r) }
