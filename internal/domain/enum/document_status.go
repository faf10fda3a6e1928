package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DocumentStatus represents the lifecycle state of a settled document.
// A document is Active once its settlement has been applied; reverting
// moves it to Reverted and there is no way back short of re-creating it.
type DocumentStatus int

const (
	DocumentStatusActive   DocumentStatus = 0
	DocumentStatusReverted DocumentStatus = 1
)

func (s DocumentStatus) String() string {
	names := [...]string{"Active", "Reverted"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Active"
	}
	return names[s]
}

func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DocumentStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = DocumentStatusActive
	case "Reverted":
		*s = DocumentStatusReverted
	}
	return nil
}

func (s DocumentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DocumentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DocumentStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DocumentStatus(v)
	case int:
		*s = DocumentStatus(v)
	}
	return nil
}
