package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SourceType identifies the kind of document a commission record was earned on
type SourceType string

const (
	SourceSale           SourceType = "sale"
	SourceSaleReturn     SourceType = "sale_return"
	SourcePurchase       SourceType = "purchase"
	SourcePurchaseReturn SourceType = "purchase_return"
)

func (t SourceType) String() string {
	return string(t)
}

func (t SourceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *SourceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = SourceType(str)
	return nil
}

func (t SourceType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *SourceType) Scan(value interface{}) error {
	if value == nil {
		*t = SourceSale
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = SourceType(v)
	case []byte:
		*t = SourceType(string(v))
	}
	return nil
}
