package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentType represents how a sales or purchase document was paid
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeTransfer PaymentType = "transfer"
	PaymentTypeWallet   PaymentType = "wallet"
	PaymentTypeDeferred PaymentType = "deferred"
)

func (t PaymentType) String() string {
	return string(t)
}

// IsDeferred reports whether the document leaves an open balance on the
// party debt ledger (returns only touch debt for deferred payments).
func (t PaymentType) IsDeferred() bool {
	return t == PaymentTypeDeferred
}

// Valid reports whether the value is one of the known payment types
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeTransfer, PaymentTypeWallet, PaymentTypeDeferred:
		return true
	}
	return false
}

func (t PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = PaymentType(str)
	return nil
}

func (t PaymentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentTypeCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PaymentType(v)
	case []byte:
		*t = PaymentType(string(v))
	}
	return nil
}
