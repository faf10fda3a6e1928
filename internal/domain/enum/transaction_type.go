package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionType classifies an employee account transaction
type TransactionType string

const (
	TransactionCommission TransactionType = "commission"
	TransactionSalary     TransactionType = "salary"
	TransactionDeduction  TransactionType = "deduction"
	TransactionAdvance    TransactionType = "advance"
	TransactionBonus      TransactionType = "bonus"
	TransactionWithdrawal TransactionType = "withdrawal"
)

func (t TransactionType) String() string {
	return string(t)
}

// Valid reports whether the value is one of the known transaction types
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionCommission, TransactionSalary, TransactionDeduction,
		TransactionAdvance, TransactionBonus, TransactionWithdrawal:
		return true
	}
	return false
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = TransactionType(str)
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = TransactionCommission
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(string(v))
	}
	return nil
}
