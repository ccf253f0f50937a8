package models

import "time"

type CategoryType string

const (
	CategoryExpense      CategoryType = "EXPENSE"
	CategoryIncome       CategoryType = "INCOME"
	CategorySelfTransfer CategoryType = "SELFTRANSFER"
)

func (t CategoryType) Valid() bool {
	switch t {
	case CategoryExpense, CategoryIncome, CategorySelfTransfer:
		return true
	}
	return false
}

// Category is either a built-in (fixed set below, synthetic id, never
// persisted) or a user-owned custom category stored in the database. ID is a
// string so both id spaces fit: built-ins use "builtin-..." keys, custom
// categories use their row uuid.
type Category struct {
	ID        string       `db:"id"`
	UserID    string       `db:"user_id"`
	Name      string       `db:"name"`
	Type      CategoryType `db:"type"`
	Icon      string       `db:"icon"`
	Color     string       `db:"color"`
	IsCustom  bool
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var builtinCategories = []Category{
	{ID: "builtin-expense-groceries", Name: "Groceries", Type: CategoryExpense, Icon: "shopping-cart", Color: "#4CAF50"},
	{ID: "builtin-expense-rent", Name: "Rent", Type: CategoryExpense, Icon: "home", Color: "#795548"},
	{ID: "builtin-expense-transport", Name: "Transport", Type: CategoryExpense, Icon: "bus", Color: "#2196F3"},
	{ID: "builtin-expense-utilities", Name: "Utilities", Type: CategoryExpense, Icon: "bolt", Color: "#FFC107"},
	{ID: "builtin-expense-dining", Name: "Dining", Type: CategoryExpense, Icon: "utensils", Color: "#FF5722"},
	{ID: "builtin-expense-health", Name: "Health", Type: CategoryExpense, Icon: "heart", Color: "#E91E63"},
	{ID: "builtin-expense-entertainment", Name: "Entertainment", Type: CategoryExpense, Icon: "film", Color: "#9C27B0"},
	{ID: "builtin-expense-shopping", Name: "Shopping", Type: CategoryExpense, Icon: "bag", Color: "#3F51B5"},
	{ID: "builtin-income-salary", Name: "Salary", Type: CategoryIncome, Icon: "briefcase", Color: "#009688"},
	{ID: "builtin-income-gifts", Name: "Gifts", Type: CategoryIncome, Icon: "gift", Color: "#F44336"},
	{ID: "builtin-income-interest", Name: "Interest", Type: CategoryIncome, Icon: "percent", Color: "#607D8B"},
	{ID: "builtin-selftransfer-transfer", Name: "Transfer", Type: CategorySelfTransfer, Icon: "exchange", Color: "#9E9E9E"},
}

// BuiltinCategories returns a copy of the built-in set, optionally filtered
// by type.
func BuiltinCategories(t CategoryType) []Category {
	out := make([]Category, 0, len(builtinCategories))
	for _, c := range builtinCategories {
		if t == "" || c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
