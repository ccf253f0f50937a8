package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedAmount(t *testing.T) {
	income := &Transaction{Amount: decimal.NewFromFloat(12.34), Type: TransactionPositive}
	expense := &Transaction{Amount: decimal.NewFromFloat(12.34), Type: TransactionNegative}

	assert.True(t, decimal.NewFromFloat(12.34).Equal(income.SignedAmount()))
	assert.True(t, decimal.NewFromFloat(-12.34).Equal(expense.SignedAmount()))
}

func TestBuiltinCategoriesFilter(t *testing.T) {
	all := BuiltinCategories("")
	expense := BuiltinCategories(CategoryExpense)
	income := BuiltinCategories(CategoryIncome)
	self := BuiltinCategories(CategorySelfTransfer)

	assert.Equal(t, len(all), len(expense)+len(income)+len(self))
	for _, c := range expense {
		assert.Equal(t, CategoryExpense, c.Type)
		assert.False(t, c.IsCustom)
	}
}
