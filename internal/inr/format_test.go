package inr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billforge/internal/inr"
)

func TestFormat_IndianGrouping(t *testing.T) {
	assert.Equal(t, "₹1,23,456.00", inr.Format(123456))
	assert.Equal(t, "₹12,34,567.80", inr.Format(1234567.8))
	assert.Equal(t, "₹0.00", inr.Format(0))
	assert.Equal(t, "₹999.99", inr.Format(999.99))
}

func TestFormatPlain_NoSymbol(t *testing.T) {
	assert.Equal(t, "1,23,456.00", inr.FormatPlain(123456))
}

func TestFormat_Deterministic(t *testing.T) {
	assert.Equal(t, inr.Format(1234567.8), inr.Format(1234567.8))
}
