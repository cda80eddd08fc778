package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatCurrency(1234.56))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$1,250,000.00", FormatCurrency(1250000))
}

func TestFormatWholeCurrency(t *testing.T) {
	assert.Equal(t, "$1,235", FormatWholeCurrency(1234.56))
	assert.Equal(t, "$98", FormatWholeCurrency(97.5))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1,234", FormatCount(1234))
	assert.Equal(t, "7", FormatCount(7.0))
}
