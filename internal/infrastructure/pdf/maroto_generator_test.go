package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEuro(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00 €"},
		{"12.5", "12,50 €"},
		{"250", "250,00 €"},
		{"1234.5", "1 234,50 €"},
		{"1000000", "1 000 000,00 €"},
		{"-45.9", "-45,90 €"},
		{"-1234.56", "-1 234,56 €"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatEuro(decimal.RequireFromString(c.in)), "entrée %s", c.in)
	}
}

func TestNonEmpty(t *testing.T) {
	assert.Equal(t, "valeur", nonEmpty("valeur", "—"))
	assert.Equal(t, "—", nonEmpty("", "—"))
}
