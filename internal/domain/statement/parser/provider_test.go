package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProvider(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			"card purchase with trailing reference and date",
			"PURCHASE AMAZON.COM*AB12CD3 04/15",
			"AMAZON.COM",
		},
		{
			"ref marker stripped",
			"PAYMENT NETFLIX.COM REF:12345",
			"NETFLIX.COM",
		},
		{
			"store number stripped",
			"POS STARBUCKS STORE #0521",
			"STARBUCKS STORE",
		},
		{
			"legal suffix stripped",
			"ACME CORP",
			"ACME",
		},
		{
			"long description truncated to three words",
			"UBER TRIP HELP.UBER.COM CA NOTE EXTRA",
			"UBER TRIP HELP.UBER.COM",
		},
		{
			"leading verb only stripped when more follows",
			"DEPOSIT",
			"DEPOSIT",
		},
		{
			"plain name untouched",
			"Grocery Store",
			"Grocery Store",
		},
		{
			"empty input",
			"",
			"Unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProvider(tt.description))
		})
	}
}
