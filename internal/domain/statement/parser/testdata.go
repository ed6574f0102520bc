package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// StatementGenerator produces synthetic statement text for tests and
// benchmarks.
type StatementGenerator struct {
	faker *gofakeit.Faker
}

// NewStatementGenerator creates a generator with a specific seed for
// reproducibility.
func NewStatementGenerator(seed int64) *StatementGenerator {
	return &StatementGenerator{faker: gofakeit.New(seed)}
}

// Statement renders count transaction lines in ISO date notation wrapped in
// typical header and footer boilerplate.
func (g *StatementGenerator) Statement(count int) string {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	var b strings.Builder
	b.WriteString("Account Statement\n")
	b.WriteString("Statement Period: 2024-03-01 to 2024-03-31\n\n")
	for i := 0; i < count; i++ {
		date := g.faker.DateRange(start, end).Format("2006-01-02")
		sign := "-"
		if g.faker.Bool() {
			sign = ""
		}
		fmt.Fprintf(&b, "%s %s %s%.2f\n", date, g.faker.Company(), sign, g.faker.Price(1, 2000))
	}
	b.WriteString("\nClosing Balance 12,345.67\n")
	return b.String()
}
