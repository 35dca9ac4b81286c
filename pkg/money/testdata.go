package money

import "github.com/brianvoe/gofakeit/v6"

// TestDataGenerator produces random amounts for tests and benchmarks.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator with a fixed seed so test
// failures reproduce.
func NewTestDataGenerator(seed int64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(seed)}
}

// RandomAmount generates a Money value within a minor-unit range.
func (g *TestDataGenerator) RandomAmount(currency string, minCents, maxCents int64) *Money {
	if minCents > maxCents {
		minCents, maxCents = maxCents, minCents
	}
	cents := g.faker.Int64() % (maxCents - minCents + 1)
	if cents < 0 {
		cents = -cents
	}
	return New(minCents+cents, currency)
}

// Purchase generates a typical receipt-sized amount, 1.00 to 2000.00.
func (g *TestDataGenerator) Purchase(currency string) *Money {
	return g.RandomAmount(currency, 100, 200_000)
}

// Salary generates a monthly-salary-sized amount.
func (g *TestDataGenerator) Salary(currency string) *Money {
	return g.RandomAmount(currency, 1_500_000, 12_000_000)
}
