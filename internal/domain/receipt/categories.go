package receipt

import "strings"

// itemCategories maps item keywords to purchase categories. Receipts name
// goods in Ukrainian; the buckets are deliberately coarse.
var itemCategories = []struct {
	category string
	keywords []string
}{
	{"Groceries", []string{
		"хліб", "батон", "молоко", "сир", "масло", "яйц", "йогурт",
		"ковбаса", "сосиск", "м'ясо", "курят", "філе", "риба",
		"картопл", "цибул", "моркв", "помідор", "огірок", "яблук",
		"банан", "олія", "цукор", "борошно", "макарон", "крупа",
		"гречка", "рис", "чай", "кава", "сік", "вода",
	}},
	{"Alcohol", []string{"пиво", "вино", "горілка", "коньяк", "віскі", "лікер", "сидр"}},
	{"Snacks", []string{"шоколад", "цукерк", "печиво", "чіпси", "сухарики", "морозиво", "батончик"}},
	{"Household", []string{"порошок", "мило", "шампунь", "серветк", "папір туалет", "засіб", "губк", "пакет"}},
	{"Pharmacy", []string{"табл", "капсул", "сироп", "спрей", "вітамін", "бинт", "пластир"}},
	{"Tobacco", []string{"сигарет", "тютюн", "стіки"}},
	{"Pet care", []string{"корм", "наповнювач"}},
}

// CategorizeItem assigns a coarse category to a receipt item name.
// Unknown goods land in "Other".
func CategorizeItem(name string) string {
	lower := strings.ToLower(name)
	for _, bucket := range itemCategories {
		for _, kw := range bucket.keywords {
			if strings.Contains(lower, kw) {
				return bucket.category
			}
		}
	}
	return "Other"
}
