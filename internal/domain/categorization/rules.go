package categorization

import "github.com/okushnir/kopiyka/internal/domain/transaction"

// DefaultRules is the built-in rule set for Ukrainian statements and
// receipts. Merchant names rank above generic keywords so "АТБ кава"
// lands in groceries, not cafes.
func DefaultRules() []Rule {
	return []Rule{
		// Grocery chains
		{Pattern: "атб", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "сільпо", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "silpo", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "новус", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "novus", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "ашан", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "фора", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "варус", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "метро", Category: "Groceries", Icon: "🛒", Priority: 100},
		{Pattern: "продукти", Category: "Groceries", Icon: "🛒", Priority: 50},
		{Pattern: "супермаркет", Category: "Groceries", Icon: "🛒", Priority: 50},

		// Cafes and restaurants
		{Pattern: "кафе", Category: "Cafes", Icon: "☕", Priority: 60},
		{Pattern: "ресторан", Category: "Cafes", Icon: "☕", Priority: 60},
		{Pattern: "піца", Category: "Cafes", Icon: "☕", Priority: 60},
		{Pattern: "суші", Category: "Cafes", Icon: "☕", Priority: 60},
		{Pattern: "mcdonald", Category: "Cafes", Icon: "☕", Priority: 100},
		{Pattern: "макдональдз", Category: "Cafes", Icon: "☕", Priority: 100},
		{Pattern: "kfc", Category: "Cafes", Icon: "☕", Priority: 100},
		{Pattern: "glovo", Category: "Cafes", Icon: "☕", Priority: 90},
		{Pattern: "кава", Category: "Cafes", Icon: "☕", Priority: 40},

		// Transport
		{Pattern: "uber", Category: "Transport", Icon: "🚕", Priority: 100},
		{Pattern: "uklon", Category: "Transport", Icon: "🚕", Priority: 100},
		{Pattern: "bolt", Category: "Transport", Icon: "🚕", Priority: 100},
		{Pattern: "таксі", Category: "Transport", Icon: "🚕", Priority: 80},
		{Pattern: "метрополітен", Category: "Transport", Icon: "🚕", Priority: 110},
		{Pattern: "укрзалізниця", Category: "Transport", Icon: "🚕", Priority: 100},
		{Pattern: "проїзд", Category: "Transport", Icon: "🚕", Priority: 50},

		// Fuel
		{Pattern: "wog", Category: "Fuel", Icon: "⛽", Priority: 100},
		{Pattern: "окко", Category: "Fuel", Icon: "⛽", Priority: 100},
		{Pattern: "okko", Category: "Fuel", Icon: "⛽", Priority: 100},
		{Pattern: "азс", Category: "Fuel", Icon: "⛽", Priority: 80},
		{Pattern: "паливо", Category: "Fuel", Icon: "⛽", Priority: 60},

		// Pharmacy and health
		{Pattern: "аптека", Category: "Health", Icon: "💊", Priority: 90},
		{Pattern: "анц", Category: "Health", Icon: "💊", Priority: 90},
		{Pattern: "лікарня", Category: "Health", Icon: "💊", Priority: 80},
		{Pattern: "клініка", Category: "Health", Icon: "💊", Priority: 80},

		// Utilities and communications
		{Pattern: "київстар", Category: "Utilities", Icon: "📱", Priority: 100},
		{Pattern: "vodafone", Category: "Utilities", Icon: "📱", Priority: 100},
		{Pattern: "lifecell", Category: "Utilities", Icon: "📱", Priority: 100},
		{Pattern: "комунальні", Category: "Utilities", Icon: "📱", Priority: 90},
		{Pattern: "електроенергія", Category: "Utilities", Icon: "📱", Priority: 90},
		{Pattern: "газопостачання", Category: "Utilities", Icon: "📱", Priority: 90},
		{Pattern: "водоканал", Category: "Utilities", Icon: "📱", Priority: 90},

		// Subscriptions and entertainment
		{Pattern: "netflix", Category: "Entertainment", Icon: "🎬", Priority: 100},
		{Pattern: "spotify", Category: "Entertainment", Icon: "🎬", Priority: 100},
		{Pattern: "youtube", Category: "Entertainment", Icon: "🎬", Priority: 100},
		{Pattern: "steam", Category: "Entertainment", Icon: "🎬", Priority: 100},
		{Pattern: "кінотеатр", Category: "Entertainment", Icon: "🎬", Priority: 80},

		// Shopping
		{Pattern: "rozetka", Category: "Shopping", Icon: "🛍️", Priority: 100},
		{Pattern: "розетка", Category: "Shopping", Icon: "🛍️", Priority: 100},
		{Pattern: "епіцентр", Category: "Shopping", Icon: "🛍️", Priority: 100},
		{Pattern: "prom.ua", Category: "Shopping", Icon: "🛍️", Priority: 100},
		{Pattern: "aliexpress", Category: "Shopping", Icon: "🛍️", Priority: 100},

		// Income
		{Pattern: "зарплата", Category: "Salary", Icon: "💰", TxType: transaction.TypeIncome, Priority: 100},
		{Pattern: "заробітна плата", Category: "Salary", Icon: "💰", TxType: transaction.TypeIncome, Priority: 100},
		{Pattern: "аванс", Category: "Salary", Icon: "💰", TxType: transaction.TypeIncome, Priority: 80},
		{Pattern: "відсотки", Category: "Interest", Icon: "🏦", TxType: transaction.TypeIncome, Priority: 80},
		{Pattern: "кешбек", Category: "Cashback", Icon: "🏦", TxType: transaction.TypeIncome, Priority: 90},
		{Pattern: "cashback", Category: "Cashback", Icon: "🏦", TxType: transaction.TypeIncome, Priority: 90},

		// Transfers
		{Pattern: "переказ", Category: "Transfers", Icon: "🔁", Priority: 70},
		{Pattern: "p2p", Category: "Transfers", Icon: "🔁", Priority: 70},
	}
}
