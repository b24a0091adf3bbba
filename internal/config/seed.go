package config

type Seed struct {
	AdminEmail      string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@local.dev"`
	AdminPassword   string `env:"SEED_ADMIN_PASSWORD" envDefault:"admin1234"`
	CashierEmail    string `env:"SEED_CASHIER_EMAIL" envDefault:"cashier@local.dev"`
	CashierPassword string `env:"SEED_CASHIER_PASSWORD" envDefault:"cashier1234"`
	StockQuantity   int    `env:"SEED_STOCK_QUANTITY" envDefault:"50"`
}
