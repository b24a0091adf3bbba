package config

type Event struct {
	LowStockThreshold int `env:"EVENT_LOW_STOCK_THRESHOLD" envDefault:"5"`
}
