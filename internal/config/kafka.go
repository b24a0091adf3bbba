package config

import "time"

type Kafka struct {
	Addresses      []string      `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	ClientID       string        `env:"KAFKA_CLIENT_ID" envDefault:"pos-backoffice"`
	Group          string        `env:"KAFKA_GROUP" envDefault:"pos-backoffice-events"`
	ProducerLinger time.Duration `env:"KAFKA_PRODUCER_LINGER" envDefault:"5ms"`
}
