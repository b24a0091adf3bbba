package config

import "time"

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"60m"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"pos-backoffice"`
}
