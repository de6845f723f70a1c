package secrets

import (
	"github.com/smallbiznis/shopmeter/internal/config"
	"go.uber.org/fx"
)

func NewFromConfig(cfg config.Config) (*Cipher, error) {
	return NewCipher([]byte(cfg.EncryptionKey))
}

var Module = fx.Module("secrets",
	fx.Provide(NewFromConfig),
)
