package config

import (
	"os"

	"github.com/pseudomuto/sqlriver/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads the configuration from .sqlriver.yaml if it exists, falling back to
	// the defaults otherwise.
	func() (*Config, error) {
		if _, err := os.Stat(consts.ConfigFile); os.IsNotExist(err) {
			return Default(), nil
		}

		return LoadConfigFile(consts.ConfigFile)
	},
))
