package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const EnvPrefix = "MINES"

var DefaultParams = mines.Params{Rows: 20, Cols: 30, Density: 0.15}

// Settings configure the terminal front end. Values come from defaults, an
// optional config file and MINES_* environment variables, in increasing
// order of precedence.
type Settings struct {
	mines.Params `mapstructure:",squash"`

	// Path of the local sqlite stats database.
	Store string `mapstructure:"store"`
	// Rotated log file. Logs go to stderr only when empty.
	LogFile string `mapstructure:"log_file"`
	// Name stats are recorded under.
	Player string `mapstructure:"player"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("rows", DefaultParams.Rows)
	v.SetDefault("cols", DefaultParams.Cols)
	v.SetDefault("density", DefaultParams.Density)
	v.SetDefault("store", "mines.db")
	v.SetDefault("log_file", "")
	v.SetDefault("player", "anonymous")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads settings from path, which may be empty. The resulting
// params are validated.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := s.Params.Validate(); err != nil {
		return nil, err
	}
	if s.Player == "" {
		return nil, errors.New("player name must not be empty")
	}
	return &s, nil
}

func (s Settings) Fields() logrus.Fields {
	return logrus.Fields{
		"rows":     s.Rows,
		"cols":     s.Cols,
		"density":  s.Density,
		"store":    s.Store,
		"log_file": s.LogFile,
		"player":   s.Player,
	}
}
