package state

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/esevim/stocktrack/internal/config"
	"github.com/esevim/stocktrack/internal/constants"
	"github.com/esevim/stocktrack/internal/enhance"
	"github.com/esevim/stocktrack/internal/store"
)

// State wires the config, the record store, and the optional enhancer
// together and is handed to every command constructor.
type State struct {
	Config   *config.Config
	Store    *store.Store
	Enhancer enhance.Enhancer
	Home     string
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	s := store.NewStore(cfg.DataFile)

	var enhancer enhance.Enhancer
	if cfg.Enhancer.Enable {
		// A missing key halts the process before any UI is shown.
		svc, err := enhance.NewService(
			context.Background(),
			os.Getenv("GEMINI_API_KEY"),
			enhance.Options{
				Model:           cfg.Enhancer.Model,
				MaxOutputTokens: cfg.Enhancer.MaxOutputTokens,
				Temperature:     cfg.Enhancer.Temperature,
			},
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to configure note enhancement (set enhancer.enable to false to skip): %w",
				err,
			)
		}
		enhancer = svc
	}

	return &State{
		Config:   cfg,
		Store:    s,
		Enhancer: enhancer,
		Home:     home,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}
