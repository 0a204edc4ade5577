package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/esevim/stocktrack/internal/constants"
	"github.com/esevim/stocktrack/internal/enhance"
)

// EnhancerConfig controls the optional note cleanup call. Enable defaults to
// true; disabling it removes the API key requirement at startup.
type EnhancerConfig struct {
	Enable          bool    `yaml:"enable"            json:"enable"`
	Model           string  `yaml:"model"             json:"model"`
	MaxOutputTokens int     `yaml:"max_output_tokens" json:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"       json:"temperature"`

	enabledSet bool `yaml:"-" json:"-"`
}

func (cfg *EnhancerConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain EnhancerConfig
	var raw plain
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*cfg = EnhancerConfig(raw)
	if value.Kind == yaml.MappingNode {
		for i := 0; i < len(value.Content); i += 2 {
			if strings.EqualFold(value.Content[i].Value, "enable") {
				cfg.enabledSet = true
				break
			}
		}
	}
	return nil
}

type Config struct {
	DataFile      string         `yaml:"datafile"       json:"data_file"`
	Editors       []string       `yaml:"editors"        json:"editors"`
	DefaultEditor string         `yaml:"default_editor" json:"default_editor"`
	Enhancer      EnhancerConfig `yaml:"enhancer"       json:"enhancer"`
}

var defaultEditors = []string{"Emir Sevim", "Enis Sevim"}

func newConfig() *Config {
	return &Config{
		DataFile: constants.DataFile,
		Editors:  append([]string(nil), defaultEditors...),
		Enhancer: EnhancerConfig{
			Enable:          true,
			Model:           enhance.DefaultModel,
			MaxOutputTokens: enhance.DefaultMaxOutputTokens,
			Temperature:     enhance.DefaultTemperature,
		},
	}
}

func (cfg *Config) ensureDefaults() {
	if strings.TrimSpace(cfg.DataFile) == "" {
		cfg.DataFile = constants.DataFile
	}
	if len(cfg.Editors) == 0 {
		cfg.Editors = append([]string(nil), defaultEditors...)
	}
	if !cfg.Enhancer.enabledSet && !cfg.Enhancer.Enable {
		cfg.Enhancer.Enable = true
	}
	if cfg.Enhancer.Model == "" {
		cfg.Enhancer.Model = enhance.DefaultModel
	}
	if cfg.Enhancer.MaxOutputTokens <= 0 {
		cfg.Enhancer.MaxOutputTokens = enhance.DefaultMaxOutputTokens
	}
	if cfg.Enhancer.Temperature <= 0 {
		cfg.Enhancer.Temperature = enhance.DefaultTemperature
	}
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) == 0 {
		cfg = newConfig()
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.ensureDefaults()

	if cfg.DefaultEditor != "" {
		if err := cfg.ValidateEditor(cfg.DefaultEditor); err != nil {
			return nil, err
		}
	}

	cfg.syncViper()

	return cfg, nil
}

// ValidateEditor checks a name against the configured editor list. Grid
// edits can still persist arbitrary names; the form paths cannot.
func (cfg *Config) ValidateEditor(name string) error {
	for _, editor := range cfg.Editors {
		if editor == name {
			return nil
		}
	}

	return fmt.Errorf(
		"invalid editor name: %q. Please choose from %s",
		name,
		cfg.editorList(),
	)
}

func (cfg *Config) editorList() string {
	quoted := make([]string, len(cfg.Editors))
	for i, name := range cfg.Editors {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 0 {
		return ""
	}
	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// ResolveEditor picks the editor name for a non-interactive write: an
// explicit name is validated against the roster, an empty one falls back to
// the default editor, then to the first configured name.
func (cfg *Config) ResolveEditor(name string) (string, error) {
	if name != "" {
		if err := cfg.ValidateEditor(name); err != nil {
			return "", err
		}
		return name, nil
	}

	if cfg.DefaultEditor != "" {
		return cfg.DefaultEditor, nil
	}

	if len(cfg.Editors) > 0 {
		return cfg.Editors[0], nil
	}

	return "", fmt.Errorf("no editors configured")
}

func (cfg *Config) AddEditor(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("editor name cannot be empty")
	}

	for _, editor := range cfg.Editors {
		if editor == trimmed {
			return fmt.Errorf("editor %q already exists", trimmed)
		}
	}

	cfg.Editors = append(cfg.Editors, trimmed)
	return cfg.Save()
}

func (cfg *Config) ChangeDefaultEditor(name string) error {
	if err := cfg.ValidateEditor(name); err != nil {
		return err
	}

	cfg.DefaultEditor = name
	return cfg.Save()
}

func (cfg *Config) syncViper() {
	viper.Set("datafile", cfg.DataFile)
	viper.Set("default_editor", cfg.DefaultEditor)
	viper.Set("enhancer_model", cfg.Enhancer.Model)
	if cfg.Editors == nil {
		viper.Set("editors", []string{})
	} else {
		viper.Set("editors", append([]string(nil), cfg.Editors...))
	}
}

func (cfg *Config) GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) Save() error {
	if cfg.DefaultEditor != "" {
		if err := cfg.ValidateEditor(cfg.DefaultEditor); err != nil {
			return err
		}
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
