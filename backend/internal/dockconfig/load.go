package dockconfig

import "github.com/spf13/viper"

// Load reads a config file (YAML, JSON, or TOML, by extension) at path
// into a Config seeded with Default()'s values, the same
// viper.Unmarshal-over-defaults pattern as the teacher pack's config
// loaders.
func Load(path string) (Config, error) {
	cfg := Default()
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
