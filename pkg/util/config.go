package util

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig loads kotarute.yaml from the data directory or the working
// directory. KOTARUTE_* environment variables override file values.
func ReadConfig() error {
	viper.SetConfigName("kotarute")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("kotarute")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
