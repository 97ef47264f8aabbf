package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Game        GameConfig        `mapstructure:"game"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	StaticDir      string `mapstructure:"static_dir"`
	// OpenDisplayControls leaves toggle-display and set-voice callable
	// without the admin credential.
	OpenDisplayControls bool `mapstructure:"open_display_controls"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type GameConfig struct {
	StateFile string `mapstructure:"state_file"`
}

type PersistenceConfig struct {
	Backend  string         `mapstructure:"backend"` // "file" or "postgres"
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":3000")
	viper.SetDefault("server.static_dir", "./public")
	viper.SetDefault("server.open_display_controls", true)
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "bingo2024")
	viper.SetDefault("game.state_file", "game-state.json")
	viper.SetDefault("persistence.backend", "file")

	// ADMIN_PASSWORD etc. override the file.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
