package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type StoreConfig struct {
	// Path to the bolt database file. Relative paths are resolved
	// against System.Workdir.
	Path string `yaml:"path"`
}

type IDConfig struct {
	Node int64 `yaml:"node"`
}

type SmtpConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type AppConfig struct {
	System SysConfig   `yaml:"system"`
	Web    WebConfig   `yaml:"web"`
	Logger LogConfig   `yaml:"logger"`
	Store  StoreConfig `yaml:"store"`
	ID     IDConfig    `yaml:"id"`
	Smtp   SmtpConfig  `yaml:"smtp"`
}

// StorePath returns the absolute bolt database path.
func (c *AppConfig) StorePath() string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(c.System.Workdir, c.Store.Path)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Location: "Europe/Madrid",
		Workdir:  "/var/bocmarket",
	},
	Web: WebConfig{
		Host: "127.0.0.1",
		Port: 1898,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/bocmarket/bocmarket.log",
	},
	Store: StoreConfig{
		Path: "bocmarket.db",
	},
	ID: IDConfig{
		Node: 1,
	},
	Smtp: SmtpConfig{
		Port: 587,
	},
}

// LoadConfig reads the yaml configuration file and applies environment
// overrides. A missing file is not an error; defaults are used.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("BOCMARKET_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("BOCMARKET_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvValue("BOCMARKET_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("BOCMARKET_WEB_PORT", &cfg.Web.Port)
	setEnvValue("BOCMARKET_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvValue("BOCMARKET_STORE_PATH", &cfg.Store.Path)
	setEnvInt64Value("BOCMARKET_ID_NODE", &cfg.ID.Node)
	setEnvValue("BOCMARKET_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("BOCMARKET_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("BOCMARKET_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("BOCMARKET_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvValue("BOCMARKET_SMTP_FROM", &cfg.Smtp.From)

	return cfg
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToInt(v)
	}
}

func setEnvInt64Value(name string, val *int64) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToInt64(v)
	}
}
