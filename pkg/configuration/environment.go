package configuration

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/crm-import/pkg/logging"
)

var DefaultEnvFiles = []string{".env", ".env.local"}

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Host     string `env:"MYSQL_HOST" validate:"required"`
	Port     string `env:"MYSQL_PORT" envDefault:"3306" validate:"required,numeric"`
	User     string `env:"MYSQL_USERNAME" validate:"required"`
	Password string `env:"MYSQL_PASSWORD"`
	Name     string `env:"MYSQL_DATABASE" validate:"required"`
}

// ConnectionString renders a go-sql-driver DSN. Timestamps are sent in local time,
// matching the naive wall-clock values the importers stamp on each row.
func (d *DatabaseOptions) ConnectionString() string {
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(d.Host, d.Port)
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.Loc = time.Local
	return cfg.FormatDSN()
}

type Configuration struct {
	Database      DatabaseOptions
	DataSourceDir string `env:"DATA_SOURCE_DIR" envDefault:"data_source" validate:"required"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=silent error warn info debug"`

	logger *logrus.Logger
}

// Load reads the given env files (missing ones are skipped), then the process
// environment, and validates the result. The returned configuration is meant
// to be passed down explicitly; there is no package-level instance.
func Load(envFiles []string) (*Configuration, error) {
	c := &Configuration{}
	if err := c.load(envFiles); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// SetLogLevel overrides the level after loading, e.g. from a CLI flag.
func (c *Configuration) SetLogLevel(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "silent", "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid log level %q (expected silent|error|warn|info|debug)", level)
	}
	c.LogLevel = level
	if c.logger != nil {
		c.logger.SetLevel(c.LogrusLogLevel())
	}
	return nil
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 && len(envFiles) > 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	c.logger = logging.ConsoleLogger(c.LogrusLogLevel())
	return nil
}
