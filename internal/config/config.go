package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/invoice-control-api/internal/domain"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Invoice       Invoice       `mapstructure:",squash"`
	ReportHistory ReportHistory `mapstructure:",squash"`
	SecretKey     string        `mapstructure:"secret_key"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"cors_allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	RawUsers []string      `mapstructure:"auth_users"`
	Users    []domain.User `mapstructure:"-"`
}

type Invoice struct {
	Stage          string `mapstructure:"invoice_stage"`
	SheetName      string `mapstructure:"spreadsheet_sheet_name"`
	UploadMaxBytes int64  `mapstructure:"upload_max_bytes"`
	ExportCSVBOM   bool   `mapstructure:"export_csv_bom"`
}

type ReportHistory struct {
	Enabled         bool   `mapstructure:"report_history_enabled"`
	RetentionMonths int    `mapstructure:"report_history_retention_months"`
	CleanupCron     string `mapstructure:"report_history_cleanup_cron"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/notas?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_USERS", "")

	viper.SetDefault("INVOICE_STAGE", "NF Enviadas")
	viper.SetDefault("SPREADSHEET_SHEET_NAME", "") // Vazio usa a primeira aba
	viper.SetDefault("UPLOAD_MAX_BYTES", 10<<20)   // 10 MiB
	viper.SetDefault("EXPORT_CSV_BOM", false)

	// Histórico de relatórios gerados (opcional, exige PostgreSQL)
	viper.SetDefault("REPORT_HISTORY_ENABLED", false)
	viper.SetDefault("REPORT_HISTORY_RETENTION_MONTHS", 12)
	viper.SetDefault("REPORT_HISTORY_CLEANUP_CRON", "0 3 1 * *") // Todo dia 1 às 3h da manhã

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Auth.Users, err = ParseUsers(config.Auth.RawUsers)
	if err != nil {
		return nil, err
	}

	if config.Invoice.Stage == "" {
		return nil, fmt.Errorf("INVOICE_STAGE não pode ser vazio")
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ParseUsers converte entradas no formato email:hash_bcrypt:role_id
func ParseUsers(entries []string) ([]domain.User, error) {
	users := make([]domain.User, 0, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("AUTH_USERS inválido: esperado email:hash:role, recebido %q", entry)
		}

		roleID, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("AUTH_USERS inválido: role %q não é numérico", parts[2])
		}

		users = append(users, domain.User{
			Email:        strings.ToLower(strings.TrimSpace(parts[0])),
			PasswordHash: parts[1],
			RoleID:       roleID,
		})
	}

	return users, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
