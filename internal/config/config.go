package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	GoogleAds  GoogleAds  `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Dispatch   Dispatch   `mapstructure:",squash"`
	BulkUpload BulkUpload `mapstructure:",squash"`
	Activation Activation `mapstructure:",squash"`
	Heartbeat  Heartbeat  `mapstructure:",squash"`
	Events     Events     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Table    string `mapstructure:"database_table"`
	Migrate  bool   `mapstructure:"database_migrate"`
}

type GoogleAds struct {
	URL             string `mapstructure:"google_ads_url"`
	TokenURL        string `mapstructure:"google_ads_token_url"`
	DeveloperToken  string `mapstructure:"google_ads_developer_token"`
	ClientID        string `mapstructure:"google_ads_client_id"`
	ClientSecret    string `mapstructure:"google_ads_client_secret"`
	RefreshToken    string `mapstructure:"google_ads_refresh_token"`
	LoginCustomerID string `mapstructure:"google_ads_login_customer_id"`
	DryRun          bool   `mapstructure:"google_ads_dry_run"`

	// Preenchidos pelo TokenManager em tempo de execução
	AccessToken    string    `mapstructure:"-"`
	TokenExpiresAt time.Time `mapstructure:"-"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Dispatch configura o fan-out por conta e o laço de controle
type Dispatch struct {
	CronSchedule   string        `mapstructure:"dispatch_cron"`
	Enabled        bool          `mapstructure:"dispatch_enabled"`
	Accounts       []string      `mapstructure:"dispatch_accounts"`
	MaxAccounts    int           `mapstructure:"dispatch_max_accounts"`
	LoopBudget     time.Duration `mapstructure:"dispatch_loop_budget"`
	FinalizeBudget time.Duration `mapstructure:"dispatch_finalize_budget"`
	SleepInterval  time.Duration `mapstructure:"dispatch_sleep_interval"`
}

type BulkUpload struct {
	AccountID       string        `mapstructure:"bulk_upload_account_id"`
	CampaignsSource string        `mapstructure:"bulk_upload_campaigns_source"`
	AdGroupsSource  string        `mapstructure:"bulk_upload_ad_groups_source"`
	AdsSource       string        `mapstructure:"bulk_upload_ads_source"`
	SettleMode      string        `mapstructure:"bulk_upload_settle_mode"`
	SettleDuration  time.Duration `mapstructure:"bulk_upload_settle_duration"`
	PollInterval    time.Duration `mapstructure:"bulk_upload_poll_interval"`
}

type Activation struct {
	AccountID  string `mapstructure:"activation_account_id"`
	NamePrefix string `mapstructure:"activation_name_prefix"`
	AdType     string `mapstructure:"activation_ad_type"`
}

type Heartbeat struct {
	RedisAddr string        `mapstructure:"heartbeat_redis_addr"`
	Prefix    string        `mapstructure:"heartbeat_prefix"`
	TTL       time.Duration `mapstructure:"heartbeat_ttl"`
}

type Events struct {
	KafkaBroker string `mapstructure:"events_kafka_broker"`
	KafkaTopic  string `mapstructure:"events_kafka_topic"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaigns?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_TABLE", "work_rows")
	viper.SetDefault("DATABASE_MIGRATE", false)

	viper.SetDefault("GOOGLE_ADS_URL", "https://googleads.googleapis.com/v17")
	viper.SetDefault("GOOGLE_ADS_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_ADS_REFRESH_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_DRY_RUN", false) // Usa a plataforma em memória

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	// Defaults do dispatcher (equivalentes ao agendamento do Ads Scripts)
	viper.SetDefault("DISPATCH_CRON", "0 * * * *")      // Toda hora cheia
	viper.SetDefault("DISPATCH_ENABLED", false)         // Habilitar execução agendada
	viper.SetDefault("DISPATCH_ACCOUNTS", "")           // Vazio: descobre as contas pela tabela
	viper.SetDefault("DISPATCH_MAX_ACCOUNTS", 50)       // Limite de contas por execução
	viper.SetDefault("DISPATCH_LOOP_BUDGET", "30m")     // Orçamento do laço por conta
	viper.SetDefault("DISPATCH_FINALIZE_BUDGET", "30m") // Orçamento da etapa de finalização
	viper.SetDefault("DISPATCH_SLEEP_INTERVAL", "60s")  // Pausa entre varreduras

	viper.SetDefault("BULK_UPLOAD_ACCOUNT_ID", "")
	viper.SetDefault("BULK_UPLOAD_CAMPAIGNS_SOURCE", "bulk/campaigns.json")
	viper.SetDefault("BULK_UPLOAD_AD_GROUPS_SOURCE", "bulk/ad_groups.json")
	viper.SetDefault("BULK_UPLOAD_ADS_SOURCE", "bulk/ads.json")
	// "poll" consulta o job em vez de esperar às cegas
	viper.SetDefault("BULK_UPLOAD_SETTLE_MODE", "fixed")
	viper.SetDefault("BULK_UPLOAD_SETTLE_DURATION", "300s") // 5 minutos entre etapas
	viper.SetDefault("BULK_UPLOAD_POLL_INTERVAL", "10s")

	viper.SetDefault("ACTIVATION_ACCOUNT_ID", "")
	viper.SetDefault("ACTIVATION_NAME_PREFIX", "")
	viper.SetDefault("ACTIVATION_AD_TYPE", "VIDEO")

	viper.SetDefault("HEARTBEAT_REDIS_ADDR", "") // Vazio: heartbeats apenas no log
	viper.SetDefault("HEARTBEAT_PREFIX", "campaign-orchestrator:heartbeat:")
	viper.SetDefault("HEARTBEAT_TTL", "2h")

	viper.SetDefault("EVENTS_KAFKA_BROKER", "") // Vazio: eventos desabilitados
	viper.SetDefault("EVENTS_KAFKA_TOPIC", "work-row-transitions")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

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

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize deriva campos calculados e limpa listas vindas do ambiente
func (c *Config) normalize() {
	accounts := make([]string, 0, len(c.Dispatch.Accounts))
	for _, account := range c.Dispatch.Accounts {
		account = strings.ReplaceAll(strings.TrimSpace(account), "-", "")
		if account != "" {
			accounts = append(accounts, account)
		}
	}
	c.Dispatch.Accounts = accounts

	switch c.Database.Driver {
	case "sqlite3":
		c.Database.DSN = c.Database.URL
	default:
		c.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			c.Database.Driver,
			c.Database.User,
			c.Database.Password,
			c.Database.URL,
		)
	}
}

// Validate verifica combinações de configuração que impediriam o orquestrador de rodar
func (c *Config) Validate() error {
	if c.Dispatch.MaxAccounts <= 0 {
		return fmt.Errorf("config: DISPATCH_MAX_ACCOUNTS deve ser positivo, recebido %d", c.Dispatch.MaxAccounts)
	}
	if c.Dispatch.LoopBudget <= 0 || c.Dispatch.FinalizeBudget <= 0 {
		return fmt.Errorf("config: orçamentos de execução devem ser positivos")
	}
	if c.Dispatch.SleepInterval <= 0 {
		return fmt.Errorf("config: DISPATCH_SLEEP_INTERVAL deve ser positivo")
	}
	switch c.BulkUpload.SettleMode {
	case "fixed", "poll":
	default:
		return fmt.Errorf("config: BULK_UPLOAD_SETTLE_MODE inválido: %q", c.BulkUpload.SettleMode)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite3", "memory":
	default:
		return fmt.Errorf("config: DATABASE_DRIVER inválido: %q", c.Database.Driver)
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
