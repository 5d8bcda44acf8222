package config

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Store     StoreConfig
	Invoice   InvoiceConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

// AdminConfig holds the single back-office password. PasswordHash is always a
// bcrypt hash after Load.
type AdminConfig struct {
	PasswordHash string
}

// StoreConfig is the letterhead printed on every invoice.
type StoreConfig struct {
	Name         string
	DisplayName  string
	Jurisdiction string
	Address      string
	GSTIN        string
	PAN          string
	Mobile       string
	Declaration  []string
	Caption      string
}

type InvoiceConfig struct {
	GSTRate       decimal.Decimal
	VerifyBaseURL string
	HistoryLimit  int
	MaxItems      int
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			SessionExpiry: time.Duration(viper.GetInt("SESSION_EXPIRY_HOURS")) * time.Hour,
		},
		Admin: AdminConfig{
			PasswordHash: adminPasswordHash(),
		},
		Store: StoreConfig{
			Name:         viper.GetString("STORE_NAME"),
			DisplayName:  viper.GetString("STORE_DISPLAY_NAME"),
			Jurisdiction: viper.GetString("STORE_JURISDICTION"),
			Address:      viper.GetString("STORE_ADDRESS"),
			GSTIN:        viper.GetString("STORE_GSTIN"),
			PAN:          viper.GetString("STORE_PAN"),
			Mobile:       viper.GetString("STORE_MOBILE"),
			Declaration:  viper.GetStringSlice("STORE_DECLARATION"),
			Caption:      viper.GetString("STORE_CAPTION"),
		},
		Invoice: InvoiceConfig{
			GSTRate:       gstRate(),
			VerifyBaseURL: viper.GetString("VERIFY_BASE_URL"),
			HistoryLimit:  viper.GetInt("HISTORY_LIMIT"),
			MaxItems:      viper.GetInt("MAX_ITEMS"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "jewel-billing")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "jewel_billing")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 12)
	viper.SetDefault("STORE_NAME", "MARUTI JEWELLERS")
	viper.SetDefault("STORE_DISPLAY_NAME", "Maruti Jewellers")
	viper.SetDefault("STORE_JURISDICTION", "SUBJECT TO THANE JURISDICTION")
	viper.SetDefault("STORE_ADDRESS", "02, Ratnadeep CHS, Navghar Road, Bhayander East, Thane - 401 105")
	viper.SetDefault("STORE_GSTIN", "27AAAPJ6532C1Z5")
	viper.SetDefault("STORE_PAN", "AAAPJ6532C")
	viper.SetDefault("STORE_MOBILE", "9029136249")
	viper.SetDefault("STORE_DECLARATION", []string{
		"The purity of the ornament have been verified and accepted by the customer at the time of sale.",
		"We declare that this invoice show the actual price of the goods described and that all particulars are true and correct.",
	})
	viper.SetDefault("STORE_CAPTION", "This is a computer generated invoice")
	viper.SetDefault("GST_RATE", "0.03")
	viper.SetDefault("VERIFY_BASE_URL", "http://localhost:3000/verify/")
	viper.SetDefault("HISTORY_LIMIT", 10)
	viper.SetDefault("MAX_ITEMS", 12)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
}

// gstRate parses GST_RATE, falling back to 3% when unset or invalid.
func gstRate() decimal.Decimal {
	rate, err := decimal.NewFromString(viper.GetString("GST_RATE"))
	if err != nil || !rate.IsPositive() {
		log.Printf("Warning: invalid GST_RATE %q, using 0.03", viper.GetString("GST_RATE"))
		return decimal.RequireFromString("0.03")
	}
	return rate
}

// adminPasswordHash prefers ADMIN_PASSWORD_HASH and otherwise hashes
// ADMIN_PASSWORD. An empty result disables login.
func adminPasswordHash() string {
	if hash := viper.GetString("ADMIN_PASSWORD_HASH"); hash != "" {
		return hash
	}
	plain := viper.GetString("ADMIN_PASSWORD")
	if plain == "" {
		log.Printf("Warning: neither ADMIN_PASSWORD_HASH nor ADMIN_PASSWORD is set, login is disabled")
		return ""
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash ADMIN_PASSWORD: %v", err)
		return ""
	}
	return string(hash)
}

// TaxLine is the registration line under the store address.
func (s StoreConfig) TaxLine() string {
	return "GSTIN: " + s.GSTIN + "  |  PAN: " + s.PAN
}

// ContactLine is the phone line at the bottom of the letterhead.
func (s StoreConfig) ContactLine() string {
	return "Mob: " + s.Mobile
}

// SignatoryLine is printed above the signature in the footer. Empty falls
// back to the store name.
func (s StoreConfig) SignatoryLine() string {
	if s.DisplayName == "" {
		return ""
	}
	return "for " + s.DisplayName
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
