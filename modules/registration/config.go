package registration

import "time"

// Storage drivers accepted by Config.Driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverS3       = "s3"
)

type Config struct {
	Driver           string        `env:"STORAGE_DRIVER" envDefault:"memory" validate:"oneof=memory file redis postgres mongo s3"`
	SessionCapacity  int           `env:"REGFORM_SESSION_CAPACITY" envDefault:"10000" validate:"min=1"`
	SessionTTL       time.Duration `env:"REGFORM_SESSION_TTL" envDefault:"30m" validate:"gte=0"`
	CookieName       string        `env:"REGFORM_COOKIE_NAME" envDefault:"regform_session" validate:"required"`
	CookieSecure     bool          `env:"REGFORM_COOKIE_SECURE" envDefault:"false"`
	BcryptCost       int           `env:"REGFORM_BCRYPT_COST" envDefault:"10" validate:"min=4,max=31"`
	BasePath         string        `env:"REGFORM_BASE_PATH" envDefault:"/register" validate:"required,startswith=/"`
	FileDir          string        `env:"REGFORM_FILE_DIR" envDefault:"./data"`
	KeyPrefix        string        `env:"REGFORM_KEY_PREFIX" envDefault:"regform"`
	MongoCollection  string        `env:"REGFORM_MONGO_COLLECTION" envDefault:"registrations"`
	SendConfirmation bool          `env:"REGFORM_SEND_CONFIRMATION" envDefault:"false"`
}

// DefaultConfig matches the env defaults.
func DefaultConfig() Config {
	return Config{
		Driver:          DriverMemory,
		SessionCapacity: 10000,
		SessionTTL:      30 * time.Minute,
		CookieName:      "regform_session",
		BcryptCost:      10,
		BasePath:        "/register",
		FileDir:         "./data",
		KeyPrefix:       "regform",
		MongoCollection: "registrations",
	}
}
