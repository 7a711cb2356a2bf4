package config

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// StudyConfig contains the pomodoro pacing defaults. Per-session values
// supplied by clients are clamped to the same ranges.
type StudyConfig struct {
	DefaultWorkMinutes int `mapstructure:"default_work_minutes" validate:"required,gte=1,lte=180"`
	DefaultRestMinutes int `mapstructure:"default_rest_minutes" validate:"required,gte=1,lte=120"`
}

// Pomodoro bounds, in minutes.
const (
	MinWorkMinutes = 1
	MaxWorkMinutes = 180
	MinRestMinutes = 1
	MaxRestMinutes = 120
)

// ClampWorkMinutes forces a requested work interval into the valid range;
// a non-positive request gets the configured default.
func (c StudyConfig) ClampWorkMinutes(minutes int) int {
	if minutes <= 0 {
		return c.DefaultWorkMinutes
	}
	if minutes < MinWorkMinutes {
		return MinWorkMinutes
	}
	if minutes > MaxWorkMinutes {
		return MaxWorkMinutes
	}
	return minutes
}

// ClampRestMinutes forces a requested rest interval into the valid range;
// a non-positive request gets the configured default.
func (c StudyConfig) ClampRestMinutes(minutes int) int {
	if minutes <= 0 {
		return c.DefaultRestMinutes
	}
	if minutes < MinRestMinutes {
		return MinRestMinutes
	}
	if minutes > MaxRestMinutes {
		return MaxRestMinutes
	}
	return minutes
}
