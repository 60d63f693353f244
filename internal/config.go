package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/othala/internal/validate"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Document DocumentConfig    `yaml:"document"`
	Auth     AuthConfig        `yaml:"auth"`
	Policy   PolicyConfig      `yaml:"policy"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Document.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Policy.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DocumentConfig holds the path to the portfolio data file.
type DocumentConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the document configuration.
func (c *DocumentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// PolicyConfig tunes export validation strictness.
type PolicyConfig struct {
	RequireDescription      bool     `yaml:"require_description"`
	RestrictSocialPlatforms bool     `yaml:"restrict_social_platforms"`
	SocialPlatforms         []string `yaml:"social_platforms"`
}

// Validate validates the policy configuration.
func (c *PolicyConfig) Validate() error {
	if c.RestrictSocialPlatforms && len(c.SocialPlatforms) == 0 {
		return fmt.Errorf("policy: restrict_social_platforms is set but social_platforms is empty")
	}
	return nil
}

// ValidationPolicy converts the config into the validator's policy,
// falling back to the default platform list when none is configured.
func (c *PolicyConfig) ValidationPolicy() validate.Policy {
	pol := validate.DefaultPolicy()
	pol.RequireDescription = c.RequireDescription
	pol.RestrictSocialPlatforms = c.RestrictSocialPlatforms
	if len(c.SocialPlatforms) > 0 {
		pol.SocialPlatforms = c.SocialPlatforms
	}
	return pol
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Document: DocumentConfig{
			Path: "./portfolio_data.json",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
