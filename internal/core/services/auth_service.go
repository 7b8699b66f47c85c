package services

import (
	"strings"

	"tradelink-backend/internal/config"
	"tradelink-backend/internal/core/domain"
	"tradelink-backend/internal/pkg/jwt"

	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

// AuthService verifies admin one-time codes and issues session tokens.
// There is a single shared administrative role: authorization is the
// possession of a valid token, not a user lookup.
type AuthService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{cfg: cfg, logger: logger}
}

// SetupResult carries a freshly generated shared secret and its
// provisioning URI for authenticator apps.
type SetupResult struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}

// Login verifies a TOTP code against the configured shared secret and
// returns a signed session token. A missing secret is a configuration
// failure: verification always fails, logged distinctly from a wrong
// code, but the caller sees the same unauthorized outcome either way.
func (s *AuthService) Login(code string) (string, error) {
	if s.cfg.TOTP.Secret == "" {
		s.logger.Error("admin login attempted but no TOTP secret is configured")
		return "", domain.ErrTOTPNotConfigured
	}

	code = strings.TrimSpace(code)
	if !totp.Validate(code, s.cfg.TOTP.Secret) {
		s.logger.Warn("admin login failed: invalid one-time code")
		return "", domain.ErrInvalidCode
	}

	token, err := jwt.GenerateSessionToken(s.cfg.Session.Secret, s.cfg.Session.ExpiryDays)
	if err != nil {
		s.logger.Error("failed to sign session token", zap.Error(err))
		return "", err
	}

	s.logger.Info("admin login succeeded")
	return token, nil
}

// GenerateSetup creates a new shared secret plus provisioning URI. Only
// available while no secret is configured in the running environment;
// once configured, setup stays disabled until a relaunch with a changed
// environment.
func (s *AuthService) GenerateSetup() (*SetupResult, error) {
	if s.cfg.TOTP.Secret != "" {
		return nil, domain.ErrSetupAlreadyComplete
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.cfg.TOTP.Issuer,
		AccountName: "admin",
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("generated new admin TOTP secret for setup")
	return &SetupResult{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
	}, nil
}
