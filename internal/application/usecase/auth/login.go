package auth

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/internal/config"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/auth"
	"github.com/howlerhq/howler-api/pkg/logger"
)

// The API has a single owner whose credentials come from config; there
// is no user table.
type LoginUseCase struct {
	cfg    config.Config
	jwtSvc *auth.JWTService
	logger logger.Logger
}

func NewLoginUseCase(cfg config.Config, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		cfg:    cfg,
		jwtSvc: jwtSvc,
		logger: log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

// OwnerID derives a stable identifier for the configured admin, so
// tokens stay valid across restarts.
func OwnerID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("howler:admin:"+email))
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	_, span := tracer.Start(ctx, "Execute")
	defer span.End()

	if input.Email != uc.cfg.Auth.AdminEmail ||
		!auth.CheckPasswordHash(input.Password, uc.cfg.Auth.AdminPasswordHash) {
		err := apperror.NewUnauthorized("incorrect email or password", nil)
		span.RecordError(err)
		return nil, err
	}

	ownerID := OwnerID(input.Email)
	token, err := uc.jwtSvc.GenerateToken(ownerID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("owner_id", ownerID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	return &LoginOutput{AccessToken: token}, nil
}
