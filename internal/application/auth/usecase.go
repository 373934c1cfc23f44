package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
	"github.com/jhoicas/punchlist-api/pkg/jwt"
	"github.com/jhoicas/punchlist-api/pkg/logger"
)

// MinPasswordLength longitud mínima de la contraseña.
const MinPasswordLength = 6

const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SignupTxRunner ejecuta la creación de empresa + perfil en una sola transacción.
type SignupTxRunner interface {
	RunSignup(ctx context.Context, fn func(companies repository.CompanyRepository, profiles repository.ProfileRepository) error) error
}

// TokenRevoker guarda los jti revocados hasta su expiración.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y sesión.
type AuthUseCase struct {
	profiles  repository.ProfileRepository
	companies repository.CompanyRepository
	tx        SignupTxRunner
	revoker   TokenRevoker
	jwtCfg    JWTConfig
	log       *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	profiles repository.ProfileRepository,
	companies repository.CompanyRepository,
	tx SignupTxRunner,
	revoker TokenRevoker,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		profiles: profiles, companies: companies, tx: tx, revoker: revoker,
		jwtCfg: jwtCfg, log: log.Component("auth"),
	}
}

// SignUp registra una cuenta y abre sesión.
// GC con código de invitación se une a esa empresa; GC sin código crea una empresa nueva;
// Sub no pertenece a ninguna empresa.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SessionResponse, error) {
	email, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full_name es obligatorio", domain.ErrInvalidInput)
	}
	role := entity.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}

	existing, err := uc.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar perfil: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	profile := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.RunSignup(ctx, func(companies repository.CompanyRepository, profiles repository.ProfileRepository) error {
		if role == entity.RoleGC {
			company, err := uc.resolveCompany(ctx, companies, in, fullName, now)
			if err != nil {
				return err
			}
			profile.CompanyID = company.ID
			profile.CompanyName = company.Name
		}
		return profiles.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", profile.ID).Str("role", string(role)).Str("company_id", profile.CompanyID).Msg("cuenta registrada")
	return uc.issue(profile)
}

func (uc *AuthUseCase) resolveCompany(ctx context.Context, companies repository.CompanyRepository, in dto.SignUpRequest, fullName string, now time.Time) (*entity.Company, error) {
	if code := strings.ToUpper(strings.TrimSpace(in.InviteCode)); code != "" {
		company, err := companies.GetByInviteCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("buscar empresa: %w", err)
		}
		if company == nil {
			return nil, domain.ErrInvalidInviteCode
		}
		return company, nil
	}
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		name = fullName
	}
	code, err := NewInviteCode()
	if err != nil {
		return nil, err
	}
	company := &entity.Company{ID: uuid.New().String(), Name: name, InviteCode: code, CreatedAt: now}
	if err := companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("crear empresa: %w", err)
	}
	return company, nil
}

// SignIn verifica email/password y emite un token de sesión.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.SessionResponse, error) {
	email, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar perfil: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(profile)
}

// SignOut revoca el token de la sesión hasta su expiración.
func (uc *AuthUseCase) SignOut(ctx context.Context, s jwt.Session) error {
	if s.TokenID == "" {
		return domain.ErrUnauthorized
	}
	if err := uc.revoker.Revoke(ctx, s.TokenID, s.ExpiresAt); err != nil {
		return fmt.Errorf("revocar sesión: %w", err)
	}
	return nil
}

// Authenticate valida el token y rechaza los revocados.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (jwt.Session, error) {
	s, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return jwt.Session{}, domain.ErrUnauthorized
	}
	revoked, err := uc.revoker.IsRevoked(ctx, s.TokenID)
	if err != nil {
		return jwt.Session{}, fmt.Errorf("consultar revocación: %w", err)
	}
	if revoked {
		return jwt.Session{}, domain.ErrUnauthorized
	}
	return s, nil
}

// Session devuelve el perfil de la sesión actual.
func (uc *AuthUseCase) Session(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := uc.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToProfileResponse(profile), nil
}

func (uc *AuthUseCase) issue(p *entity.Profile) (*dto.SessionResponse, error) {
	token, s, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Session{
		UserID: p.ID, CompanyID: p.CompanyID, Role: string(p.Role), Email: p.Email,
	})
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Token: token, ExpiresAt: s.ExpiresAt, Profile: *ToProfileResponse(p)}, nil
}

// NewInviteCode genera un código de 8 caracteres alfanuméricos en mayúsculas (sin 0/O/1/I).
func NewInviteCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar código de invitación: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}

// ToProfileResponse mapea un perfil a su DTO.
func ToProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		Role:        string(p.Role),
		CompanyID:   p.CompanyID,
		CompanyName: p.CompanyName,
		CreatedAt:   p.CreatedAt,
	}
}
