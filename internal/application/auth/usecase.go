package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
	"github.com/jhoicas/metrologia-api/pkg/jwt"
	"github.com/jhoicas/metrologia-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y alta de usuarios.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	emailDomain string // si no está vacío, restringe el login a ese dominio
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtCfg JWTConfig,
	emailDomain string,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtCfg:      jwtCfg,
		emailDomain: emailDomain,
		log:         log,
	}
}

// Login verifica email/password, genera JWT y registra la sesión.
// El registro de sesión es best-effort: si falla se loguea y el login continúa.
func (uc *AuthUseCase) Login(in dto.LoginRequest, device, ip string) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	if uc.emailDomain != "" && !strings.HasSuffix(email, "@"+uc.emailDomain) {
		return nil, fmt.Errorf("%w: use un email @%s", domain.ErrInvalidInput, uc.emailDomain)
	}

	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	resp := &dto.LoginResponse{
		Token:     token,
		Role:      user.Role,
		Name:      user.Name,
		UserID:    user.ID,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Device:    device,
		IP:        ip,
		LastSeen:  now,
		CreatedAt: now,
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("guardar sesión de login")
	} else {
		resp.SessionID = session.ID
	}
	return resp, nil
}

// CreateUser crea un usuario (solo admin, controlado por el middleware RBAC):
// hashea el password con bcrypt y persiste. ErrDuplicate si el email ya existe.
func (uc *AuthUseCase) CreateUser(email, password, name, role string) (*dto.UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("%w: nombre, email y password son obligatorios", domain.ErrInvalidInput)
	}
	switch role {
	case entity.RoleAdmin, entity.RoleGestor, entity.RoleTecnico:
	case "":
		role = entity.RoleTecnico
	default:
		return nil, fmt.Errorf("%w: role inválido", domain.ErrInvalidInput)
	}

	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers lista usuarios ordenados por nombre. Un gestor solo ve técnicos
// y gestores; los admins quedan fuera de su vista.
func (uc *AuthUseCase) ListUsers(requesterRole string) ([]dto.UserResponse, error) {
	var roles []string
	if requesterRole == entity.RoleGestor {
		roles = []string{entity.RoleTecnico, entity.RoleGestor}
	}
	users, err := uc.userRepo.List(roles)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// GetUser devuelve un usuario. Solo el propio usuario o un admin pueden verlo.
func (uc *AuthUseCase) GetUser(requesterID, requesterRole, id string) (*dto.UserResponse, error) {
	if requesterID != id && requesterRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateUser edición parcial de un usuario. Reglas:
//   - un gestor no puede promover a admin;
//   - cambiar el propio password sin ser admin exige el password actual;
//   - un cambio de email verifica que no pertenezca a otro usuario.
func (uc *AuthUseCase) UpdateUser(requesterID, requesterRole, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Name == nil && in.Email == nil && in.Password == nil && in.Role == nil && in.Active == nil {
		return nil, fmt.Errorf("%w: informe al menos un campo para actualizar", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email no puede quedar vacío", domain.ErrInvalidInput)
		}
		existing, err := uc.userRepo.FindByEmail(email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		user.Email = email
	}
	if in.Password != nil {
		if requesterID == id && requesterRole != entity.RoleAdmin {
			if in.CurrentPassword == nil || *in.CurrentPassword == "" {
				return nil, fmt.Errorf("%w: current_password es obligatorio", domain.ErrInvalidInput)
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*in.CurrentPassword)); err != nil {
				return nil, fmt.Errorf("%w: password actual incorrecto", domain.ErrForbidden)
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		switch *in.Role {
		case entity.RoleAdmin, entity.RoleGestor, entity.RoleTecnico:
		default:
			return nil, fmt.Errorf("%w: role inválido", domain.ErrInvalidInput)
		}
		if requesterRole == entity.RoleGestor && *in.Role == entity.RoleAdmin {
			return nil, fmt.Errorf("%w: gestor no puede promover a admin", domain.ErrForbidden)
		}
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DeleteUser elimina un usuario (solo admin, controlado por el middleware RBAC).
func (uc *AuthUseCase) DeleteUser(id string) error {
	return uc.userRepo.Delete(id)
}

// ListSessions sesiones de login de un usuario, última actividad primero.
// Solo el propio usuario o un admin pueden consultarlas.
func (uc *AuthUseCase) ListSessions(requesterID, requesterRole, userID string) ([]dto.SessionDTO, error) {
	if requesterID != userID && requesterRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	sessions, err := uc.sessionRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.SessionDTO{
			ID:       s.ID,
			Device:   s.Device,
			IP:       s.IP,
			LastSeen: s.LastSeen,
		})
	}
	return out, nil
}

// RevokeSession elimina una sesión del usuario. Solo el propio usuario o un
// admin pueden revocar; revocar una sesión inexistente no es error.
func (uc *AuthUseCase) RevokeSession(requesterID, requesterRole, userID, sessionID string) error {
	if requesterID != userID && requesterRole != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.sessionRepo.Revoke(userID, sessionID)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
