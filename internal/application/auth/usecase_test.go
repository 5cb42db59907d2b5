package auth_test

import (
	"errors"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/metrologia-api/internal/application/auth"
	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/pkg/jwt"
	"github.com/jhoicas/metrologia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	created []*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if r.byEmail == nil {
		r.byEmail = map[string]*entity.User{}
	}
	r.byEmail[u.Email] = u
	r.created = append(r.created, u)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) List(roles []string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byEmail {
		if len(roles) > 0 && !slices.Contains(roles, u.Role) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	for email, existing := range r.byEmail {
		if existing.ID == u.ID {
			if email != u.Email {
				delete(r.byEmail, email)
			}
			r.byEmail[u.Email] = u
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *fakeUserRepo) Delete(id string) error {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type fakeSessionRepo struct {
	sessions []*entity.Session
	fail     bool
}

func (r *fakeSessionRepo) Create(s *entity.Session) error {
	if r.fail {
		return errors.New("sesiones no disponibles")
	}
	r.sessions = append(r.sessions, s)
	return nil
}

func (r *fakeSessionRepo) ListByUser(userID string) ([]*entity.Session, error) {
	var out []*entity.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastSeen.After(out[j].LastSeen) })
	return out, nil
}

func (r *fakeSessionRepo) Revoke(userID, sessionID string) error {
	for i, s := range r.sessions {
		if s.UserID == userID && s.ID == sessionID {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

const (
	authSecret   = "auth-test-secret"
	authPassword = "calibracion2026"
)

func seededUser(t *testing.T, email, role string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(authPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           "00000000-0000-0000-0000-00000000000a",
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Ana Técnica",
		Role:         role,
		Active:       active,
	}
}

func newAuthUC(users *fakeUserRepo, sessions *fakeSessionRepo, emailDomain string) *auth.AuthUseCase {
	cfg := auth.JWTConfig{Secret: authSecret, ExpMinutes: 60, Issuer: "metrologia-api-test"}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return auth.NewAuthUseCase(users, sessions, cfg, emailDomain, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	user := seededUser(t, "ana@lab.gob.br", entity.RoleTecnico, true)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{user.Email: user}}
	sessions := &fakeSessionRepo{}
	uc := newAuthUC(users, sessions, "")

	resp, err := uc.Login(dto.LoginRequest{Email: " Ana@Lab.gob.br ", Password: authPassword}, "Firefox", "10.0.0.1")
	require.NoError(t, err, "email con mayúsculas y espacios debe normalizarse")

	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, entity.RoleTecnico, resp.Role)
	assert.Equal(t, 3600, resp.ExpiresIn)

	// el token emitido debe ser verificable con el mismo secret
	userID, role, err := jwt.Parse(authSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleTecnico, role)

	// y la sesión queda registrada con device e IP
	require.Len(t, sessions.sessions, 1)
	assert.Equal(t, "Firefox", sessions.sessions[0].Device)
	assert.Equal(t, "10.0.0.1", sessions.sessions[0].IP)
	assert.Equal(t, sessions.sessions[0].ID, resp.SessionID)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	user := seededUser(t, "ana@lab.gob.br", entity.RoleTecnico, true)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{user.Email: user}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: "equivocado"}, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{}, &fakeSessionRepo{}, "")
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@lab.gob.br", Password: authPassword}, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	user := seededUser(t, "ana@lab.gob.br", entity.RoleTecnico, false)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{user.Email: user}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: authPassword}, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_DominioRestringido(t *testing.T) {
	user := seededUser(t, "ana@gmail.com", entity.RoleTecnico, true)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{user.Email: user}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "lab.gob.br")

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: authPassword}, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"con dominio configurado solo entran emails de ese dominio")
}

// El registro de sesión es best-effort: su falla no bloquea el login.
func TestLogin_FallaDeSesionNoBloquea(t *testing.T) {
	user := seededUser(t, "ana@lab.gob.br", entity.RoleTecnico, true)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{user.Email: user}}
	uc := newAuthUC(users, &fakeSessionRepo{fail: true}, "")

	resp, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: authPassword}, "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.SessionID, "sin sesión persistida no hay session_id en la respuesta")
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateUser
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUser_HasheaPassword(t *testing.T) {
	users := &fakeUserRepo{}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	resp, err := uc.CreateUser("Nuevo@Lab.gob.br", "secreto123", "Nuevo Usuario", entity.RoleGestor)
	require.NoError(t, err)

	assert.Equal(t, "nuevo@lab.gob.br", resp.Email)
	assert.Equal(t, entity.RoleGestor, resp.Role)
	assert.True(t, resp.Active)

	require.Len(t, users.created, 1)
	stored := users.created[0]
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "el password jamás se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
}

func TestCreateUser_RolPorDefectoTecnico(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{}, &fakeSessionRepo{}, "")
	resp, err := uc.CreateUser("x@lab.gob.br", "secreto123", "X", "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTecnico, resp.Role)
}

func TestCreateUser_RolInvalido(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{}, &fakeSessionRepo{}, "")
	_, err := uc.CreateUser("x@lab.gob.br", "secreto123", "X", "superadmin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	user := seededUser(t, "ana@lab.gob.br", entity.RoleTecnico, true)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{user.Email: user}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	_, err := uc.CreateUser(user.Email, "secreto123", "Otra Ana", entity.RoleTecnico)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gestión de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func seededUserWithID(t *testing.T, id, email, role string) *entity.User {
	t.Helper()
	u := seededUser(t, email, role, true)
	u.ID = id
	return u
}

func TestListUsers_GestorNoVeAdmins(t *testing.T) {
	admin := seededUserWithID(t, "id-admin", "root@lab.gob.br", entity.RoleAdmin)
	gestor := seededUserWithID(t, "id-gestor", "gestor@lab.gob.br", entity.RoleGestor)
	tecnico := seededUserWithID(t, "id-tec", "ana@lab.gob.br", entity.RoleTecnico)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{
		admin.Email: admin, gestor.Email: gestor, tecnico.Email: tecnico,
	}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	vista, err := uc.ListUsers(entity.RoleGestor)
	require.NoError(t, err)
	require.Len(t, vista, 2, "el gestor solo ve técnicos y gestores")
	for _, u := range vista {
		assert.NotEqual(t, entity.RoleAdmin, u.Role)
	}

	todos, err := uc.ListUsers(entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, todos, 3)
}

func TestGetUser_PropioOAdmin(t *testing.T) {
	tecnico := seededUserWithID(t, "id-tec", "ana@lab.gob.br", entity.RoleTecnico)
	otro := seededUserWithID(t, "id-otro", "beto@lab.gob.br", entity.RoleTecnico)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{tecnico.Email: tecnico, otro.Email: otro}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	// el propio usuario puede verse
	resp, err := uc.GetUser(tecnico.ID, entity.RoleTecnico, tecnico.ID)
	require.NoError(t, err)
	assert.Equal(t, tecnico.Email, resp.Email)

	// un técnico no puede ver a otro
	_, err = uc.GetUser(tecnico.ID, entity.RoleTecnico, otro.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// un admin ve a cualquiera
	_, err = uc.GetUser("id-admin", entity.RoleAdmin, otro.ID)
	assert.NoError(t, err)

	// inexistente
	_, err = uc.GetUser("id-admin", entity.RoleAdmin, "id-fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateUser_SinCampos(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{}, &fakeSessionRepo{}, "")
	_, err := uc.UpdateUser("id-admin", entity.RoleAdmin, "id-x", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateUser_CambioPropioDePasswordExigeActual(t *testing.T) {
	tecnico := seededUserWithID(t, "id-tec", "ana@lab.gob.br", entity.RoleTecnico)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{tecnico.Email: tecnico}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	nuevo := "otroSecreto456"

	// sin password actual → rechazado
	_, err := uc.UpdateUser(tecnico.ID, entity.RoleTecnico, tecnico.ID,
		dto.UpdateUserRequest{Password: &nuevo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// con password actual incorrecto → rechazado
	malo := "equivocado"
	_, err = uc.UpdateUser(tecnico.ID, entity.RoleTecnico, tecnico.ID,
		dto.UpdateUserRequest{Password: &nuevo, CurrentPassword: &malo})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// con el password actual correcto → el hash cambia
	actual := authPassword
	_, err = uc.UpdateUser(tecnico.ID, entity.RoleTecnico, tecnico.ID,
		dto.UpdateUserRequest{Password: &nuevo, CurrentPassword: &actual})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(tecnico.PasswordHash), []byte(nuevo)))
}

func TestUpdateUser_AdminCambiaPasswordAjenoSinActual(t *testing.T) {
	tecnico := seededUserWithID(t, "id-tec", "ana@lab.gob.br", entity.RoleTecnico)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{tecnico.Email: tecnico}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	nuevo := "resetPorAdmin789"
	_, err := uc.UpdateUser("id-admin", entity.RoleAdmin, tecnico.ID,
		dto.UpdateUserRequest{Password: &nuevo})
	require.NoError(t, err, "el admin resetea passwords sin conocer el actual")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(tecnico.PasswordHash), []byte(nuevo)))
}

func TestUpdateUser_GestorNoPromueveAAdmin(t *testing.T) {
	tecnico := seededUserWithID(t, "id-tec", "ana@lab.gob.br", entity.RoleTecnico)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{tecnico.Email: tecnico}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	rol := entity.RoleAdmin
	_, err := uc.UpdateUser("id-gestor", entity.RoleGestor, tecnico.ID,
		dto.UpdateUserRequest{Role: &rol})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// un admin sí puede promover
	_, err = uc.UpdateUser("id-admin", entity.RoleAdmin, tecnico.ID,
		dto.UpdateUserRequest{Role: &rol})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, tecnico.Role)
}

func TestUpdateUser_EmailDeOtroUsuario(t *testing.T) {
	ana := seededUserWithID(t, "id-ana", "ana@lab.gob.br", entity.RoleTecnico)
	beto := seededUserWithID(t, "id-beto", "beto@lab.gob.br", entity.RoleTecnico)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{ana.Email: ana, beto.Email: beto}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	ocupado := "Ana@Lab.gob.br"
	_, err := uc.UpdateUser("id-admin", entity.RoleAdmin, beto.ID,
		dto.UpdateUserRequest{Email: &ocupado})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// conservar el propio email (con otra capitalización) no es duplicado
	_, err = uc.UpdateUser("id-admin", entity.RoleAdmin, ana.ID,
		dto.UpdateUserRequest{Email: &ocupado})
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	ana := seededUserWithID(t, "id-ana", "ana@lab.gob.br", entity.RoleTecnico)
	users := &fakeUserRepo{byEmail: map[string]*entity.User{ana.Email: ana}}
	uc := newAuthUC(users, &fakeSessionRepo{}, "")

	require.NoError(t, uc.DeleteUser(ana.ID))
	assert.ErrorIs(t, uc.DeleteUser(ana.ID), domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones
// ──────────────────────────────────────────────────────────────────────────────

func TestListSessions_OrdenYAutorizacion(t *testing.T) {
	ahora := time.Now()
	sessions := &fakeSessionRepo{sessions: []*entity.Session{
		{ID: "s1", UserID: "id-ana", Device: "Firefox", LastSeen: ahora.Add(-time.Hour)},
		{ID: "s2", UserID: "id-ana", Device: "Chrome", LastSeen: ahora},
		{ID: "s3", UserID: "id-beto", Device: "curl", LastSeen: ahora},
	}}
	uc := newAuthUC(&fakeUserRepo{}, sessions, "")

	propias, err := uc.ListSessions("id-ana", entity.RoleTecnico, "id-ana")
	require.NoError(t, err)
	require.Len(t, propias, 2)
	assert.Equal(t, "s2", propias[0].ID, "última actividad primero")

	_, err = uc.ListSessions("id-ana", entity.RoleTecnico, "id-beto")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	ajenas, err := uc.ListSessions("id-admin", entity.RoleAdmin, "id-beto")
	require.NoError(t, err)
	assert.Len(t, ajenas, 1)
}

func TestRevokeSession(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: []*entity.Session{
		{ID: "s1", UserID: "id-ana", Device: "Firefox"},
	}}
	uc := newAuthUC(&fakeUserRepo{}, sessions, "")

	// un técnico no revoca sesiones ajenas
	err := uc.RevokeSession("id-beto", entity.RoleTecnico, "id-ana", "s1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// el propio usuario sí
	require.NoError(t, uc.RevokeSession("id-ana", entity.RoleTecnico, "id-ana", "s1"))
	assert.Empty(t, sessions.sessions)

	// revocar una sesión inexistente no es error
	assert.NoError(t, uc.RevokeSession("id-ana", entity.RoleTecnico, "id-ana", "s1"))
}
