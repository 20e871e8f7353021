package auth

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmartinez10/event-invitations-backend/internal/auditlog"
)

// ===========================
// 🧪 fakes

type mockAuthService struct {
	admin *AdminUser
}

func (m *mockAuthService) Login(correo, password string) (*TokenPair, *AdminUser, error) {
	if m.admin != nil && correo == m.admin.Correo && password == "secreto" {
		return &TokenPair{AccessToken: "acc", RefreshToken: "ref"}, m.admin, nil
	}
	return nil, nil, ErrCredenciales
}

func (m *mockAuthService) Refresh(refreshToken string) (string, error) { return "", ErrCredenciales }
func (m *mockAuthService) GetByID(id uint) (*AdminUser, error)        { return m.admin, nil }
func (m *mockAuthService) SeedAdmin(correo, password string) error    { return nil }

type registroAuditoria struct {
	adminID *uint
	action  string
	correo  string
	status  string
}

type recordingAudit struct {
	registros []registroAuditoria
}

func (r *recordingAudit) LogAction(ctx context.Context, adminID *uint, action string, details map[string]interface{}, ip string, status string) error {
	return nil
}
func (r *recordingAudit) LogAuthAction(ctx context.Context, adminID *uint, action string, correo string, ip string, status string) error {
	r.registros = append(r.registros, registroAuditoria{adminID: adminID, action: action, correo: correo, status: status})
	return nil
}
func (r *recordingAudit) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}
func (r *recordingAudit) GetAuditLogByID(ctx context.Context, id uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

func loginRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ===========================
// 🧪 tests

func TestLogin_ExitosoQuedaAuditado(t *testing.T) {
	admin := &AdminUser{ID: 3, Nombre: "Administrador", Correo: "admin@eventos.ec", Rol: RolAdmin}
	audit := &recordingAudit{}
	h := NewHandler(&mockAuthService{admin: admin}, audit)

	rec := loginRequest(t, h, `{"correo":"admin@eventos.ec","password":"secreto"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, audit.registros, 1)
	reg := audit.registros[0]
	assert.Equal(t, "LOGIN_EXITOSO", reg.action)
	assert.Equal(t, "success", reg.status)
	assert.Equal(t, "admin@eventos.ec", reg.correo)
	require.NotNil(t, reg.adminID)
	assert.Equal(t, uint(3), *reg.adminID)
}

func TestLogin_FallidoQuedaAuditadoSinAdmin(t *testing.T) {
	admin := &AdminUser{ID: 3, Correo: "admin@eventos.ec", Rol: RolAdmin}
	audit := &recordingAudit{}
	h := NewHandler(&mockAuthService{admin: admin}, audit)

	rec := loginRequest(t, h, `{"correo":"admin@eventos.ec","password":"incorrecta"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Len(t, audit.registros, 1)
	reg := audit.registros[0]
	assert.Equal(t, "LOGIN_FALLIDO", reg.action)
	assert.Equal(t, "failure", reg.status)
	assert.Equal(t, "admin@eventos.ec", reg.correo)
	assert.Nil(t, reg.adminID)
}
