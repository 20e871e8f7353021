package invitacion

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmartinez10/event-invitations-backend/internal/auditlog"
	"github.com/mmartinez10/event-invitations-backend/internal/evento"
	"github.com/mmartinez10/event-invitations-backend/internal/notification"
	"github.com/mmartinez10/event-invitations-backend/internal/qr"
	"github.com/mmartinez10/event-invitations-backend/internal/usuario"
)

// ===========================
// 🧪 fakes

type mockRepository struct {
	invitaciones   map[string]*Invitacion // key usuarioID:eventoID
	porCodigo      map[string]*Invitacion
	confirmaciones []*Confirmacion
	nextID         uint

	// simulates losing the unique-code race to a concurrent confirm
	chocaConfirmacion bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		invitaciones: make(map[string]*Invitacion),
		porCodigo:    make(map[string]*Invitacion),
	}
}

func claveInv(usuarioID, eventoID uint) string {
	return fmt.Sprintf("%d:%d", usuarioID, eventoID)
}

func (m *mockRepository) CreateInvitacion(ctx context.Context, inv *Invitacion) error {
	if _, ok := m.invitaciones[claveInv(inv.UsuarioID, inv.EventoID)]; ok {
		return ErrInvitacionDuplicada
	}
	if _, ok := m.porCodigo[inv.Codigo]; ok {
		return ErrCodigoDuplicado
	}
	m.nextID++
	inv.ID = m.nextID
	m.invitaciones[claveInv(inv.UsuarioID, inv.EventoID)] = inv
	m.porCodigo[inv.Codigo] = inv
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uint) (*Invitacion, error) {
	for _, inv := range m.porCodigo {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, ErrNoEncontrada
}

func (m *mockRepository) GetByCodigo(ctx context.Context, codigo string) (*Invitacion, error) {
	if inv, ok := m.porCodigo[codigo]; ok {
		return inv, nil
	}
	return nil, ErrNoEncontrada
}

func (m *mockRepository) GetByUsuarioEvento(ctx context.Context, usuarioID, eventoID uint) (*Invitacion, error) {
	if inv, ok := m.invitaciones[claveInv(usuarioID, eventoID)]; ok {
		return inv, nil
	}
	return nil, ErrNoEncontrada
}

func (m *mockRepository) ListByUsuario(ctx context.Context, usuarioID uint) ([]Invitacion, error) {
	var out []Invitacion
	for _, inv := range m.porCodigo {
		if inv.UsuarioID == usuarioID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByEvento(ctx context.Context, eventoID uint) ([]Invitacion, error) {
	var out []Invitacion
	for _, inv := range m.porCodigo {
		if inv.EventoID == eventoID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (m *mockRepository) UpdateInvitacion(ctx context.Context, inv *Invitacion) error { return nil }

func (m *mockRepository) DeleteInvitacion(ctx context.Context, id uint) error {
	for key, inv := range m.invitaciones {
		if inv.ID == id {
			delete(m.invitaciones, key)
			delete(m.porCodigo, inv.Codigo)
			return nil
		}
	}
	return ErrNoEncontrada
}

func (m *mockRepository) CreateConfirmacion(ctx context.Context, conf *Confirmacion) error {
	if m.chocaConfirmacion {
		return ErrYaConfirmada
	}
	m.nextID++
	conf.ID = m.nextID
	m.confirmaciones = append(m.confirmaciones, conf)
	return nil
}

func (m *mockRepository) UpdateConfirmacion(ctx context.Context, conf *Confirmacion) error {
	return nil
}

func (m *mockRepository) GetConfirmacionPrincipal(ctx context.Context, invitacionID uint) (*Confirmacion, error) {
	for _, c := range m.confirmaciones {
		if c.InvitacionID == invitacionID && c.TipoParticipante == ParticipantePrincipal {
			return c, nil
		}
	}
	return nil, ErrConfirmacionNoEncontrada
}

func (m *mockRepository) ListConfirmaciones(ctx context.Context, invitacionID uint) ([]Confirmacion, error) {
	var out []Confirmacion
	for _, c := range m.confirmaciones {
		if c.InvitacionID == invitacionID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockRepository) GetEstadoPorNombre(ctx context.Context, nombre string) (*Estado, error) {
	switch nombre {
	case EstadoPendiente:
		return &Estado{ID: 1, Nombre: nombre}, nil
	case EstadoEnviada:
		return &Estado{ID: 2, Nombre: nombre}, nil
	case EstadoConfirmada:
		return &Estado{ID: 3, Nombre: nombre}, nil
	case EstadoCancelada:
		return &Estado{ID: 4, Nombre: nombre}, nil
	}
	return nil, errors.New("estado desconocido")
}

func (m *mockRepository) SeedEstados(ctx context.Context) error { return nil }

type mockUsuarioRepo struct {
	porCedula map[string]*usuario.Usuario
	porID     map[uint]*usuario.Usuario
	creados   []*usuario.Usuario
	nextID    uint
}

func newMockUsuarioRepo(usuarios ...*usuario.Usuario) *mockUsuarioRepo {
	m := &mockUsuarioRepo{
		porCedula: make(map[string]*usuario.Usuario),
		porID:     make(map[uint]*usuario.Usuario),
		nextID:    100,
	}
	for _, u := range usuarios {
		m.porCedula[u.Cedula] = u
		m.porID[u.ID] = u
	}
	return m
}

func (m *mockUsuarioRepo) Create(ctx context.Context, u *usuario.Usuario) error {
	m.nextID++
	u.ID = m.nextID
	m.porCedula[u.Cedula] = u
	m.porID[u.ID] = u
	m.creados = append(m.creados, u)
	return nil
}

func (m *mockUsuarioRepo) GetByID(ctx context.Context, id uint) (*usuario.Usuario, error) {
	if u, ok := m.porID[id]; ok {
		return u, nil
	}
	return nil, usuario.ErrNoEncontrado
}

func (m *mockUsuarioRepo) GetByCedula(ctx context.Context, cedula string) (*usuario.Usuario, error) {
	if u, ok := m.porCedula[cedula]; ok {
		return u, nil
	}
	return nil, usuario.ErrNoEncontrado
}

func (m *mockUsuarioRepo) Update(ctx context.Context, u *usuario.Usuario) error { return nil }

func (m *mockUsuarioRepo) List(ctx context.Context, limit, offset int, search string) ([]usuario.Usuario, int64, error) {
	return nil, 0, nil
}

func (m *mockUsuarioRepo) Delete(ctx context.Context, id uint) error { return nil }

type mockEventoStore struct {
	eventos map[uint]*evento.Evento
}

func (m *mockEventoStore) GetEventoByID(id uint) (*evento.Evento, error) {
	if e, ok := m.eventos[id]; ok {
		return e, nil
	}
	return nil, evento.ErrNoEncontrado
}

type mockQR struct {
	generados []string
	fallaEn   map[string]bool
}

func (m *mockQR) Generate(codigo string) (*qr.Resultado, error) {
	if m.fallaEn[codigo] {
		return nil, qr.ErrGeneracion
	}
	m.generados = append(m.generados, codigo)
	return &qr.Resultado{Inline: "cGFrZQ==", Path: "temp/" + codigo + ".png"}, nil
}

// mockNotif returns a fixed per-channel outcome and records every dispatch
type mockNotif struct {
	fallos     map[string]bool // canal → fail
	codigos    []notification.DatosInvitacion
	formurales []notification.DatosInvitacion
	acomp      []notification.DatosInvitacion
}

func (m *mockNotif) resultados(canales []string) []notification.ResultadoCanal {
	out := make([]notification.ResultadoCanal, 0, len(canales))
	for _, c := range canales {
		estado := notification.EstadoEnvioEnviado
		errMsg := ""
		if m.fallos[c] {
			estado = notification.EstadoEnvioFallido
			errMsg = "proveedor rechazo el mensaje"
		}
		out = append(out, notification.ResultadoCanal{Canal: c, Estado: estado, Error: errMsg, Intentos: 1})
	}
	return out
}

func (m *mockNotif) EnviarCodigo(ctx context.Context, destino notification.Destino, canales []string, datos notification.DatosInvitacion) []notification.ResultadoCanal {
	m.codigos = append(m.codigos, datos)
	return m.resultados(canales)
}

func (m *mockNotif) EnviarFormulario(ctx context.Context, destino notification.Destino, canales []string, datos notification.DatosInvitacion) []notification.ResultadoCanal {
	m.formurales = append(m.formurales, datos)
	return m.resultados(canales)
}

func (m *mockNotif) EnviarAcompanante(ctx context.Context, destino notification.Destino, canales []string, datos notification.DatosInvitacion) []notification.ResultadoCanal {
	m.acomp = append(m.acomp, datos)
	return m.resultados(canales)
}

func (m *mockNotif) RegistrarEnvio(ctx context.Context, evt notification.DeliveryEvent) error {
	return nil
}

func (m *mockNotif) ListarEnvios(ctx context.Context, canal string, limit, offset int) ([]notification.NotificationLog, error) {
	return nil, nil
}

func (m *mockNotif) ListarEnviosPorCodigo(ctx context.Context, codigo string) ([]notification.NotificationLog, error) {
	return nil, nil
}

type stubAudit struct{}

func (stubAudit) LogAction(ctx context.Context, adminID *uint, action string, details map[string]interface{}, ip string, status string) error {
	return nil
}
func (stubAudit) LogAuthAction(ctx context.Context, adminID *uint, action string, correo string, ip string, status string) error {
	return nil
}
func (stubAudit) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}
func (stubAudit) GetAuditLogByID(ctx context.Context, id uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

// ===========================
// 🧪 fixtures

func galaAnual() *evento.Evento {
	return &evento.Evento{
		ID:     1,
		Nombre: "Gala Anual",
		Fecha:  time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Lugar:  "Centro de Convenciones",
	}
}

func juanPerez() *usuario.Usuario {
	return &usuario.Usuario{
		ID:       7,
		Cedula:   "0912345678",
		Nombre:   "Juan Pérez",
		Correo:   "juan@example.com",
		Telefono: "0991234567",
	}
}

func newTestService(repo *mockRepository, usuarios *mockUsuarioRepo, qrGen *mockQR, notif *mockNotif) *Service {
	eventos := &mockEventoStore{eventos: map[uint]*evento.Evento{1: galaAnual()}}
	return NewService(repo, usuarios, eventos, qrGen, notif, stubAudit{}, "http://forms.example.com/confirmar")
}

// ===========================
// 🧪 invitation workflow

func TestCrearInvitacionReutilizaUsuarioExistente(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	qrGen := &mockQR{}
	notif := &mockNotif{}
	svc := newTestService(repo, usuarios, qrGen, notif)

	inv, canales, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		IDEvento:      1,
		IDMetodoEnvio: MetodoCorreo,
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "GA678JP", inv.Codigo)
	assert.Equal(t, uint(7), inv.UsuarioID)
	assert.Empty(t, usuarios.creados, "no debe crear un usuario que ya existe")
	assert.Equal(t, []string{"GA678JP"}, qrGen.generados)
	assert.Equal(t, "temp/GA678JP.png", inv.QrPath)
	require.Len(t, canales, 1)
	assert.Equal(t, notification.CanalCorreo, canales[0].Canal)
	assert.Equal(t, EnvioEnviado, inv.EstadoEnvioCorreo)
	assert.NotNil(t, inv.FechaEnvio)
}

func TestCrearInvitacionCreaUsuarioNuevo(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo()
	svc := newTestService(repo, usuarios, &mockQR{}, &mockNotif{})

	inv, _, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		Nombre:        "Juan Pérez",
		Correo:        "Juan@Example.com",
		IDEvento:      1,
		IDMetodoEnvio: MetodoCorreo,
	}, "")

	require.NoError(t, err)
	require.Len(t, usuarios.creados, 1)
	assert.Equal(t, "juan@example.com", usuarios.creados[0].Correo)
	assert.Equal(t, usuarios.creados[0].ID, inv.UsuarioID)
}

func TestCrearInvitacionUsuarioNuevoSinDatos(t *testing.T) {
	svc := newTestService(newMockRepository(), newMockUsuarioRepo(), &mockQR{}, &mockNotif{})

	_, _, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		IDEvento:      1,
		IDMetodoEnvio: MetodoCorreo,
	}, "")

	assert.ErrorIs(t, err, ErrValidacion)
}

func TestCrearInvitacionDuplicada(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	svc := newTestService(repo, usuarios, &mockQR{}, &mockNotif{})

	req := &CreateInvitacionRequest{Cedula: "0912345678", IDEvento: 1, IDMetodoEnvio: MetodoCorreo}

	primero, _, err := svc.CrearInvitacion(context.Background(), req, "")
	require.NoError(t, err)

	_, _, err = svc.CrearInvitacion(context.Background(), req, "")
	assert.ErrorIs(t, err, ErrInvitacionDuplicada)

	guardada, err := repo.GetByCodigo(context.Background(), primero.Codigo)
	require.NoError(t, err)
	assert.Equal(t, primero.ID, guardada.ID, "la invitacion original queda intacta")
}

func TestCrearInvitacionFalloParcialDeCanales(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	notif := &mockNotif{fallos: map[string]bool{notification.CanalCorreo: true}}
	svc := newTestService(repo, usuarios, &mockQR{}, notif)

	inv, canales, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		IDEvento:      1,
		IDMetodoEnvio: MetodoAmbos,
	}, "")

	require.NoError(t, err)
	require.Len(t, canales, 2)
	assert.Equal(t, EnvioFallido, inv.EstadoEnvioCorreo)
	assert.Equal(t, EnvioEnviado, inv.EstadoEnvioWhatsapp)
	assert.NotNil(t, inv.FechaEnvio, "un canal exitoso basta para marcar el envio")
}

func TestCrearInvitacionTodosLosCanalesFallan(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	notif := &mockNotif{fallos: map[string]bool{
		notification.CanalCorreo:   true,
		notification.CanalWhatsApp: true,
	}}
	svc := newTestService(repo, usuarios, &mockQR{}, notif)

	inv, _, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		IDEvento:      1,
		IDMetodoEnvio: MetodoAmbos,
	}, "")

	require.NoError(t, err, "la invitacion persiste aunque ningun canal llegue")
	assert.Equal(t, EnvioFallido, inv.EstadoEnvioCorreo)
	assert.Equal(t, EnvioFallido, inv.EstadoEnvioWhatsapp)
	assert.Nil(t, inv.FechaEnvio)
}

func TestCrearInvitacionQRFallaAborta(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	qrGen := &mockQR{fallaEn: map[string]bool{"GA678JP": true}}
	svc := newTestService(repo, usuarios, qrGen, &mockNotif{})

	_, _, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		IDEvento:      1,
		IDMetodoEnvio: MetodoCorreo,
	}, "")

	assert.ErrorIs(t, err, qr.ErrGeneracion)
	assert.Empty(t, repo.porCodigo, "ninguna invitacion sin su QR")
}

// ===========================
// 🧪 confirmation workflow

func confirmarFixture(t *testing.T, qrGen *mockQR, notif *mockNotif) (*Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	svc := newTestService(repo, usuarios, qrGen, notif)

	_, _, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		IDEvento:      1,
		IDMetodoEnvio: MetodoCorreo,
	}, "")
	require.NoError(t, err)
	return svc, repo
}

func TestConfirmarCreaPrincipalMasAcompanantes(t *testing.T) {
	qrGen := &mockQR{}
	svc, repo := confirmarFixture(t, qrGen, &mockNotif{})

	res, err := svc.Confirmar(context.Background(), "GA678JP", &ConfirmarRequest{
		Nombre: "Juan Pérez",
		Correo: "juan@example.com",
		Acompanantes: []AcompananteRequest{
			{Nombre: "Ana Pérez", Correo: "ana@example.com"},
			{Nombre: "Luis Pérez"},
		},
	})

	require.NoError(t, err)
	require.Len(t, repo.confirmaciones, 3, "1 principal + 2 acompanantes")

	assert.Equal(t, ParticipantePrincipal, res.Principal.TipoParticipante)
	assert.Equal(t, "GA678JP", res.Principal.Codigo)
	assert.Nil(t, res.Principal.ConfirmacionPadreID)

	require.Len(t, res.Acompanantes, 2)
	assert.Equal(t, "GA67801", res.Acompanantes[0].Codigo)
	assert.Equal(t, "GA67802", res.Acompanantes[1].Codigo)
	for _, a := range res.Acompanantes {
		require.NotNil(t, a.ConfirmacionPadreID)
		assert.Equal(t, res.Principal.ID, *a.ConfirmacionPadreID)
		assert.Equal(t, ParticipanteAcompanante, a.TipoParticipante)
	}

	// only the companion with an address got a notification
	assert.True(t, res.Acompanantes[0].NotificacionEnviada)
	assert.False(t, res.Acompanantes[1].NotificacionEnviada)
}

func TestConfirmarAcompananteQRFallaNoDetieneElResto(t *testing.T) {
	qrGen := &mockQR{fallaEn: map[string]bool{"GA67801": true}}
	svc, repo := confirmarFixture(t, qrGen, &mockNotif{})

	res, err := svc.Confirmar(context.Background(), "GA678JP", &ConfirmarRequest{
		Nombre: "Juan Pérez",
		Acompanantes: []AcompananteRequest{
			{Nombre: "Ana Pérez"},
			{Nombre: "Luis Pérez"},
		},
	})

	require.NoError(t, err)
	require.Len(t, res.Acompanantes, 1, "el acompanante sin QR se omite")
	assert.Equal(t, "GA67802", res.Acompanantes[0].Codigo)
	assert.Len(t, repo.confirmaciones, 2)
}

func TestConfirmarCodigoDesconocido(t *testing.T) {
	svc, _ := confirmarFixture(t, &mockQR{}, &mockNotif{})

	_, err := svc.Confirmar(context.Background(), "ZZ999XX", &ConfirmarRequest{Nombre: "Nadie"})
	assert.ErrorIs(t, err, ErrNoEncontrada)
}

func TestConfirmarDosVeces(t *testing.T) {
	svc, _ := confirmarFixture(t, &mockQR{}, &mockNotif{})

	_, err := svc.Confirmar(context.Background(), "GA678JP", &ConfirmarRequest{Nombre: "Juan Pérez"})
	require.NoError(t, err)

	_, err = svc.Confirmar(context.Background(), "GA678JP", &ConfirmarRequest{Nombre: "Juan Pérez"})
	assert.ErrorIs(t, err, ErrYaConfirmada)
}

func TestConfirmarCarreraPierdeContraElIndice(t *testing.T) {
	svc, repo := confirmarFixture(t, &mockQR{}, &mockNotif{})

	// the pre-check sees no principal yet, the insert loses the race
	repo.chocaConfirmacion = true

	_, err := svc.Confirmar(context.Background(), "GA678JP", &ConfirmarRequest{Nombre: "Juan Pérez"})
	assert.ErrorIs(t, err, ErrYaConfirmada)
	assert.Empty(t, repo.confirmaciones)
}

// ===========================
// 🧪 listings

func TestListByEventoDevuelveLasInvitaciones(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	svc := newTestService(repo, usuarios, &mockQR{}, &mockNotif{})

	_, _, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		IDEvento:      1,
		IDMetodoEnvio: MetodoCorreo,
	}, "")
	require.NoError(t, err)

	invitaciones, err := svc.ListByEvento(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, invitaciones, 1)
	assert.Equal(t, "GA678JP", invitaciones[0].Codigo)

	_, err = svc.ListByEvento(context.Background(), 99)
	assert.ErrorIs(t, err, evento.ErrNoEncontrado)
}

func TestListConfirmacionesDeUnaInvitacion(t *testing.T) {
	svc, _ := confirmarFixture(t, &mockQR{}, &mockNotif{})

	res, err := svc.Confirmar(context.Background(), "GA678JP", &ConfirmarRequest{
		Nombre:       "Juan Pérez",
		Acompanantes: []AcompananteRequest{{Nombre: "Ana Pérez"}},
	})
	require.NoError(t, err)

	confs, err := svc.ListConfirmaciones(context.Background(), res.Principal.InvitacionID)
	require.NoError(t, err)
	require.Len(t, confs, 2)
	assert.Equal(t, ParticipantePrincipal, confs[0].TipoParticipante)
	assert.Equal(t, ParticipanteAcompanante, confs[1].TipoParticipante)

	_, err = svc.ListConfirmaciones(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNoEncontrada)
}

// ===========================
// 🧪 two-stage protocol

func TestEnviarFormularioMandaEnlace(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	notif := &mockNotif{}
	svc := newTestService(repo, usuarios, &mockQR{}, notif)

	resultados, err := svc.EnviarFormulario(context.Background(), &EnvioMasivoRequest{
		IDEvento:      1,
		IDMetodoEnvio: MetodoWhatsApp,
		Usuarios:      []uint{7},
	})

	require.NoError(t, err)
	require.Len(t, resultados, 1)
	assert.Equal(t, EnvioEnviado, resultados[0].Estado)

	require.Len(t, notif.formurales, 1)
	assert.Contains(t, notif.formurales[0].FormURL, "evento=1")
	assert.Contains(t, notif.formurales[0].FormURL, "cedula=0912345678")
	assert.Empty(t, notif.formurales[0].CodigoUnico, "en la etapa 1 no existe codigo")
	assert.Empty(t, repo.porCodigo, "la etapa 1 no crea invitaciones")
}

func TestEnviarCodigosCreaInvitacionCuandoNoExiste(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	notif := &mockNotif{}
	svc := newTestService(repo, usuarios, &mockQR{}, notif)

	resultados, err := svc.EnviarCodigos(context.Background(), &EnvioMasivoRequest{
		IDEvento:      1,
		IDMetodoEnvio: MetodoCorreo,
		Usuarios:      []uint{7},
	})

	require.NoError(t, err)
	require.Len(t, resultados, 1)
	assert.Equal(t, "GA678JP", resultados[0].Codigo)
	assert.Equal(t, EnvioEnviado, resultados[0].Estado)
	assert.Len(t, repo.porCodigo, 1)
}

func TestEnviarCodigosReutilizaInvitacionExistente(t *testing.T) {
	repo := newMockRepository()
	usuarios := newMockUsuarioRepo(juanPerez())
	notif := &mockNotif{}
	qrGen := &mockQR{}
	svc := newTestService(repo, usuarios, qrGen, notif)

	_, _, err := svc.CrearInvitacion(context.Background(), &CreateInvitacionRequest{
		Cedula:        "0912345678",
		IDEvento:      1,
		IDMetodoEnvio: MetodoWhatsApp,
	}, "")
	require.NoError(t, err)

	resultados, err := svc.EnviarCodigos(context.Background(), &EnvioMasivoRequest{
		IDEvento:      1,
		IDMetodoEnvio: MetodoCorreo, // distinto canal que la etapa previa
		Usuarios:      []uint{7},
	})

	require.NoError(t, err)
	require.Len(t, resultados, 1)
	assert.Equal(t, "GA678JP", resultados[0].Codigo)
	assert.Len(t, repo.porCodigo, 1, "no se crea una segunda invitacion")
	assert.Equal(t, []string{"GA678JP", "GA678JP"}, qrGen.generados, "el QR se regenera idempotente")
	assert.Len(t, notif.codigos, 2)
}
