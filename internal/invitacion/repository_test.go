package invitacion

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewRepository(gdb), mock
}

func TestCreateInvitacionDuplicadaPorPar(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "invitaciones"`)).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "idx_invitacion_usuario_evento",
		})
	mock.ExpectRollback()

	err := repo.CreateInvitacion(context.Background(), &Invitacion{
		UsuarioID:   7,
		EventoID:    1,
		Codigo:      "GA678JP",
		MetodoEnvio: MetodoCorreo,
		EstadoID:    1,
	})

	assert.ErrorIs(t, err, ErrInvitacionDuplicada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvitacionCodigoDuplicado(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "invitaciones"`)).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "idx_invitaciones_codigo",
		})
	mock.ExpectRollback()

	err := repo.CreateInvitacion(context.Background(), &Invitacion{
		UsuarioID:   8,
		EventoID:    1,
		Codigo:      "GA678JP",
		MetodoEnvio: MetodoCorreo,
		EstadoID:    1,
	})

	assert.ErrorIs(t, err, ErrCodigoDuplicado)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvitacionInserta(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "invitaciones"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	inv := &Invitacion{
		UsuarioID:   7,
		EventoID:    1,
		Codigo:      "GA678JP",
		MetodoEnvio: MetodoCorreo,
		EstadoID:    1,
	}
	err := repo.CreateInvitacion(context.Background(), inv)

	require.NoError(t, err)
	assert.Equal(t, uint(42), inv.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmacionCodigoDuplicadoEsYaConfirmada(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "confirmaciones"`)).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "idx_confirmaciones_codigo",
		})
	mock.ExpectRollback()

	err := repo.CreateConfirmacion(context.Background(), &Confirmacion{
		InvitacionID:     42,
		TipoParticipante: ParticipantePrincipal,
		Nombre:           "Juan Pérez",
		Codigo:           "GA678JP",
	})

	assert.ErrorIs(t, err, ErrYaConfirmada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByCodigoNoEncontrada(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "invitaciones"`)).
		WithArgs("ZZ999XX", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByCodigo(context.Background(), "ZZ999XX")
	assert.ErrorIs(t, err, ErrNoEncontrada)
	assert.NoError(t, mock.ExpectationsWereMet())
}
