package evento

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNoEncontrado    = errors.New("evento no encontrado")
	ErrConInvitaciones = errors.New("el evento tiene invitaciones asociadas")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Evento
func (r *Repository) CreateEvento(e *Evento) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Evento By ID with invitation count
func (r *Repository) GetEventoByID(id uint) (*Evento, error) {
	var e Evento
	err := r.DB.First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	count, err := r.CountInvitaciones(e.ID)
	if err != nil {
		return nil, err
	}
	e.InvitacionCount = count

	return &e, nil
}

// ===========================
// 📆 Get Upcoming Eventos
func (r *Repository) GetProximosEventos() ([]Evento, error) {
	var eventos []Evento

	err := r.DB.
		Where("fecha >= CURRENT_DATE AND activo = TRUE").
		Order("fecha ASC").
		Find(&eventos).Error
	if err != nil {
		return nil, err
	}

	for i := range eventos {
		count, _ := r.CountInvitaciones(eventos[i].ID)
		eventos[i].InvitacionCount = count
	}

	return eventos, nil
}

// ===========================
// 📄 List Eventos With Pagination & Search
func (r *Repository) ListEventos(limit, offset int, search, categoria string) ([]Evento, int64, error) {
	var eventos []Evento
	var total int64

	query := r.DB.Model(&Evento{})

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("nombre ILIKE ? OR descripcion ILIKE ? OR lugar ILIKE ?", ilike, ilike, ilike)
	}
	if categoria != "" {
		query = query.Where("categoria = ?", categoria)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("fecha ASC").
		Limit(limit).
		Offset(offset).
		Find(&eventos).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range eventos {
		count, _ := r.CountInvitaciones(eventos[i].ID)
		eventos[i].InvitacionCount = count
	}

	return eventos, total, nil
}

// ===========================
// 🛠 Update Evento
func (r *Repository) UpdateEvento(e *Evento) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Evento (blocked while invitations exist)
func (r *Repository) DeleteEvento(id uint) error {
	count, err := r.CountInvitaciones(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConInvitaciones
	}

	res := r.DB.Delete(&Evento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

// ===========================
// 🔢 Count Invitaciones for an Evento
func (r *Repository) CountInvitaciones(eventoID uint) (int, error) {
	var count int64
	err := r.DB.Table("invitaciones").
		Where("evento_id = ?", eventoID).
		Count(&count).Error
	return int(count), err
}

// ===========================
// 📊 Evento Dashboard Stats
type EventoStatsResponse struct {
	TotalEventos       int `json:"total_eventos"`
	EventosEsteMes     int `json:"eventos_este_mes"`
	ProximosEventos    int `json:"proximos_eventos"`
	TotalInvitaciones  int `json:"total_invitaciones"`
	TotalConfirmadas   int `json:"total_confirmadas"`
}

func (r *Repository) GetEventoStats() (*EventoStatsResponse, error) {
	var stats EventoStatsResponse
	var total, esteMes, proximos, totalInv, confirmadas int64

	now := time.Now()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	r.DB.Model(&Evento{}).Count(&total)

	r.DB.Model(&Evento{}).
		Where("fecha >= ?", inicioMes).
		Count(&esteMes)

	r.DB.Model(&Evento{}).
		Where("fecha >= CURRENT_DATE").
		Count(&proximos)

	r.DB.Table("invitaciones").Count(&totalInv)

	r.DB.Table("invitaciones").
		Joins("JOIN estados ON estados.id = invitaciones.estado_id").
		Where("estados.nombre = ?", "Confirmada").
		Count(&confirmadas)

	stats.TotalEventos = int(total)
	stats.EventosEsteMes = int(esteMes)
	stats.ProximosEventos = int(proximos)
	stats.TotalInvitaciones = int(totalInv)
	stats.TotalConfirmadas = int(confirmadas)

	return &stats, nil
}
