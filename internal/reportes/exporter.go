package reportes

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders a report into a downloadable document.
// It returns the file bytes, a timestamped filename and the mime type.
type Exporter interface {
	ExportAsistencia(evento string, rows []AsistenciaRow, format string) ([]byte, string, string, error)
	ExportInvitaciones(evento string, rows []InvitacionRow, format string) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) ExportAsistencia(evento string, rows []AsistenciaRow, format string) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.asistenciaCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("reporte_asistencia_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.asistenciaExcel(evento, rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("reporte_asistencia_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.asistenciaPDF(evento, rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("reporte_asistencia_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("formato no soportado: %s", format)
	}
}

func (e *exporter) ExportInvitaciones(evento string, rows []InvitacionRow, format string) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.invitacionesCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("reporte_invitaciones_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.invitacionesExcel(evento, rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("reporte_invitaciones_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.invitacionesPDF(evento, rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("reporte_invitaciones_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("formato no soportado: %s", format)
	}
}

// ======================
// Asistencia
// ======================

func (e *exporter) asistenciaCSV(rows []AsistenciaRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Codigo", "Nombre", "Correo", "Telefono", "Cargo", "Tipo", "Codigo Principal", "Fecha Confirmacion"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.Codigo,
			r.Nombre,
			r.Correo,
			r.Telefono,
			r.Cargo,
			r.TipoParticipante,
			r.CodigoPrincipal,
			r.FechaConfirmacion.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) asistenciaExcel(evento string, rows []AsistenciaRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Asistencia"
	f.SetSheetName("Sheet1", sheetName)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Asistencia - %s", evento))

	headers := []string{"Codigo", "Nombre", "Correo", "Telefono", "Cargo", "Tipo", "Codigo Principal", "Fecha Confirmacion"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c2", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 3
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Codigo)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Nombre)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Correo)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Telefono)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Cargo)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.TipoParticipante)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.CodigoPrincipal)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.FechaConfirmacion.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) asistenciaPDF(evento string, rows []AsistenciaRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Asistencia - %s", evento))
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{28, 55, 55, 30, 35, 28, 28, 35}
	headers := []string{"Codigo", "Nombre", "Correo", "Telefono", "Cargo", "Tipo", "Cod. Principal", "Confirmado"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		values := []string{
			r.Codigo,
			r.Nombre,
			r.Correo,
			r.Telefono,
			r.Cargo,
			r.TipoParticipante,
			r.CodigoPrincipal,
			r.FechaConfirmacion.Format("2006-01-02 15:04"),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ======================
// Invitaciones
// ======================

func (e *exporter) invitacionesCSV(rows []InvitacionRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Codigo", "Cedula", "Nombre", "Correo", "Telefono", "Estado", "Correo Envio", "WhatsApp Envio", "Fecha Envio", "Acompanantes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range rows {
		fechaEnvio := ""
		if r.FechaEnvio != nil {
			fechaEnvio = r.FechaEnvio.Format("2006-01-02 15:04:05")
		}

		record := []string{
			r.Codigo,
			r.Cedula,
			r.Nombre,
			r.Correo,
			r.Telefono,
			r.Estado,
			r.EstadoEnvioCorreo,
			r.EstadoEnvioWhatsapp,
			fechaEnvio,
			strconv.Itoa(r.Acompanantes),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) invitacionesExcel(evento string, rows []InvitacionRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Invitaciones"
	f.SetSheetName("Sheet1", sheetName)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Invitaciones - %s", evento))

	headers := []string{"Codigo", "Cedula", "Nombre", "Correo", "Telefono", "Estado", "Correo Envio", "WhatsApp Envio", "Fecha Envio", "Acompanantes"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c2", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 3
		fechaEnvio := ""
		if r.FechaEnvio != nil {
			fechaEnvio = r.FechaEnvio.Format("2006-01-02 15:04:05")
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Codigo)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Cedula)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Nombre)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Correo)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Telefono)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Estado)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.EstadoEnvioCorreo)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.EstadoEnvioWhatsapp)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), fechaEnvio)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), r.Acompanantes)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) invitacionesPDF(evento string, rows []InvitacionRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Invitaciones - %s", evento))
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{24, 26, 45, 48, 28, 24, 22, 24, 30, 16}
	headers := []string{"Codigo", "Cedula", "Nombre", "Correo", "Telefono", "Estado", "Correo", "WhatsApp", "Enviada", "Acomp."}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		fechaEnvio := ""
		if r.FechaEnvio != nil {
			fechaEnvio = r.FechaEnvio.Format("2006-01-02 15:04")
		}

		values := []string{
			r.Codigo,
			r.Cedula,
			r.Nombre,
			r.Correo,
			r.Telefono,
			r.Estado,
			r.EstadoEnvioCorreo,
			r.EstadoEnvioWhatsapp,
			fechaEnvio,
			strconv.Itoa(r.Acompanantes),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
