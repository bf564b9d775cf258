package infra

// pdf.go — Acta de baja generation using go-pdf/fpdf.
// Renders an A4 document with:
//   - Header with batch id, date and responsible name
//   - Line table (product, lot, quantity, motive, value)
//   - Transfer annotations for unit-sale lines
//   - Bold totals

import (
	"fmt"
	"os"
	"path/filepath"

	"kajamart/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateActaBajaPDF writes the acta for a committed write-off batch.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateActaBajaPDF(baja *model.Baja, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("acta_baja_%s.pdf", baja.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Kajamart", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Acta de baja de productos", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Acta N° %s", baja.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Fecha: "+baja.FechaBaja.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Responsable: "+baja.NombreResponsable, "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Line table ────────────────────────────────────────────────────────────
	col1 := contentW * 0.34 // product
	col2 := contentW * 0.22 // lot
	col3 := contentW * 0.10 // qty
	col4 := contentW * 0.18 // motive
	col5 := contentW * 0.16 // value

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Lote", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Motivo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col5, 6, "Valor", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range baja.Detalles {
		nombre := d.NombreProducto
		if len(nombre) > 30 {
			nombre = nombre[:29] + "…"
		}
		lote := d.LoteID.String()
		if len(lote) > 13 {
			lote = lote[:13] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, lote, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, d.Motivo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col5, 6, "$"+d.TotalProductoBaja.StringFixed(2), "", 1, "R", false, 0, "")

		if d.LoteTrasladoID != nil && d.CantidadTraslado != nil {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(contentW, 5,
				fmt.Sprintf("    Traslado: %d unidades al lote %s", *d.CantidadTraslado, d.LoteTrasladoID),
				"", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
		}
	}

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3+col4, 7, "Total unidades dadas de baja:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col5, 7, fmt.Sprintf("%d", baja.CantidadBaja), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3+col4, 7, "Valor total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col5, 7, "$"+baja.TotalPrecioBaja.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
