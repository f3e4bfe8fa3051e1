// Package pdf implementa la generación del Acta de Admisión de un lote en la
// zona franca, el soporte documental que respalda el ingreso de la mercancía.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Acta de Admisión + N° Lote  │  Fecha de admisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  IMPORTADOR: Nombre + NIT + contacto                        │
//	│  MERCANCÍA: SKU / Descripción / Origen / Partida HTS        │
//	│  DOCUMENTOS: Manifiesto + Bill of Lading + Valor declarado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cantidad | Documento soporte         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO: Cantidad original / Cantidad vigente / Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Leyenda de control aduanero                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appledger "github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ appledger.CertificatePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ledger.CertificatePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateAdmissionCertificate genera el PDF del acta y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateAdmissionCertificate(
	_ context.Context,
	lot *entity.Lot,
	part *entity.Part,
	customer *entity.Customer,
	transactions []*entity.LotTransaction,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Admisión - Zona Franca", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(lot))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(importadorRow(customer))
	m.AddRows(mercanciaRow(part))
	m.AddRows(documentosRow(lot))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Movimientos del libro mayor
	m.AddRows(tableHeaderRow())
	for _, r := range movementRows(transactions) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(saldoRow(lot))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(lot))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + ID del lote (izq) y fecha de admisión (der).
func headerRow(lot *entity.Lot) core.Row {
	fecha := lot.AdmissionDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("ACTA DE ADMISIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lote: "+lot.ID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ZONA FRANCA - CONTROL DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha de admisión: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// importadorRow: datos del importador propietario de la mercancía.
func importadorRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("IMPORTADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT: %s   |   Email: %s",
				nonEmpty(customer.TaxID, "—"),
				nonEmpty(customer.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// mercanciaRow: referencia de la mercancía admitida.
func mercanciaRow(part *entity.Part) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("MERCANCÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s — %s", part.SKU, part.Description), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 6,
			}),
			text.New(fmt.Sprintf("Origen: %s   |   Partida HTS: %s   |   Valor unitario: $%s",
				nonEmpty(part.CountryOfOrigin, "—"),
				nonEmpty(part.HTSCode, "—"),
				part.UnitValue.StringFixed(2),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// documentosRow: documentos soporte de la admisión.
func documentosRow(lot *entity.Lot) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DOCUMENTOS SOPORTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Manifiesto: %s   |   Bill of Lading: %s   |   Valor declarado: $%s",
				nonEmpty(lot.ManifestNumber, "—"),
				nonEmpty(lot.BillOfLading, "—"),
				lot.TotalValue.StringFixed(2),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Cantidad", 2, align.Right),
		h("Documento soporte", 6, align.Left),
	)
}

// movementRows: una fila por transacción del libro mayor, en orden cronológico.
func movementRows(transactions []*entity.LotTransaction) []core.Row {
	result := make([]core.Row, 0, len(transactions))
	for _, tx := range transactions {
		qtyColor := colorGray
		if tx.Quantity < 0 {
			qtyColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				tx.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				tx.Type,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatSigned(tx.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor},
			)),
			col.New(6).Add(text.New(
				nonEmpty(tx.SourceDocument, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// saldoRow: cantidades y estado vigente del lote.
func saldoRow(lot *entity.Lot) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Cantidad original:"),
			label("Estado:"),
			grandLabel("CANTIDAD VIGENTE:"),
		),
		col.New(3).Add(
			value(strconv.FormatInt(lot.OriginalQuantity, 10)),
			value(lot.Status),
			grandValue(strconv.FormatInt(lot.CurrentQuantity, 10)),
		),
		col.New(2),
	)
}

// footerRow: leyenda de control aduanero.
func footerRow(lot *entity.Lot) core.Row {
	leyenda := "Este documento soporta el ingreso y permanencia de la mercancía " +
		"bajo el régimen franco. Las cantidades reflejan el libro mayor de " +
		"transacciones del lote a la fecha de generación."
	if lot.Voided {
		leyenda = "LOTE ANULADO. Este documento se conserva únicamente como " +
			"soporte histórico del ingreso; la mercancía ya no figura en inventario."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(leyenda, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatSigned antepone el signo + a los deltas positivos.
// Ej: 100 → "+100", -15 → "-15"
func formatSigned(n int64) string {
	if n > 0 {
		return "+" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
