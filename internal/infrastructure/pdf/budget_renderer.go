// Package pdf renders budgets as printable A4 documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	pageWidth = 190.0
	lineH     = 7.0
)

// BudgetRenderer lays out the letterhead, client block, item table, total and
// conditions of a budget.
type BudgetRenderer struct{}

var _ interfaces.IDocumentRenderer = (*BudgetRenderer)(nil)

func NewBudgetRenderer() *BudgetRenderer {
	return &BudgetRenderer{}
}

func (r *BudgetRenderer) RenderBudget(ctx context.Context, b entities.Budget, s entities.CompanySettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 12, 10)
	doc.SetAutoPageBreak(true, 15)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	// Letterhead.
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(pageWidth, 9, tr(s.CompanyName), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	if s.CompanySubtitle != "" {
		doc.CellFormat(pageWidth, 6, tr(s.CompanySubtitle), "", 1, "C", false, 0, "")
	}
	if s.Phone != "" {
		doc.CellFormat(pageWidth, 6, tr("Tel: "+s.Phone), "", 1, "C", false, 0, "")
	}
	doc.Ln(4)

	number := b.BudgetNumber
	if number == "" {
		number = "S/N"
	}
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(pageWidth/2, lineH, tr("ORÇAMENTO Nº "+number), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(pageWidth/2, lineH, tr("Data: "+b.CreatedAt.Format("02/01/2006")), "", 1, "R", false, 0, "")
	doc.Ln(2)

	// Client.
	doc.SetFillColor(235, 240, 248)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(pageWidth, lineH, tr("Cliente"), "", 1, "L", true, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, line := range clientLines(b.ClientData) {
		doc.CellFormat(pageWidth, 6, tr(line), "", 1, "L", false, 0, "")
	}
	if b.ServiceType != "" {
		doc.CellFormat(pageWidth, 6, tr("Serviço: "+b.ServiceType), "", 1, "L", false, 0, "")
	}
	doc.Ln(3)

	// Items.
	widths := []float64{100, 20, 35, 35}
	doc.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Descrição", "Qtd", "Unitário", "Subtotal"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		doc.CellFormat(widths[i], lineH, tr(h), "1", 0, align, true, 0, "")
	}
	doc.Ln(-1)
	doc.SetFont("Helvetica", "", 10)
	for _, it := range b.Items {
		doc.CellFormat(widths[0], lineH, tr(it.Description), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], lineH, fmt.Sprintf("%d", it.Qty), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[2], lineH, tr(FormatBRL(it.Price)), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], lineH, tr(FormatBRL(it.Subtotal())), "1", 1, "R", false, 0, "")
	}
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(widths[0]+widths[1]+widths[2], 9, "TOTAL", "1", 0, "R", true, 0, "")
	doc.CellFormat(widths[3], 9, tr(FormatBRL(b.Total)), "1", 1, "R", true, 0, "")
	doc.Ln(4)

	// Conditions.
	doc.SetFont("Helvetica", "", 10)
	if b.PaymentMethod != "" {
		doc.CellFormat(pageWidth, 6, tr("Forma de pagamento: "+b.PaymentMethod), "", 1, "L", false, 0, "")
	}
	doc.CellFormat(pageWidth, 6, tr("Condições: "+b.PaymentTerms), "", 1, "L", false, 0, "")
	doc.CellFormat(pageWidth, 6, tr("Validade: "+b.Validity), "", 1, "L", false, 0, "")

	if s.FooterText != "" {
		doc.Ln(8)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(pageWidth, 5, tr(s.FooterText), "", "C", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clientLines(c entities.ClientData) []string {
	lines := []string{"Nome: " + c.Name}
	if c.Address != "" {
		lines = append(lines, "Endereço: "+c.Address)
	}
	if c.Phone != "" {
		lines = append(lines, "Telefone: "+c.Phone)
	}
	return lines
}

// FormatBRL prints an amount the Brazilian way: R$ 1.234,50.
func FormatBRL(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	fixed := v.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	return fmt.Sprintf("%sR$ %s,%s", sign, strings.Join(groups, "."), frac)
}
