package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	pdfMargin       = 15.0
	pdfLineHeight   = 7.0
	pdfAmountColumn = 50.0
)

var (
	pdfPrimary = [3]int{98, 140, 162}
	pdfDark    = [3]int{33, 37, 41}
	pdfLight   = [3]int{108, 117, 125}
	pdfGreen   = [3]int{34, 139, 34}
)

// PDFFormatter renders the report as an A4 document.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(r *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 40)
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.SetTitle(fmt.Sprintf("Income Tax Report %s", r.Taxpayer.AssessmentYear), true)
	pdf.SetAuthor(r.Firm.Name, true)
	pdf.SetCreator("taxcalc", true)

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), report: r}
	pdf.SetFooterFunc(w.footer)
	pdf.AddPage()

	w.header()
	w.taxpayerInfo()
	w.incomeDetails()
	if r.PreferredRegime == domain.RegimeOld {
		w.deductions()
	}
	w.regime(r.Comparison.Old)
	w.regime(r.Comparison.New)
	w.recommendation()
	w.settlement()

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	report *Report
}

func (w *pdfWriter) text(s string) string { return w.tr(asciiLabel(s)) }

func (w *pdfWriter) contentWidth() float64 {
	pageW, _ := w.pdf.GetPageSize()
	return pageW - 2*pdfMargin
}

func (w *pdfWriter) color(c [3]int) {
	w.pdf.SetTextColor(c[0], c[1], c[2])
}

func (w *pdfWriter) header() {
	pageW, _ := w.pdf.GetPageSize()
	w.pdf.SetFillColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	w.pdf.Rect(0, 0, pageW, 40, "F")

	w.pdf.SetXY(pdfMargin, 10)
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.SetFont("Helvetica", "B", 20)
	w.pdf.CellFormat(0, 10, w.text(strings.ToUpper(w.report.Firm.Name)), "", 1, "L", false, 0, "")
	w.pdf.SetFont("Helvetica", "", 11)
	w.pdf.CellFormat(0, 7, w.text(w.report.Firm.Tagline), "", 1, "L", false, 0, "")
	w.pdf.CellFormat(0, 7, w.text("Assessment Year "+w.report.Taxpayer.AssessmentYear), "", 1, "L", false, 0, "")
	w.pdf.SetY(48)
}

func (w *pdfWriter) section(title string) {
	w.pdf.Ln(3)
	w.pdf.SetFillColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.SetFont("Helvetica", "B", 12)
	w.pdf.CellFormat(w.contentWidth(), 8, " "+w.text(title), "", 1, "L", true, 0, "")
	w.color(pdfDark)
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.Ln(1)
}

func (w *pdfWriter) row(label string, amount decimal.Decimal, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	w.pdf.SetFont("Helvetica", style, 10)
	w.pdf.CellFormat(w.contentWidth()-pdfAmountColumn, pdfLineHeight, w.text(label), "", 0, "L", false, 0, "")
	w.pdf.CellFormat(pdfAmountColumn, pdfLineHeight, w.text(FormatRupeesASCII(amount)), "", 1, "R", false, 0, "")
}

func (w *pdfWriter) pair(label, value string) {
	w.pdf.SetFont("Helvetica", "B", 10)
	w.pdf.CellFormat(45, pdfLineHeight, w.text(label), "", 0, "L", false, 0, "")
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.CellFormat(0, pdfLineHeight, w.text(value), "", 1, "L", false, 0, "")
}

func (w *pdfWriter) taxpayerInfo() {
	t := w.report.Taxpayer
	w.section("TAXPAYER INFORMATION")
	w.pair("Name:", t.Name)
	w.pair("PAN:", t.PAN)
	w.pair("Category:", CategoryLabel(t.Category))
	w.pair("Residential Status:", ResidentialStatusLabel(t.ResidentialStatus))
	w.pair("Age Category:", AgeCategoryLabel(t.AgeCategory))
	w.pair("Report Date:", w.report.GeneratedAt.Format("02 Jan 2006"))
}

func (w *pdfWriter) incomeDetails() {
	w.section("INCOME DETAILS")
	for _, line := range incomeLines(w.report.Income) {
		if line.Amount.IsZero() {
			continue
		}
		w.row(line.Label, line.Amount, false)
	}
	w.row("Gross Total Income", w.report.Income.Gross(), true)
}

func (w *pdfWriter) deductions() {
	w.section("DEDUCTIONS CLAIMED (OLD REGIME)")
	for _, line := range deductionLines(w.report.Deductions) {
		if line.Amount.IsZero() {
			continue
		}
		w.row(line.Label, line.Amount, false)
	}
	w.row("Total Deductions", w.report.Deductions.Total(), true)
}

func (w *pdfWriter) regime(calc domain.TaxCalculation) {
	w.section(calc.Regime.Label() + " - TAX COMPUTATION")
	w.row("Taxable Income", calc.TaxableIncome, true)
	for _, c := range calc.Breakdown {
		w.row(fmt.Sprintf("   %s @ %s", SlabLabel(c), RateLabel(c.Rate)), c.Tax, false)
	}
	w.row("Income Tax", calc.TotalTax, false)
	w.row("Surcharge", calc.Surcharge, false)
	w.row("Health & Education Cess", calc.Cess, false)
	w.row("Total Tax Payable", calc.TotalTaxPayable, true)
}

func (w *pdfWriter) recommendation() {
	rec := Analyze(w.report.Comparison)
	w.pdf.Ln(4)
	w.pdf.SetFillColor(pdfGreen[0], pdfGreen[1], pdfGreen[2])
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.SetFont("Helvetica", "B", 12)
	w.pdf.CellFormat(w.contentWidth(), 8, " PROFESSIONAL RECOMMENDATION", "", 1, "L", true, 0, "")
	w.pdf.SetFont("Helvetica", "B", 14)
	w.pdf.CellFormat(w.contentWidth()/2, 9, " "+rec.Label, "", 0, "L", true, 0, "")
	w.pdf.SetFont("Helvetica", "", 11)
	w.pdf.CellFormat(w.contentWidth()/2, 9, w.text(rec.Message)+" ", "", 1, "R", true, 0, "")

	w.color(pdfDark)
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.Ln(2)
	w.row("Old Regime Tax", w.report.Comparison.Old.TotalTaxPayable, false)
	w.row("New Regime Tax", w.report.Comparison.New.TotalTaxPayable, false)
	if note := PreferenceNote(w.report); note != "" {
		w.pdf.SetFont("Helvetica", "I", 10)
		w.pdf.CellFormat(0, pdfLineHeight, w.text(note), "", 1, "L", false, 0, "")
	}
}

func (w *pdfWriter) settlement() {
	s := w.report.Settlement
	w.section("TAX SETTLEMENT")
	w.row("Tax Payable ("+s.Regime.Label()+")", s.TaxPayable, false)
	w.row("Taxes Paid (TDS + Advance Tax)", s.TaxesPaid, false)
	if s.Refund {
		w.row("Refund Due", s.Balance, true)
	} else {
		w.row("Balance Tax Payable", s.Balance, true)
	}
}

func (w *pdfWriter) footer() {
	pageW, pageH := w.pdf.GetPageSize()
	y := pageH - 30
	w.pdf.SetDrawColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	w.pdf.SetLineWidth(0.5)
	w.pdf.Line(0, y, pageW, y)

	w.pdf.SetXY(pdfMargin, y+3)
	w.color(pdfDark)
	w.pdf.SetFont("Helvetica", "B", 9)
	w.pdf.CellFormat(w.contentWidth(), 5, w.text(strings.ToUpper(w.report.Firm.Name)), "", 1, "C", false, 0, "")
	w.pdf.SetFont("Helvetica", "", 8)
	w.pdf.CellFormat(w.contentWidth(), 4, "This is a computer-generated report based on the information provided", "", 1, "C", false, 0, "")
	w.pdf.CellFormat(w.contentWidth(), 4, "For comprehensive tax planning and professional advice, please schedule a consultation", "", 1, "C", false, 0, "")
	w.color(pdfLight)
	contact := fmt.Sprintf("Email: %s | Website: %s | Page %d", w.report.Firm.Email, w.report.Firm.Website, w.pdf.PageNo())
	w.pdf.CellFormat(w.contentWidth(), 4, w.text(contact), "", 1, "C", false, 0, "")
}
