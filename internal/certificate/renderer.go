// Package certificate renders PDF completion certificates.
package certificate

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

const issuerName = "SINAPSE"

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Data carries everything needed to render one certificate
type Data struct {
	User     *domain.User
	Event    *domain.Event
	IssuedAt time.Time
}

// CertificateID builds the verification code printed at the bottom of the
// certificate: issuer prefix, issue date, participant initials and the first
// letters of the event name.
func CertificateID(d *Data) string {
	return fmt.Sprintf("SNSP-%s-%s-%s",
		d.IssuedAt.Format("20060102"),
		d.User.Initials(),
		eventPrefix(d.Event.Name),
	)
}

// Filename builds the download name for the PDF
func Filename(d *Data) string {
	return fmt.Sprintf("certificado_%s_%s_%s.pdf",
		slugify(d.Event.Name),
		slugify(d.User.FirstName),
		slugify(d.User.LastName),
	)
}

// Render produces the certificate PDF as bytes
func Render(d *Data) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	width, height := pdf.GetPageSize()

	// double border
	pdf.SetDrawColor(30, 64, 124)
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, width-16, height-16, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(11, 11, width-22, height-22, "D")

	// diagonal watermark behind the text
	pdf.SetFont("Helvetica", "B", 80)
	pdf.SetTextColor(238, 238, 244)
	pdf.TransformBegin()
	pdf.TransformRotate(30, width/2, height/2)
	pdf.Text(width/2-75, height/2+12, issuerName)
	pdf.TransformEnd()

	pdf.SetTextColor(30, 64, 124)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(0, 24)
	pdf.CellFormat(width, 8, issuerName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetXY(0, 42)
	pdf.CellFormat(width, 14, "CERTIFICADO", "", 1, "C", false, 0, "")

	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "", 13)
	pdf.SetXY(0, 64)
	pdf.CellFormat(width, 7, tr("Certificamos que"), "", 1, "C", false, 0, "")

	pdf.SetTextColor(30, 64, 124)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(0, 74)
	pdf.CellFormat(width, 11, tr(d.User.FullName()), "", 1, "C", false, 0, "")

	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "", 13)
	pdf.SetXY(30, 92)
	pdf.MultiCell(width-60, 7, tr(bodyText(d.Event)), "", "C", false)

	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetXY(0, height-62)
	pdf.CellFormat(width, 6, tr(fmt.Sprintf("Emitido em %s.", formatLongDate(d.IssuedAt))), "", 1, "C", false, 0, "")

	// signature line
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Line(width/2-40, height-44, width/2+40, height-44)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(0, height-42)
	pdf.CellFormat(width, 5, tr(d.Event.User.FullName()), "", 1, "C", false, 0, "")
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(0, height-37)
	pdf.CellFormat(width, 5, tr("Organizador do evento"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(0, height-22)
	pdf.CellFormat(width, 5, tr(fmt.Sprintf("Código de verificação: %s", CertificateID(d))), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

// bodyText phrases the completion statement, collapsing the date range when
// the event starts and ends on the same day
func bodyText(e *domain.Event) string {
	location := e.City
	if e.State != "" {
		location = fmt.Sprintf("%s - %s", e.City, e.State)
	}

	start := e.StartDate
	end := e.EndDate
	if sameDay(start, end) {
		return fmt.Sprintf(
			"participou do evento \"%s\", realizado em %s, na cidade de %s, com carga horária de %s.",
			e.Name, formatLongDate(start), location, formatHours(e.DurationHours()),
		)
	}
	return fmt.Sprintf(
		"participou do evento \"%s\", realizado de %s a %s, na cidade de %s, com carga horária de %s.",
		e.Name, formatLongDate(start), formatLongDate(end), location, formatHours(e.DurationHours()),
	)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func formatLongDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

func formatHours(hours float64) string {
	s := fmt.Sprintf("%.1f", hours)
	s = strings.TrimSuffix(s, ".0")
	s = strings.ReplaceAll(s, ".", ",")
	if s == "1" {
		return "1 hora"
	}
	return s + " horas"
}

// eventPrefix takes the first three letters or digits of the event name
func eventPrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "EVT"
	}
	return b.String()
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// slugify lowercases, strips accents and squeezes everything else into
// single underscores
func slugify(s string) string {
	s = accentReplacer.Replace(strings.ToLower(s))
	var b strings.Builder
	lastUnderscore := true
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
