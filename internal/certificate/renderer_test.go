package certificate

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

func rendererData() *Data {
	start := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	return &Data{
		User: &domain.User{
			FirstName: "João Pedro",
			LastName:  "Araújo",
		},
		Event: &domain.Event{
			BaseModel: domain.BaseModel{ID: uuid.New()},
			Name:      "Semana de Computação",
			City:      "São Paulo",
			State:     "SP",
			StartDate: start,
			EndDate:   start.Add(8 * time.Hour),
			User: domain.User{
				FirstName: "Fernanda",
				LastName:  "Lima",
			},
		},
		IssuedAt: time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestCertificateID(t *testing.T) {
	d := rendererData()
	assert.Equal(t, "SNSP-20260315-JA-SEM", CertificateID(d))
}

func TestCertificateID_NameWithoutLetters(t *testing.T) {
	d := rendererData()
	d.Event.Name = "***"
	assert.Equal(t, "SNSP-20260315-JA-EVT", CertificateID(d))
}

func TestFilename_SlugifiesAccents(t *testing.T) {
	d := rendererData()
	assert.Equal(t, "certificado_semana_de_computacao_joao_pedro_araujo.pdf", Filename(d))
}

func TestRender_ProducesPDF(t *testing.T) {
	content, err := Render(rendererData())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Greater(t, len(content), 1000)
}

func TestBodyText(t *testing.T) {
	d := rendererData()

	// single day event collapses the range
	text := bodyText(d.Event)
	assert.Contains(t, text, "realizado em 12 de março de 2026")
	assert.Contains(t, text, "São Paulo - SP")
	assert.Contains(t, text, "8 horas")

	// multi day event spells out both dates
	d.Event.EndDate = d.Event.StartDate.Add(50 * time.Hour)
	text = bodyText(d.Event)
	assert.Contains(t, text, "realizado de 12 de março de 2026 a 14 de março de 2026")
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{1, "1 hora"},
		{2, "2 horas"},
		{1.5, "1,5 horas"},
		{8, "8 horas"},
		{0.5, "0,5 horas"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatHours(tt.hours))
	}
}

func TestEventPrefix(t *testing.T) {
	assert.Equal(t, "SEM", eventPrefix("Semana de Computação"))
	assert.Equal(t, "3FE", eventPrefix("3ª Feira de Ciências"))
	assert.Equal(t, "AB", eventPrefix("A B"))
	assert.Equal(t, "EVT", eventPrefix("—"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "oficina_de_robotica", slugify("Oficina de Robótica"))
	assert.Equal(t, "ia_na_pratica", slugify("  IA: na prática!  "))
	assert.Equal(t, "a_b", slugify("a---b"))
}
