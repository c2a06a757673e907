package email

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
)

func testSettings() *entity.SMTPSettings {
	return &entity.SMTPSettings{
		Host:      "smtp.example.fr",
		Port:      587,
		FromEmail: "labo@example.fr",
		FromName:  "Laboratoire Exemple",
		IsActive:  true,
	}
}

func TestBuildMessage_SansPieceJointe(t *testing.T) {
	msg := string(buildMessage(testSettings(), "dentiste@example.fr", "Votre code", "Bonjour", "", nil))

	assert.Contains(t, msg, "To: dentiste@example.fr\r\n")
	assert.Contains(t, msg, "<labo@example.fr>")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=\"utf-8\"")
	assert.Contains(t, msg, "Bonjour")
	assert.NotContains(t, msg, "multipart/mixed")
}

func TestBuildMessage_SujetAccentueEncode(t *testing.T) {
	msg := string(buildMessage(testSettings(), "a@b.fr", "Réinitialisation", "corps", "", nil))

	// Le sujet non-ASCII doit être encodé (RFC 2047), jamais émis brut.
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.NotContains(t, msg, "Subject: Réinitialisation")
}

func TestBuildMessage_AvecPieceJointe(t *testing.T) {
	pdf := []byte("%PDF-1.4 contenu factice du document")
	msg := string(buildMessage(testSettings(), "dentiste@example.fr", "Facture", "Veuillez trouver ci-joint.", "FAC-2025-0001.pdf", pdf))

	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, "Content-Type: application/pdf\r\n")
	assert.Contains(t, msg, "Content-Transfer-Encoding: base64\r\n")
	assert.Contains(t, msg, `filename="FAC-2025-0001.pdf"`)
	assert.Contains(t, msg, "Veuillez trouver ci-joint.")

	// La pièce jointe doit se décoder vers les octets d'origine.
	start := strings.Index(msg, "base64\r\n")
	require.Positive(t, start)
	rest := msg[start:]
	blank := strings.Index(rest, "\r\n\r\n")
	require.Positive(t, blank)
	payload := rest[blank+4:]
	end := strings.Index(payload, "\r\n--")
	require.Positive(t, end)

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload[:end], "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, pdf, decoded)
}

func TestBuildMessage_Base64CoupeA76Colonnes(t *testing.T) {
	pdf := make([]byte, 600)
	for i := range pdf {
		pdf[i] = byte(i % 251)
	}
	msg := string(buildMessage(testSettings(), "a@b.fr", "Doc", "corps", "doc.pdf", pdf))

	inAttachment := false
	for _, line := range strings.Split(msg, "\r\n") {
		if strings.HasPrefix(line, "Content-Transfer-Encoding: base64") {
			inAttachment = true
			continue
		}
		if inAttachment && strings.HasPrefix(line, "--") {
			break
		}
		if inAttachment {
			assert.LessOrEqual(t, len(line), 76, "les lignes base64 ne dépassent pas 76 caractères")
		}
	}
}
