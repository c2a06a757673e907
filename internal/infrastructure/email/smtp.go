// Package email envoie les documents et les codes de réinitialisation par
// SMTP. La configuration est celle du laboratoire, lue en base à chaque
// envoi pour refléter immédiatement les changements de l'écran admin.
package email

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"time"

	"github.com/dentalcloud/dentalcloud-api/internal/application/auth"
	"github.com/dentalcloud/dentalcloud-api/internal/application/billing"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

var (
	_ billing.EmailSender = (*SMTPSender)(nil)
	_ auth.CodeSender     = (*SMTPSender)(nil)
)

// SMTPSender implémente l'envoi d'emails sur net/smtp avec la configuration
// SMTP du laboratoire.
type SMTPSender struct {
	settings repository.SettingsRepository
	log      *logger.Logger
}

// NewSMTPSender construit l'expéditeur.
func NewSMTPSender(settings repository.SettingsRepository, log *logger.Logger) *SMTPSender {
	return &SMTPSender{settings: settings, log: log}
}

// SendDocument envoie un PDF en pièce jointe au destinataire.
func (s *SMTPSender) SendDocument(labID, to, subject, body, filename string, pdf []byte) error {
	cfg, err := s.config(labID)
	if err != nil {
		return err
	}
	msg := buildMessage(cfg, to, subject, body, filename, pdf)
	if err := s.send(cfg, to, msg); err != nil {
		return fmt.Errorf("envoi du document: %w", err)
	}
	s.log.Info().Str("lab_id", labID).Str("to", to).Str("filename", filename).
		Msg("document envoyé par email")
	return nil
}

// SendResetCode envoie le code de réinitialisation de mot de passe.
func (s *SMTPSender) SendResetCode(labID, toEmail, toName, code string) error {
	cfg, err := s.config(labID)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"Bonjour %s,\r\n\r\n"+
			"Votre code de réinitialisation de mot de passe est : %s\r\n\r\n"+
			"Ce code expire dans 15 minutes. Si vous n'êtes pas à l'origine de "+
			"cette demande, ignorez ce message.\r\n",
		toName, code,
	)
	msg := buildMessage(cfg, toEmail, "Réinitialisation de votre mot de passe", body, "", nil)
	if err := s.send(cfg, toEmail, msg); err != nil {
		return fmt.Errorf("envoi du code de réinitialisation: %w", err)
	}
	return nil
}

// config lit la configuration SMTP du laboratoire. Absente ou désactivée,
// l'envoi est impossible.
func (s *SMTPSender) config(labID string) (*entity.SMTPSettings, error) {
	cfg, err := s.settings.GetSMTPSettings(labID)
	if err != nil {
		return nil, fmt.Errorf("lecture configuration smtp: %w", err)
	}
	if cfg == nil || !cfg.IsActive {
		return nil, fmt.Errorf("aucune configuration SMTP active pour ce laboratoire")
	}
	return cfg, nil
}

// send établit la connexion et transmet le message. TLS implicite quand
// Secure est vrai (port 465 en général), STARTTLS opportuniste sinon.
func (s *SMTPSender) send(cfg *entity.SMTPSettings, to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var client *smtp.Client
	if cfg.Secure {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
		if err != nil {
			return fmt.Errorf("connexion TLS %s: %w", addr, err)
		}
		client, err = smtp.NewClient(conn, cfg.Host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("client smtp: %w", err)
		}
	} else {
		var err error
		client, err = smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("connexion %s: %w", addr, err)
		}
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
				client.Close()
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}
	defer client.Quit()

	if cfg.Username != "" {
		auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authentification smtp: %w", err)
		}
	}
	if err := client.Mail(cfg.FromEmail); err != nil {
		return fmt.Errorf("expéditeur refusé: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("destinataire refusé %s: %w", to, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("commande DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("écriture du message: %w", err)
	}
	return w.Close()
}

// buildMessage assemble le message MIME. Avec pièce jointe le corps devient
// multipart/mixed, le PDF encodé en base64.
func buildMessage(cfg *entity.SMTPSettings, to, subject, body, filename string, pdf []byte) []byte {
	var msg bytes.Buffer

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", cfg.FromName), cfg.FromEmail)
	}
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if len(pdf) == 0 {
		msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
		msg.WriteString(body)
		return msg.Bytes()
	}

	const boundary = "dentalcloud-attachment"
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: application/pdf\r\n")
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&msg, "Content-Disposition: attachment; filename=%q\r\n\r\n", filename)

	encoded := base64.StdEncoding.EncodeToString(pdf)
	for len(encoded) > 76 {
		msg.WriteString(encoded[:76])
		msg.WriteString("\r\n")
		encoded = encoded[76:]
	}
	msg.WriteString(encoded)
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return msg.Bytes()
}
