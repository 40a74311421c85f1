package mail

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp não configurado")

// Checker só verifica se o relay aceita conexão e autenticação. Não envia nada:
// quem envia é o mailer externo.
type Checker struct {
	settings SMTPSettings
	dial     func(d *gomail.Dialer) (gomail.SendCloser, error)
}

func NewChecker(settings SMTPSettings) *Checker {
	return &Checker{
		settings: settings,
		dial: func(d *gomail.Dialer) (gomail.SendCloser, error) {
			return d.Dial()
		},
	}
}

func (c *Checker) Configured() bool {
	return c.settings.Host != "" && c.settings.User != "" && c.settings.Password != ""
}

// Check abre e fecha uma sessão SMTP. O gomail não aceita context, então o
// ctx só corta a espera pelo resultado.
func (c *Checker) Check(ctx context.Context) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	d := gomail.NewDialer(c.settings.Host, c.settings.Port, c.settings.User, c.settings.Password)

	done := make(chan error, 1)
	go func() {
		sc, err := c.dial(d)
		if err != nil {
			done <- fmt.Errorf("erro ao conectar SMTP: %w", err)
			return
		}
		done <- sc.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
