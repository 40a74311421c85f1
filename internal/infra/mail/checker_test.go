package mail

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gomail.v2"
)

type fakeSendCloser struct {
	closed int
}

func (f *fakeSendCloser) Send(from string, to []string, msg io.WriterTo) error {
	return errors.New("checker must not send")
}

func (f *fakeSendCloser) Close() error {
	f.closed++
	return nil
}

func settings() SMTPSettings {
	return SMTPSettings{Host: "smtp.example.org", Port: 587, User: "u", Password: "p"}
}

func TestCheckerNotConfigured(t *testing.T) {
	c := NewChecker(SMTPSettings{Host: "smtp.example.org", Port: 587})
	assert.False(t, c.Configured())
	assert.ErrorIs(t, c.Check(context.Background()), ErrNotConfigured)
}

func TestCheckerDialsAndCloses(t *testing.T) {
	sc := &fakeSendCloser{}
	c := NewChecker(settings())

	var dialed *gomail.Dialer
	c.dial = func(d *gomail.Dialer) (gomail.SendCloser, error) {
		dialed = d
		return sc, nil
	}

	assert.NoError(t, c.Check(context.Background()))
	assert.Equal(t, "smtp.example.org", dialed.Host)
	assert.Equal(t, 587, dialed.Port)
	assert.Equal(t, 1, sc.closed)
}

func TestCheckerDialError(t *testing.T) {
	c := NewChecker(settings())
	c.dial = func(d *gomail.Dialer) (gomail.SendCloser, error) {
		return nil, errors.New("535 authentication failed")
	}

	assert.ErrorContains(t, c.Check(context.Background()), "535")
}

func TestCheckerRespectsContext(t *testing.T) {
	c := NewChecker(settings())
	release := make(chan struct{})
	defer close(release)
	c.dial = func(d *gomail.Dialer) (gomail.SendCloser, error) {
		<-release
		return &fakeSendCloser{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Check(ctx), context.DeadlineExceeded)
}
