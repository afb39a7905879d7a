package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/model"
)

type fakeClient struct {
	sent *sgmail.SGMailV3
	resp *rest.Response
	err  error
}

func (f *fakeClient) SendWithContext(_ context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	f.sent = email
	return f.resp, f.err
}

func newTestSendGrid(c client) *SendGrid {
	return &SendGrid{client: c, from: sgmail.NewEmail("Codepad", "no-reply@codepad.local")}
}

func TestSendGrid_Send_Success(t *testing.T) {
	c := &fakeClient{resp: &rest.Response{StatusCode: 202}}
	s := newTestSendGrid(c)

	err := s.Send(context.Background(), model.Message{To: "new@example.com", Subject: "Your code", Body: "042317"})
	require.NoError(t, err)

	require.NotNil(t, c.sent)
	assert.Equal(t, "Your code", c.sent.Subject)
	assert.Equal(t, "no-reply@codepad.local", c.sent.From.Address)
	require.Len(t, c.sent.Personalizations, 1)
	assert.Equal(t, "new@example.com", c.sent.Personalizations[0].To[0].Address)
}

func TestSendGrid_Send_TransportError(t *testing.T) {
	s := newTestSendGrid(&fakeClient{err: errors.New("dial tcp: timeout")})

	err := s.Send(context.Background(), model.Message{To: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial tcp")
}

func TestSendGrid_Send_RejectedStatus(t *testing.T) {
	s := newTestSendGrid(&fakeClient{resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}})

	err := s.Send(context.Background(), model.Message{To: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestNewSendGrid(t *testing.T) {
	s := NewSendGrid("SG.key", "Codepad", "otp@example.com")

	assert.NotNil(t, s.client)
	assert.Equal(t, "otp@example.com", s.from.Address)
}

func TestLog_Send(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(logger.NewWithWriter(&buf, 0))

	require.NoError(t, l.Send(context.Background(), model.Message{To: "a@example.com", Subject: "s", Body: "b"}))
	assert.Contains(t, buf.String(), "to=a@example.com")
}
