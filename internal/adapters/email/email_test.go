package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbooking/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeSES struct {
	last *ses.SendEmailInput
	err  error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := &sesMailer{client: client, fromAddress: "noreply@example.com", fromName: "Event Booking", logger: testLogger}

	err := m.Send(context.Background(), "alice@example.com", "Hello", "<p>hi</p>", "hi")
	require.NoError(t, err)
	require.NotNil(t, client.last)
	assert.Equal(t, "Event Booking <noreply@example.com>", aws.ToString(client.last.Source))
	assert.Equal(t, []string{"alice@example.com"}, client.last.Destination.ToAddresses)
	assert.Equal(t, "Hello", aws.ToString(client.last.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(client.last.Message.Body.Html.Data))
	assert.Equal(t, "hi", aws.ToString(client.last.Message.Body.Text.Data))
}

func TestSESMailer_Send_TextOnly(t *testing.T) {
	client := &fakeSES{}
	m := &sesMailer{client: client, fromAddress: "noreply@example.com", logger: testLogger}

	require.NoError(t, m.Send(context.Background(), "a@b.com", "S", "", "plain"))
	assert.Equal(t, "noreply@example.com", aws.ToString(client.last.Source))
	assert.Nil(t, client.last.Message.Body.Html)
}

func TestSESMailer_Send_Error(t *testing.T) {
	m := &sesMailer{client: &fakeSES{err: errors.New("throttled")}, fromAddress: "x@y.com", logger: testLogger}
	err := m.Send(context.Background(), "a@b.com", "S", "", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "noop"}, testLogger)
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)
	require.NoError(t, m.Send(context.Background(), "a@b.com", "s", "h", "t"))

	m, err = NewMailer(MailerConfig{Provider: "carrier-pigeon"}, testLogger)
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)

	_, err = NewMailer(MailerConfig{Provider: "ses", FromAddress: "x@y.com"}, testLogger)
	require.Error(t, err, "region is required")

	m, err = NewMailer(MailerConfig{Provider: "ses", FromAddress: "x@y.com", SES: SESConfig{Region: "eu-west-1"}}, testLogger)
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)
}

func TestTemplateRenderer_Render(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	subject, html, text, err := r.Render(domain.TemplateBookingConfirmation, &domain.BookingConfirmationEmailData{
		Email:      "alice@example.com",
		Username:   "alice",
		EventTitle: "Go <Meetup>",
		EventDate:  "2025-06-01",
		Code:       "abc-123",
		QRCodeURL:  "/uploads/qrcodes/1-abc-123.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your booking for Go <Meetup>", subject)
	assert.Contains(t, html, "Go &lt;Meetup&gt;", "html body must be escaped")
	assert.Contains(t, html, "/uploads/qrcodes/1-abc-123.png")
	assert.Contains(t, text, "Ticket code: abc-123")

	subject, _, text, err = r.Render(domain.TemplateWelcome, &domain.WelcomeMessageEmailData{Email: "a@b.com", Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Event Booking, bob", subject)
	assert.Contains(t, text, "Hi bob")
}

func TestTemplateRenderer_SubjectStaysOnOneLine(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	subject, _, _, err := r.Render(domain.TemplateBookingConfirmation, &domain.BookingConfirmationEmailData{
		Email:      "alice@example.com",
		EventTitle: "Launch\r\nBcc: someone@example.com",
		Code:       "c",
	})
	require.NoError(t, err)
	assert.NotContains(t, subject, "\n")
	assert.NotContains(t, subject, "\r")
	assert.Equal(t, "Your booking for Launch Bcc: someone@example.com", subject)
}

func TestTemplateRenderer_Rejects(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	tests := []struct {
		name     string
		template string
		data     any
		wantErr  error
		wantMsg  string
	}{
		{"unknown name", "password_reset", &domain.WelcomeMessageEmailData{}, ErrUnknownTemplate, "password_reset"},
		{"path in name", "../welcome", &domain.WelcomeMessageEmailData{}, ErrUnknownTemplate, ""},
		{"wrong payload", domain.TemplateWelcome, &domain.BookingConfirmationEmailData{}, nil, "unexpected data"},
		{"nil payload", domain.TemplateBookingConfirmation, (*domain.BookingConfirmationEmailData)(nil), nil, "unexpected data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := r.Render(tt.template, tt.data)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewTemplateRenderer_BrokenSet(t *testing.T) {
	complete := fstest.MapFS{
		"welcome_subject.txt":              {Data: []byte("Hi {{.Username}}")},
		"welcome.html":                     {Data: []byte("<p>{{.Username}}</p>")},
		"welcome.txt":                      {Data: []byte("{{.Username}}")},
		"booking_confirmation_subject.txt": {Data: []byte("{{.EventTitle}}")},
		"booking_confirmation.html":        {Data: []byte("<p>{{.Code}}</p>")},
		"booking_confirmation.txt":         {Data: []byte("{{.Code}}")},
	}
	_, err := newTemplateRenderer(complete)
	require.NoError(t, err)

	missing := fstest.MapFS{}
	for k, v := range complete {
		if k != "booking_confirmation.html" {
			missing[k] = v
		}
	}
	_, err = newTemplateRenderer(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "booking_confirmation html")

	malformed := fstest.MapFS{}
	for k, v := range complete {
		malformed[k] = v
	}
	malformed["welcome.txt"] = &fstest.MapFile{Data: []byte("{{.Username")}
	_, err = newTemplateRenderer(malformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "welcome text")
}
