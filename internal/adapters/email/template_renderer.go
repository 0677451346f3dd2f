package email

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"eventbooking/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// ErrUnknownTemplate is returned by Render for a name outside the known set.
var ErrUnknownTemplate = errors.New("unknown email template")

// knownTemplates maps every template the service sends to a check on its data.
var knownTemplates = map[string]func(data any) bool{
	domain.TemplateWelcome: func(data any) bool {
		d, ok := data.(*domain.WelcomeMessageEmailData)
		return ok && d != nil
	},
	domain.TemplateBookingConfirmation: func(data any) bool {
		d, ok := data.(*domain.BookingConfirmationEmailData)
		return ok && d != nil
	},
}

// templateSet is the parsed subject, html and text parts of one email.
type templateSet struct {
	subject *texttemplate.Template
	html    *template.Template
	text    *texttemplate.Template
	accepts func(data any) bool
}

// templateRenderer implements domain.EmailTemplateRenderer using embedded template files.
type templateRenderer struct {
	sets map[string]templateSet
}

// NewTemplateRenderer parses the embedded templates for every known email.
// A missing or malformed file is reported here rather than on first send.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return newTemplateRenderer(sub)
}

func newTemplateRenderer(fsys fs.FS) (*templateRenderer, error) {
	r := &templateRenderer{sets: make(map[string]templateSet, len(knownTemplates))}
	for name, accepts := range knownTemplates {
		set := templateSet{accepts: accepts}
		var err error
		if set.subject, err = texttemplate.ParseFS(fsys, name+"_subject.txt"); err != nil {
			return nil, fmt.Errorf("parse %s subject: %w", name, err)
		}
		if set.html, err = template.ParseFS(fsys, name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s html: %w", name, err)
		}
		if set.text, err = texttemplate.ParseFS(fsys, name+".txt"); err != nil {
			return nil, fmt.Errorf("parse %s text: %w", name, err)
		}
		r.sets[name] = set
	}
	return r, nil
}

// Render executes the named template with data and returns subject, html, and text bodies.
// The data must be the payload type that belongs to the template.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	set, ok := r.sets[templateName]
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, templateName)
	}
	if !set.accepts(data) {
		return "", "", "", fmt.Errorf("template %q: unexpected data %T", templateName, data)
	}

	var buf bytes.Buffer
	if err := set.subject.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	// Header values must stay on one line.
	subject = strings.Join(strings.Fields(buf.String()), " ")

	buf.Reset()
	if err := set.html.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := set.text.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return subject, htmlBody, buf.String(), nil
}
