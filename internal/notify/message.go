// Package notify delivers applicant notifications for newly stored
// applications, either in-process or through an asynq queue.
package notify

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/jobboard/internal/types"
)

// ErrNoRecipient is returned when an event carries no applicant email.
var ErrNoRecipient = errors.New("notify: applicant has no email address")

// Message is a rendered email with an HTML body and a plain-text alternative.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

var applicationReceivedTmpl = template.Must(template.New("application_received").Parse(
	`<h2>Application Received</h2>
<p>Dear {{.Applicant.Name}},</p>
<p>Thank you for applying for the <strong>{{.Job.Title}}</strong> position at <strong>{{.Job.Company}}</strong>.</p>
<p>We have received your application and will review it shortly. You will hear from us soon.</p>
<p>Best regards,<br>HR Team</p>
`))

// BuildApplicationReceived renders the confirmation sent to an applicant.
func BuildApplicationReceived(event types.ApplicationEvent) (Message, error) {
	if strings.TrimSpace(event.Applicant.Email) == "" {
		return Message{}, ErrNoRecipient
	}

	var buf bytes.Buffer
	if err := applicationReceivedTmpl.Execute(&buf, event); err != nil {
		return Message{}, fmt.Errorf("failed to render message: %w", err)
	}
	html := buf.String()

	text, err := htmlToText(html)
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      event.Applicant.Email,
		Subject: "Application Received - " + event.Job.Title,
		HTML:    html,
		Text:    text,
	}, nil
}

// htmlToText flattens block elements into paragraphs separated by blank lines.
// Line breaks inside a block are kept.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("br").ReplaceWithHtml("\n")

	var paragraphs []string
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		if p := cleanBlock(s.Text()); p != "" {
			paragraphs = append(paragraphs, p)
		}
	})
	return strings.Join(paragraphs, "\n\n"), nil
}

func cleanBlock(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
