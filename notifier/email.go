package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	gomail "gopkg.in/mail.v2"
)

// EmailNotifier handles sending email notifications
type EmailNotifier struct {
	smtpHost       string
	smtpPort       int
	senderEmail    string
	senderPass     string
	recipientEmail string
	htmlTemplate   *template.Template
}

// EmailConfig contains configuration for email notifications
type EmailConfig struct {
	SMTPHost       string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string
	RecipientEmail string
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(config EmailConfig) (*EmailNotifier, error) {
	tmpl, err := template.New("email").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Cine Trivia - Import Run Summary</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; }
        h1 { color: #e50914; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
        th { background-color: #f4f4f4; text-align: left; padding: 10px; }
        td { padding: 10px; border-bottom: 1px solid #ddd; }
        .count { font-weight: bold; color: #e50914; }
        .footer { font-size: 12px; color: #666; margin-top: 50px; text-align: center; }
    </style>
</head>
<body>
    <h1>Cine Trivia - Import Run Summary</h1>
    <p>The catalog import finished on {{.Date}} in {{.Duration}}.</p>

    <table>
        <tr>
            <th>Table</th>
            <th>Rows</th>
        </tr>
        <tr><td>Ranked movies</td><td class="count">{{.PopularMovies}}</td></tr>
        <tr><td>Ranked TV shows</td><td class="count">{{.PopularTV}}</td></tr>
        <tr><td>Enriched movies</td><td class="count">{{.MovieDetails}}</td></tr>
        <tr><td>Enriched TV shows</td><td class="count">{{.TVDetails}}</td></tr>
        <tr><td>People</td><td class="count">{{.People}}</td></tr>
    </table>

    <div class="footer">
        <p>This is an automated email from Cine Trivia. Please do not reply.</p>
    </div>
</body>
</html>
`)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %v", err)
	}

	return &EmailNotifier{
		smtpHost:       config.SMTPHost,
		smtpPort:       config.SMTPPort,
		senderEmail:    config.SenderEmail,
		senderPass:     config.SenderPassword,
		recipientEmail: config.RecipientEmail,
		htmlTemplate:   tmpl,
	}, nil
}

// GetEmailConfigFromEnv loads email configuration from environment variables
func GetEmailConfigFromEnv() EmailConfig {
	// Parse SMTP port with default value of 587 if not specified or invalid
	smtpPort := 587
	if portStr := os.Getenv("EMAIL_SMTP_PORT"); portStr != "" {
		if p, err := fmt.Sscanf(portStr, "%d", &smtpPort); err != nil || p != 1 {
			log.Printf("Invalid SMTP port '%s', using default 587", portStr)
			smtpPort = 587
		}
	}

	return EmailConfig{
		SMTPHost:       os.Getenv("EMAIL_SMTP_HOST"),
		SMTPPort:       smtpPort,
		SenderEmail:    os.Getenv("EMAIL_SENDER"),
		SenderPassword: os.Getenv("EMAIL_PASSWORD"),
		RecipientEmail: os.Getenv("EMAIL_RECIPIENT"),
	}
}

// NotifyRunComplete sends an email summarizing a finished import run.
func (n *EmailNotifier) NotifyRunComplete(stats map[string]int, duration time.Duration) error {
	if n.recipientEmail == "" {
		log.Println("No recipient email configured, skipping notification")
		return nil
	}

	data := struct {
		Date          string
		Duration      string
		PopularMovies int
		PopularTV     int
		MovieDetails  int
		TVDetails     int
		People        int
	}{
		Date:          time.Now().Format("January 2, 2006 at 3:04 PM"),
		Duration:      duration.Round(time.Second).String(),
		PopularMovies: stats["popular_movies"],
		PopularTV:     stats["popular_tv"],
		MovieDetails:  stats["movie_details"],
		TVDetails:     stats["tv_details"],
		People:        stats["people"],
	}

	var emailBody bytes.Buffer
	if err := n.htmlTemplate.Execute(&emailBody, data); err != nil {
		return fmt.Errorf("failed to render email template: %v", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.senderEmail)
	m.SetHeader("To", n.recipientEmail)
	m.SetHeader("Subject", fmt.Sprintf("Cine Trivia: import run finished (%d movies, %d TV shows enriched)",
		data.MovieDetails, data.TVDetails))

	plainText := fmt.Sprintf(
		"Cine Trivia Import Run Summary\n\n"+
			"Finished on %s in %s.\n"+
			"Ranked movies: %d\nRanked TV shows: %d\n"+
			"Enriched movies: %d\nEnriched TV shows: %d\nPeople: %d\n\n"+
			"This is an automated email from Cine Trivia. Please do not reply.",
		data.Date, data.Duration, data.PopularMovies, data.PopularTV,
		data.MovieDetails, data.TVDetails, data.People)

	m.SetBody("text/plain", plainText)
	m.AddAlternative("text/html", emailBody.String())

	d := gomail.NewDialer(n.smtpHost, n.smtpPort, "api", n.senderPass)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Run summary email sent to %s", n.recipientEmail)
	return nil
}
