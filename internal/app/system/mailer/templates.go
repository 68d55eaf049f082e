// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// WelcomeEmailData fills the registration email.
type WelcomeEmailData struct {
	SiteName string
	Username string
	BaseURL  string
}

// RecoveryEmailData fills the password recovery email.
type RecoveryEmailData struct {
	SiteName  string
	Username  string
	Code      string
	ExpiresIn string // e.g., "15 minutes"
}

// BuildWelcomeEmail returns the message sent after registration.
func BuildWelcomeEmail(to string, data WelcomeEmailData) Email {
	var text bytes.Buffer
	fmt.Fprintf(&text, "Hi %s,\n\n", data.Username)
	fmt.Fprintf(&text, "Welcome to %s! Your account is ready.\n", data.SiteName)
	if data.BaseURL != "" {
		fmt.Fprintf(&text, "Start sharing recipes at %s\n", data.BaseURL)
	}
	text.WriteString("\nHappy cooking!\n")

	return Email{
		To:       to,
		Subject:  fmt.Sprintf("Welcome to %s", data.SiteName),
		TextBody: text.String(),
		HTMLBody: render(welcomeHTML, data),
	}
}

// BuildRecoveryEmail returns the message carrying a recovery code.
func BuildRecoveryEmail(to string, data RecoveryEmailData) Email {
	var text bytes.Buffer
	fmt.Fprintf(&text, "Hi %s,\n\n", data.Username)
	fmt.Fprintf(&text, "Your %s password recovery code is: %s\n\n", data.SiteName, data.Code)
	fmt.Fprintf(&text, "This code expires in %s.\n\n", data.ExpiresIn)
	text.WriteString("If you did not ask to reset your password, you can ignore this email.\n")

	return Email{
		To:       to,
		Subject:  fmt.Sprintf("Your %s recovery code", data.SiteName),
		TextBody: text.String(),
		HTMLBody: render(recoveryHTML, data),
	}
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

var welcomeHTML = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 480px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="margin: 0 0 16px; font-size: 22px; color: #b45309;">{{.SiteName}}</h1>
    <p style="font-size: 16px; color: #374151;">Hi {{.Username}}, welcome aboard! Your account is ready.</p>
    {{if .BaseURL}}<p style="font-size: 14px;"><a href="{{.BaseURL}}" style="color: #b45309;">Start sharing recipes</a></p>{{end}}
  </div>
</body>
</html>`))

var recoveryHTML = template.Must(template.New("recovery").Parse(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 480px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="margin: 0 0 16px; font-size: 22px; color: #b45309;">{{.SiteName}}</h1>
    <p style="font-size: 16px; color: #374151;">Hi {{.Username}}, your password recovery code is:</p>
    <div style="background-color: #f3f4f6; border-radius: 8px; padding: 20px; text-align: center;">
      <span style="font-size: 30px; font-weight: 700; letter-spacing: 8px; font-family: 'Courier New', monospace;">{{.Code}}</span>
    </div>
    <p style="font-size: 14px; color: #6b7280;">This code expires in {{.ExpiresIn}}.</p>
  </div>
</body>
</html>`))
