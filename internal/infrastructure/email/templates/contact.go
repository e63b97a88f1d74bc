// Package templates provides email template rendering for outbound mail.
package templates

import (
	"bytes"
	"html/template"
	"log"
)

// ContactNotificationProps carries the fields of a contact-form submission
// into the notification email sent to the studio inbox.
type ContactNotificationProps struct {
	Name    string
	Email   string
	Company string
	Message string
}

var contactNotificationTemplate = template.Must(template.New("contactNotification").Parse(`
<!doctype html>
<html lang="en">
  <head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
    <title>New contact request</title>
  </head>
  <body style="font-family: Helvetica, sans-serif; font-size: 16px; line-height: 1.4; background-color: #f4f5f6; margin: 0; padding: 24px;">
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; width: 100%; max-width: 600px; margin: 0 auto;">
      <tr>
        <td style="padding: 24px;">
          <h2 style="margin-top: 0;">New contact request</h2>
          <p style="margin: 4px 0;"><strong>Name:</strong> {{.Name}}</p>
          <p style="margin: 4px 0;"><strong>Email:</strong> {{.Email}}</p>
          {{if .Company}}<p style="margin: 4px 0;"><strong>Company:</strong> {{.Company}}</p>{{end}}
          <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 16px 0;">
          <p style="white-space: pre-wrap;">{{.Message}}</p>
        </td>
      </tr>
    </table>
  </body>
</html>`))

// GetContactNotificationContent renders the contact notification email body.
func GetContactNotificationContent(props ContactNotificationProps) string {
	var buf bytes.Buffer
	if err := contactNotificationTemplate.Execute(&buf, props); err != nil {
		log.Printf("ERROR: Failed to execute contact notification template: %v", err)
		return ""
	}
	return buf.String()
}
