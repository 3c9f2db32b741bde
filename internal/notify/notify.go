// Package notify builds the subject lines and bodies for every tenant
// notification. Delivery itself happens in the worker pool; this package is
// pure string assembly so it stays trivially testable.
package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"kgwahlawifi/internal/model"
)

const signature = "<p>Best regards,<br>Kgwahla Wi-Fi Management Team</p>"

func wrap(body string) string {
	return `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">` + body + signature + `</div>`
}

// Welcome is sent after a successful registration.
func Welcome(t *model.Tenant) (subject, body string) {
	subject = "Welcome to Kgwahla Wi-Fi Management System"
	body = wrap(fmt.Sprintf(`
<h2 style="color: #2563eb;">Welcome to Kgwahla Wi-Fi!</h2>
<p>Dear %s,</p>
<p>Thank you for registering with the Kgwahla Wi-Fi Management System.</p>
<p><strong>Your Details:</strong></p>
<ul>
  <li>Name: %s</li>
  <li>Room: %s</li>
  <li>ID Number: %s</li>
  <li>MAC Address: %s</li>
</ul>
<p><strong>Next Steps:</strong></p>
<ol>
  <li>Submit your payment proof to activate WiFi access</li>
  <li>Wait for admin approval</li>
  <li>Connect to the WiFi network</li>
</ol>
<p>If you have any questions, please contact the admin office.</p>`,
		html.EscapeString(t.Name), html.EscapeString(t.Name),
		html.EscapeString(t.RoomNumber), t.IDNumber, t.MACAddress))
	return subject, body
}

// WelcomeSMS is the short-form registration confirmation.
func WelcomeSMS(t *model.Tenant) string {
	return fmt.Sprintf("Welcome %s! Your Kgwahla Wi-Fi registration is complete. Room: %s. Please submit payment to activate WiFi.",
		t.Name, t.RoomNumber)
}

// Activation is sent when an admin approves a payment or activates a tenant.
func Activation(t *model.Tenant, networkName string) (subject, body string) {
	subject = "WiFi Access Activated - Kgwahla Wi-Fi"
	body = wrap(fmt.Sprintf(`
<h2 style="color: #16a34a;">WiFi Access Activated!</h2>
<p>Dear %s,</p>
<p>Great news! Your payment has been approved and your WiFi access is now active.</p>
<p><strong>Connection Details:</strong></p>
<ul>
  <li>Network Name: %s</li>
  <li>Room: %s</li>
  <li>MAC Address: %s</li>
  <li>Expiry Date: %s</li>
</ul>
<p>You can now connect to the WiFi network. If you experience any issues, please contact the admin office.</p>`,
		html.EscapeString(t.Name), html.EscapeString(networkName),
		html.EscapeString(t.RoomNumber), t.MACAddress,
		t.ExpiryDate.Format("2006-01-02")))
	return subject, body
}

// ActivationSMS is the short-form activation notice.
func ActivationSMS(t *model.Tenant, networkName string) string {
	return fmt.Sprintf("WiFi Activated! %s, your payment is approved. Network: %s. Expires: %s. Enjoy your connection!",
		t.Name, networkName, t.ExpiryDate.Format("2006-01-02"))
}

// ExpiryReminder is sent by the daily sweep when access has expired or is
// about to.
func ExpiryReminder(t *model.Tenant, now time.Time) (subject, body string) {
	if t.ExpiryDate.Before(now) || t.ExpiryDate.Equal(now) {
		subject = "WiFi Access Expired - Kgwahla Wi-Fi"
		body = wrap(fmt.Sprintf(`
<h2 style="color: #dc2626;">WiFi Access Expired</h2>
<p>Dear %s,</p>
<p>Your WiFi access expired on %s and has been disabled.</p>
<p>Please submit a new payment to restore your connection.</p>`,
			html.EscapeString(t.Name), t.ExpiryDate.Format("2006-01-02")))
		return subject, body
	}
	subject = "WiFi Access Expiring Soon - Kgwahla Wi-Fi"
	body = wrap(fmt.Sprintf(`
<h2 style="color: #d97706;">WiFi Access Expiring Soon</h2>
<p>Dear %s,</p>
<p>Your WiFi access expires on %s.</p>
<p>Please submit your next payment before then to avoid interruption.</p>`,
		html.EscapeString(t.Name), t.ExpiryDate.Format("2006-01-02")))
	return subject, body
}

// PasswordReset carries the reset link; the token is valid for one hour.
func PasswordReset(t *model.Tenant, link string) (subject, body string) {
	subject = "Password Reset - Kgwahla Wi-Fi"
	body = wrap(fmt.Sprintf(`
<h2 style="color: #2563eb;">Password Reset Request</h2>
<p>Dear %s,</p>
<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in 1 hour.</p>
<p><a href="%s">%s</a></p>
<p>If you did not request this, you can ignore this email.</p>`,
		html.EscapeString(t.Name), link, link))
	return subject, body
}

// ContactMessage relays a contact-form submission to the admin inbox.
func ContactMessage(name, fromEmail, subjectLine, message string) (subject, body string) {
	if subjectLine == "" {
		subjectLine = "No Subject"
	}
	subject = "Contact Form: " + subjectLine
	body = wrap(fmt.Sprintf(`
<h2 style="color: #333;">New Contact Form Message</h2>
<div style="background: #f5f5f5; padding: 20px; border-radius: 8px;">
  <p><strong>From:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Subject:</strong> %s</p>
  <p><strong>Message:</strong></p>
  <div style="background: white; padding: 15px; border-radius: 4px; border-left: 4px solid #007bff;">%s</div>
</div>`,
		html.EscapeString(name), html.EscapeString(fromEmail),
		html.EscapeString(subjectLine),
		strings.ReplaceAll(html.EscapeString(message), "\n", "<br>")))
	return subject, body
}
