package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/smtp"
	"os"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// BookingConfirmationData feeds the confirmation template.
type BookingConfirmationData struct {
	BookingCode   string
	Summary       string // e.g. "2 seats, Phnom Penh -> Siem Reap" or "Deluxe room, 3 nights"
	When          string
	TotalAmount   float64
	PaymentMethod string
	DetailLink    string
	CancelLink    string
}

// SendBookingConfirmationEmail sends the confirmation with the booking code
// embedded as an inline QR. Runs async so the booking response is not delayed.
func SendBookingConfirmationEmail(to string, data BookingConfirmationData) {
	go func() {
		tmplPath := "templates/booking_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("failed to load email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render email template: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Booking confirmation - "+data.BookingCode)
		m.SetBody("text/html", body.String())

		qrBytes, err := GenerateQRCode(data.BookingCode, 400)
		if err != nil {
			log.Printf("failed to build QR: %v", err)
		} else {
			m.Embed("qr_booking.png",
				gomail.SetCopyFunc(func(w io.Writer) error {
					_, err := w.Write(qrBytes)
					return err
				}),
				gomail.SetHeader(map[string][]string{
					"Content-Type":        {"image/png"},
					"Content-ID":          {"<qr_booking_code>"},
					"Content-Disposition": {"inline"},
				}),
			)
		}

		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}
		d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send confirmation email: %v", err)
		} else {
			log.Printf("confirmation email with QR sent to %s", to)
		}
	}()
}

// SendPasswordResetEmail sends the plain-text reset link.
func SendPasswordResetEmail(to, resetLink string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")

	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{to}
	e.Subject = "Password reset"
	e.Text = []byte(fmt.Sprintf("Open this link to reset your password: %s", resetLink))
	return e.Send(host+":"+port, smtp.PlainAuth("", username, password, host))
}
