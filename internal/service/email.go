package service

import (
	"context"
	"fmt"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey   string
	fromName string
	fromAddr string
}

func NewEmailService(apiKey, fromName, fromAddr string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (s *emailService) send(toAddr, toName, subject, plainText string) error {
	if s.apiKey == "" {
		logger.Warn("sendgrid api key not configured, skipping email", "to", toAddr, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail(toName, toAddr)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email via sendgrid: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *emailService) SendReservationReceived(ctx context.Context, email, name, code string, kind domain.ReservationKind) error {
	body := fmt.Sprintf("Hello %s,\n\nWe received your %s reservation.\n\nReservation Code: %s\n\n"+
		"Our staff will review it shortly; you will be notified of the decision by email.\n\nPetReserve",
		name, kindLabel(kind), code)
	return s.send(email, name, fmt.Sprintf("Reservation %s received", code), body)
}

func (s *emailService) SendDecisionNotification(ctx context.Context, email, name, code, action, notes string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour reservation %s has been %sd.\n", name, code, action)
	if notes != "" {
		body += "\nReviewer notes: " + notes + "\n"
	}
	if action == "approve" {
		body += "\nYou will receive payment instructions next.\n"
	}
	body += "\nPetReserve"
	return s.send(email, name, fmt.Sprintf("Reservation %s: decision", code), body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, name, code string, amountCents int64, currency string) error {
	body := fmt.Sprintf("Hello %s,\n\nPayment of %.2f %s for reservation %s has been confirmed.\n\n"+
		"We will contact you to schedule the handover.\n\nPetReserve",
		name, float64(amountCents)/100, currency, code)
	return s.send(email, name, fmt.Sprintf("Reservation %s: payment confirmed", code), body)
}

func (s *emailService) SendHandoverCode(ctx context.Context, email, name, code string, leg domain.LegKind, otpCode string, expiresAt time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nYour %s code for reservation %s is:\n\n    %s\n\n"+
		"Give this code to the staff member at the counter. It expires at %s.\n\nPetReserve",
		name, legLabel(leg), code, otpCode, expiresAt.Format("15:04 MST, 02 Jan 2006"))
	return s.send(email, name, fmt.Sprintf("Reservation %s: your %s code", code, legLabel(leg)), body)
}

func (s *emailService) SendHandoverCompleted(ctx context.Context, email, name, code string, leg domain.LegKind) error {
	body := fmt.Sprintf("Hello %s,\n\nThe %s for reservation %s is complete. Thank you!\n\nPetReserve",
		name, legLabel(leg), code)
	return s.send(email, name, fmt.Sprintf("Reservation %s: %s complete", code, legLabel(leg)), body)
}

func kindLabel(kind domain.ReservationKind) string {
	switch kind {
	case domain.KindCareBooking:
		return "temporary care"
	case domain.KindOnlineBooking:
		return "online booking"
	case domain.KindOfflineVerification:
		return "in-store purchase"
	default:
		return "marketplace"
	}
}
