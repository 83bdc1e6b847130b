package service

import (
	"context"
	"fmt"

	"rentmart-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendWelcome(ctx context.Context, email, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour RentMart account is ready. Browse products and start renting today.\n\nBest regards,\nThe RentMart Team", name)
	return s.send(ctx, email, name, "Welcome to RentMart", body)
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, email, name, reference, productName string, totalCents int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s is confirmed.\n\nOrder reference: %s\nTotal charged: %s\n\nBest regards,\nThe RentMart Team",
		name, productName, reference, formatCents(totalCents))
	return s.send(ctx, email, name, fmt.Sprintf("Order confirmed - %s", reference), body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name, productName, endDate string) error {
	body := fmt.Sprintf("Hello %s,\n\nA reminder that your rental of %s is due back on %s.\n\nBest regards,\nThe RentMart Team",
		name, productName, endDate)
	return s.send(ctx, email, name, "Return reminder", body)
}

func (s *emailService) SendLateNotice(ctx context.Context, email, name, productName string, lateFeeCents int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s is overdue. A late fee of %s has been applied. Please arrange a return as soon as possible.\n\nBest regards,\nThe RentMart Team",
		name, productName, formatCents(lateFeeCents))
	return s.send(ctx, email, name, "Overdue rental notice", body)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
