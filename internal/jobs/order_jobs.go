package jobs

import (
	"context"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
)

// MarkLateOrders flips DELIVERED orders past their end date to LATE and
// accrues one day of late fee per run. Orders already LATE keep accruing.
func (jr *JobRunner) MarkLateOrders() {
	jr.runWithRecovery("MarkLateOrders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		orders, err := jr.store.OrderRepository.ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue orders", "error", err)
			return
		}

		marked := 0
		for _, order := range orders {
			if order.Status == domain.OrderStatusDelivered {
				if err := jr.store.OrderRepository.UpdateStatus(ctx, order.ID, domain.OrderStatusLate); err != nil {
					logger.Error("Failed to mark order late", "order_id", order.ID, "error", err)
					continue
				}
				marked++
				jr.sendLateNotice(ctx, order)
			}

			if err := jr.store.OrderRepository.AccrueLateFee(ctx, order.ID, jr.config.Pricing.LateFeePerDayCents); err != nil {
				logger.Error("Failed to accrue late fee", "order_id", order.ID, "error", err)
			}
		}

		logger.Info("Marked orders late", "marked", marked, "overdue", len(orders))
	})
}

func (jr *JobRunner) sendLateNotice(ctx context.Context, order domain.RentalOrder) {
	orderID := order.ID
	note := &domain.Notification{
		UserID:  order.CustomerID,
		Type:    domain.NotificationTypeLateNotice,
		Title:   "Rental overdue",
		Message: "Your rental of " + order.ProductName + " was due back on " + order.EndDate + ". Late fees now apply.",
		OrderID: &orderID,
	}
	if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
		logger.Error("Failed to create late notification", "order_id", order.ID, "error", err)
	}

	customer, err := jr.store.UserRepository.GetByID(ctx, order.CustomerID)
	if err != nil {
		logger.Error("Failed to load customer for late notice", "order_id", order.ID, "error", err)
		return
	}
	if err := jr.email.SendLateNotice(ctx, customer.Email, customer.Name, order.ProductName, jr.config.Pricing.LateFeePerDayCents); err != nil {
		logger.Error("Failed to send late notice email", "order_id", order.ID, "error", err)
	}
}

// SendReturnReminders notifies customers whose rentals are due back within
// the next day.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		orders, err := jr.store.OrderRepository.ListDueSoon(ctx, now, 24*time.Hour)
		if err != nil {
			logger.Error("Failed to list orders due soon", "error", err)
			return
		}

		sent := 0
		for _, order := range orders {
			orderID := order.ID
			endDate := order.EndDate
			note := &domain.Notification{
				UserID:       order.CustomerID,
				Type:         domain.NotificationTypeReturnReminder,
				Title:        "Return due tomorrow",
				Message:      "Your rental of " + order.ProductName + " is due back on " + order.EndDate + ".",
				OrderID:      &orderID,
				ScheduledFor: &endDate,
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create return reminder", "order_id", order.ID, "error", err)
				continue
			}

			customer, err := jr.store.UserRepository.GetByID(ctx, order.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder", "order_id", order.ID, "error", err)
				continue
			}
			if err := jr.email.SendReturnReminder(ctx, customer.Email, customer.Name, order.ProductName, order.EndDate); err != nil {
				logger.Error("Failed to send reminder email", "order_id", order.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent return reminders", "sent", sent, "due", len(orders))
	})
}
