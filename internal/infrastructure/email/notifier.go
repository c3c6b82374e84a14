package email

import (
	"context"
	"fmt"
	"html"

	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// SubscriptionNotifier mails the subscriber when their subscription changes
// status, is renewed or has a meal delivered. Subscriptions without a contact email are skipped.
type SubscriptionNotifier struct {
	sender   Sender
	currency string
	logger   logger.Interface
}

func NewSubscriptionNotifier(sender Sender, currency string, logger logger.Interface) *SubscriptionNotifier {
	return &SubscriptionNotifier{
		sender:   sender,
		currency: currency,
		logger:   logger,
	}
}

// Register subscribes the notifier's handlers on d.
func (n *SubscriptionNotifier) Register(d *events.Dispatcher) error {
	if err := d.Subscribe(subscription.EventStatusChanged, n.HandleStatusChanged); err != nil {
		return err
	}
	if err := d.Subscribe(subscription.EventRenewed, n.HandleRenewed); err != nil {
		return err
	}
	return d.Subscribe(delivery.EventMarkedDelivered, n.HandleMarkedDelivered)
}

func (n *SubscriptionNotifier) HandleStatusChanged(_ context.Context, event events.DomainEvent) error {
	e, ok := event.(subscription.StatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}
	if e.ContactEmail == "" {
		n.logger.Debugw("no contact email, skipping status notification", "subscription_sid", e.AggregateID())
		return nil
	}

	subject := fmt.Sprintf("Your subscription is now %s", e.NewStatus)
	plain := fmt.Sprintf("Subscription %s changed from %s to %s.\n", e.AggregateID(), e.OldStatus, e.NewStatus)
	body := fmt.Sprintf(`<html><body>
<h2>Subscription update</h2>
<p>Subscription <code>%s</code> changed from <strong>%s</strong> to <strong>%s</strong>.</p>
</body></html>`, html.EscapeString(e.AggregateID()), html.EscapeString(e.OldStatus), html.EscapeString(e.NewStatus))

	if err := n.sender.Send(e.ContactEmail, subject, body, plain); err != nil {
		return fmt.Errorf("status notification for %s: %w", e.AggregateID(), err)
	}

	n.logger.Infow("status notification sent", "subscription_sid", e.AggregateID(), "status", e.NewStatus)
	return nil
}

func (n *SubscriptionNotifier) HandleRenewed(_ context.Context, event events.DomainEvent) error {
	e, ok := event.(subscription.RenewedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}
	if e.ContactEmail == "" {
		n.logger.Debugw("no contact email, skipping renewal notification", "subscription_sid", e.AggregateID())
		return nil
	}

	endDate := biztime.FormatDate(e.NewEndDate)
	amount := fmt.Sprintf("%s %s", e.TotalPrice.StringFixed(2), n.currency)

	subject := "Your subscription has been renewed"
	plain := fmt.Sprintf("Subscription %s now runs until %s. Amount billed: %s.\n", e.AggregateID(), endDate, amount)
	body := fmt.Sprintf(`<html><body>
<h2>Subscription renewed</h2>
<p>Subscription <code>%s</code> now runs until <strong>%s</strong>.</p>
<p>Amount billed: %s</p>
</body></html>`, html.EscapeString(e.AggregateID()), endDate, html.EscapeString(amount))

	if err := n.sender.Send(e.ContactEmail, subject, body, plain); err != nil {
		return fmt.Errorf("renewal notification for %s: %w", e.AggregateID(), err)
	}

	n.logger.Infow("renewal notification sent", "subscription_sid", e.AggregateID(), "end_date", endDate)
	return nil
}

func (n *SubscriptionNotifier) HandleMarkedDelivered(_ context.Context, event events.DomainEvent) error {
	e, ok := event.(delivery.MarkedDeliveredEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}
	if e.ContactEmail == "" {
		n.logger.Debugw("no contact email, skipping delivery notification", "subscription_sid", e.AggregateID())
		return nil
	}

	date := biztime.FormatDate(e.DeliveryDate)
	subject := fmt.Sprintf("Your %s has been delivered", e.MealType)
	plain := fmt.Sprintf("%d x %s (%s, %s %s) was delivered for subscription %s.\n",
		e.Quantity, e.ItemName, date, e.DayOfWeek, e.MealType, e.AggregateID())
	body := fmt.Sprintf(`<html><body>
<h2>Meal delivered</h2>
<p><strong>%d x %s</strong> for %s %s on %s was delivered.</p>
<p>Subscription <code>%s</code></p>
</body></html>`, e.Quantity, html.EscapeString(e.ItemName), html.EscapeString(e.DayOfWeek),
		html.EscapeString(e.MealType), date, html.EscapeString(e.AggregateID()))

	if err := n.sender.Send(e.ContactEmail, subject, body, plain); err != nil {
		return fmt.Errorf("delivery notification for %s: %w", e.AggregateID(), err)
	}

	n.logger.Infow("delivery notification sent", "subscription_sid", e.AggregateID(), "delivery_date", date, "meal_type", e.MealType)
	return nil
}
