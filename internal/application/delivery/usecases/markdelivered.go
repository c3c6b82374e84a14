package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/tiffin-inc/tiffin/internal/application/delivery/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// MarkDeliveredCommand identifies one meal item of a subscription on one day.
// DeliveryDate is YYYY-MM-DD or an RFC 3339 instant.
type MarkDeliveredCommand struct {
	SubscriptionSID string
	RequesterID     uint
	DeliveryDate    string
	DayOfWeek       string
	MealType        string
	ItemName        string
	Quantity        int
	Notes           string
}

// MarkDeliveredUseCase lets the chef of a subscription confirm that a meal
// was handed over. Repeating the call for the same meal is a no-op.
type MarkDeliveredUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	txManager        db.Transactor
	publisher        events.Publisher
	logger           logger.Interface
	now              func() time.Time
}

func NewMarkDeliveredUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	txManager db.Transactor,
	publisher events.Publisher,
	logger logger.Interface,
) *MarkDeliveredUseCase {
	return &MarkDeliveredUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		txManager:        txManager,
		publisher:        publisher,
		logger:           logger,
		now:              time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (uc *MarkDeliveredUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *MarkDeliveredUseCase) Execute(ctx context.Context, cmd MarkDeliveredCommand) (*dto.MarkDeliveredResult, error) {
	day, err := menuvo.ParseWeekday(cmd.DayOfWeek)
	if err != nil {
		return nil, errors.NewValidationError("invalid day of week", err.Error())
	}
	meal, err := menuvo.ParseMealType(cmd.MealType)
	if err != nil {
		return nil, errors.NewValidationError("invalid meal type", err.Error())
	}
	date, err := parseDeliveryDate(cmd.DeliveryDate)
	if err != nil {
		return nil, err
	}
	if cmd.Quantity < 0 {
		return nil, errors.NewValidationError("quantity cannot be negative")
	}

	var (
		sub     *subscription.Subscription
		record  *delivery.Delivery
		changed bool
	)
	// A concurrent first mark of the same meal loses on the unique key; the
	// second attempt then finds the winner's row.
	for attempt := 0; attempt < 2; attempt++ {
		err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			sub, err = loadSubscription(txCtx, uc.subscriptionRepo, cmd.SubscriptionSID)
			if err != nil {
				return err
			}
			if sub.ChefID() != cmd.RequesterID {
				return subscription.ErrForbidden
			}
			if !sub.Selection().Includes(day, meal) {
				return delivery.ErrNotInSelection
			}

			record, changed, err = uc.markInTx(txCtx, sub, date, day, meal, cmd)
			return err
		})
		if !stderrors.Is(err, delivery.ErrDuplicateDelivery) {
			break
		}
	}
	if err != nil {
		uc.logger.Warnw("mark delivered refused",
			"subscription_id", cmd.SubscriptionSID,
			"requester_id", cmd.RequesterID,
			"day_of_week", cmd.DayOfWeek,
			"meal_type", cmd.MealType,
			"error", err,
		)
		return nil, toAppError(err)
	}

	if changed {
		uc.logger.Infow("meal marked delivered",
			"subscription_id", sub.SID(),
			"delivery_id", record.ID(),
			"delivery_date", biztime.FormatDate(record.DeliveryDate()),
			"day_of_week", record.DayOfWeek(),
			"meal_type", record.MealType(),
			"chef_id", cmd.RequesterID,
		)
		publish(uc.publisher, uc.logger, delivery.NewMarkedDeliveredEvent(record, sub.ContactEmail()))
	}

	return &dto.MarkDeliveredResult{
		Delivery:         dto.ToDeliveryDTO(record),
		AlreadyDelivered: !changed,
	}, nil
}

func (uc *MarkDeliveredUseCase) markInTx(
	ctx context.Context,
	sub *subscription.Subscription,
	date time.Time,
	day menuvo.Weekday,
	meal menuvo.MealType,
	cmd MarkDeliveredCommand,
) (*delivery.Delivery, bool, error) {
	record, err := delivery.NewDelivery(sub, date, day, meal, cmd.ItemName, cmd.Quantity, cmd.Notes)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.deliveryRepo.FindByKey(ctx, record.Key())
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		changed, err := existing.MarkDelivered(cmd.RequesterID, uc.now())
		if err != nil || !changed {
			return existing, false, err
		}
		if err := uc.deliveryRepo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, true, nil
	}

	if _, err := record.MarkDelivered(cmd.RequesterID, uc.now()); err != nil {
		return nil, false, err
	}
	if err := uc.deliveryRepo.Create(ctx, record); err != nil {
		return nil, false, err
	}
	return record, true, nil
}

func parseDeliveryDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.NewValidationError("delivery date is required")
	}
	if d, err := biztime.ParseDate(s); err == nil {
		return d, nil
	}
	instant, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.NewValidationError("delivery date must be YYYY-MM-DD or RFC 3339", err.Error())
	}
	return biztime.DateOf(instant), nil
}

func publish(p events.Publisher, log logger.Interface, event events.DomainEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(event); err != nil {
		log.Warnw("failed to publish event", "event_type", event.EventType(), "aggregate_id", event.AggregateID(), "error", err)
	}
}
