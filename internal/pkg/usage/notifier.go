package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/landmark-crm/landmark/app/models"
	"github.com/landmark-crm/landmark/internal/pkg/events"
	"github.com/landmark-crm/landmark/internal/pkg/mail"
)

// dedupe window for repeated alerts on the same (subscription, resource, level).
const alertDedupeTTL = 24 * time.Hour

// Start subscribes the tracker to the change-event stream and writes user
// notifications for raised alerts in a background worker. Stop() waits for
// the worker to drain.
func (t *Tracker) Start() {
	if t.bus == nil {
		return
	}
	ch := t.bus.Subscribe(events.KindUsageRecorded, events.KindSubscriptionChanged)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		log.Info("[Usage] Alert notifier running")
		for ev := range ch {
			t.handleEvent(ev)
		}
		log.Info("[Usage] Alert notifier stopped")
	}()
}

// Stop waits for the notifier worker to finish. The event bus must be
// closed first; closing it ends the subscription channel.
func (t *Tracker) Stop() {
	t.wg.Wait()
}

func (t *Tracker) handleEvent(ev events.Event) {
	if ev.SubscriptionID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	alerts, err := t.AlertsFor(ctx, ev.SubscriptionID)
	if err != nil {
		log.Errorf("[Usage] Alert evaluation for %s failed: %v", ev.SubscriptionID, err)
		return
	}
	if len(alerts) == 0 {
		return
	}

	userID, err := t.ownerOf(ev)
	if err != nil {
		log.Errorf("[Usage] Owner lookup for %s failed: %v", ev.SubscriptionID, err)
		return
	}

	for _, alert := range alerts {
		if t.alreadyNotified(ctx, alert) {
			continue
		}
		if err := t.repos.Notification.Create(notificationForAlert(userID, alert)); err != nil {
			log.Errorf("[Usage] Notification write for %s/%s failed: %v",
				alert.SubscriptionID, alert.Resource, err)
			continue
		}
		t.sendAlertMail(userID, alert)
	}
}

// sendAlertMail delivers the alert by email best-effort. The in-app
// notification is already written; a delivery failure only logs.
func (t *Tracker) sendAlertMail(userID uint, alert Alert) {
	user, err := t.repos.User.GetByID(userID)
	if err != nil || user.Email == "" {
		return
	}
	subject := fmt.Sprintf("Usage alert: %s at %.0f%% of your plan limit", alert.Resource, alert.Percent)
	body := fmt.Sprintf("<p>Your %s usage has reached %d of %d (%.0f%%).</p>",
		alert.Resource, alert.Usage, alert.Limit, alert.Percent)
	if err := mail.SendMail(user.Email, subject, body); err != nil {
		log.Warnf("[Usage] Alert mail to user %d failed: %v", userID, err)
	}
}

func (t *Tracker) ownerOf(ev events.Event) (uint, error) {
	if ev.UserID != 0 {
		return ev.UserID, nil
	}
	sub, err := t.repos.Subscription.GetByID(ev.SubscriptionID)
	if err != nil {
		return 0, err
	}
	return sub.UserID, nil
}

// alreadyNotified dedupes repeated alerts through the cache. Without a
// cache every evaluation notifies again.
func (t *Tracker) alreadyNotified(ctx context.Context, alert Alert) bool {
	if t.cache == nil {
		return false
	}
	key := fmt.Sprintf("usage_alert:%s:%s:%s", alert.SubscriptionID, alert.Resource, alert.Level)
	ok, err := t.cache.SetNX(ctx, key, "1", alertDedupeTTL)
	if err != nil {
		return false
	}
	return !ok
}

func notificationForAlert(userID uint, alert Alert) *models.Notification {
	notificationType := models.NotificationTypeUsageWarning
	if alert.Level == AlertLevelCritical {
		notificationType = models.NotificationTypeUsageCritical
	}
	return &models.Notification{
		UserID: userID,
		Type:   notificationType,
		Content: fmt.Sprintf("%s usage is at %.0f%% of your plan limit (%d of %d)",
			alert.Resource, alert.Percent, alert.Usage, alert.Limit),
		ReferenceID: alert.SubscriptionID,
	}
}
