package alert

import (
	"context"
	"fmt"

	"service-foodrescue/internal/domain"
	"service-foodrescue/internal/geo"
	"service-foodrescue/internal/logx"
	"service-foodrescue/internal/realtime"
)

// resolveOrigin finds the pickup coordinates for ranking. A failed
// geocode is not an error; ranking degrades to input order.
func (e *Engine) resolveOrigin(ctx context.Context, r *domain.Restaurant) *domain.Coordinates {
	if r == nil {
		return nil
	}
	if r.Coordinates != nil {
		return r.Coordinates
	}
	if e.deps.Geocoder == nil || r.Address == "" {
		return nil
	}
	coords, err := e.deps.Geocoder.Geocode(ctx, r.Address)
	if err != nil {
		e.deps.Logger.Debug("origin geocode failed",
			logx.String("restaurant_id", r.ID),
			logx.Err(err),
		)
		return nil
	}
	return &coords
}

// notifyCandidates picks the nearest food bank not yet tried, records
// it on the exclusion list, publishes the offer to its room and arms
// the escalation timer. An exhausted pool expires the alert.
func (e *Engine) notifyCandidates(ctx context.Context, a *domain.Alert, origin *domain.Coordinates, escalated bool) error {
	active, err := e.deps.Directory.ActiveFoodBanks(ctx)
	if err != nil {
		return fmt.Errorf("list foodbanks: %w", err)
	}
	candidates := make([]*domain.FoodBank, 0, len(active))
	for _, fb := range active {
		if !a.Notified(fb.ID) {
			candidates = append(candidates, fb)
		}
	}
	if len(candidates) == 0 {
		return e.expire(ctx, a)
	}

	ranked := geo.Rank(origin, candidates, func(fb *domain.FoodBank) *domain.Coordinates {
		return fb.Coordinates
	})
	pick := ranked[0]

	a.AppendNotified(pick.Candidate.ID)
	a.Status = domain.StatusFoodBankNotified
	if err := e.deps.Alerts.Update(ctx, a); err != nil {
		return fmt.Errorf("update alert: %w", err)
	}

	payload := map[string]any{"alert": a, "is_escalated": escalated}
	if pick.Resolved {
		payload["distance_km"] = pick.Km
	}
	e.deps.Publisher.Publish(realtime.FoodBankTopic(pick.Candidate.ID), "new_alert", payload)
	e.deps.Timers.Arm(a.ID)

	e.deps.Logger.Info("foodbank notified",
		logx.String("alert_id", a.ID),
		logx.String("foodbank_id", pick.Candidate.ID),
		logx.Any("escalated", escalated),
	)
	return nil
}
