// Package notify publishes committed match decisions to the fleet over
// MQTT. Delivery is best-effort: a failed publish is logged and never rolls
// back a commit.
package notify

import "github.com/example/ridepool/core/model"

// Notifier pushes a committed match decision towards the assigned vehicle.
type Notifier interface {
	NotifyMatch(res model.MatchResult) error
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyMatch(model.MatchResult) error { return nil }
