package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Service names the upstream provider family that owns a subscription.
type Service string

// Known services. The empty value is treated as ServiceESPN.
const (
	ServiceESPN     Service = "espn"
	ServiceSRNFL    Service = "srnfl"
	ServiceSRSoccer Service = "srsoccer"
)

// Key namespaces in the key-value store.
const (
	infoKeyPrefix = "info:"
	postKeyPrefix = "post:"
	demoIDPrefix  = "demo"
)

// Subscription identifies one tracked event. It is comparable and safe to use as a map key.
type Subscription struct {
	League  League  `json:"league"`
	EventID string  `json:"eventId"`
	Service Service `json:"service"`
}

// Validate checks that the subscription can be addressed and dispatched.
func (s Subscription) Validate() error {
	if strings.TrimSpace(s.EventID) == "" {
		return fmt.Errorf("%w: missing eventId", ErrInvalidSubscription)
	}
	if strings.ContainsAny(s.EventID, "/?#") {
		return fmt.Errorf("%w: eventId %q contains a reserved character", ErrInvalidSubscription, s.EventID)
	}
	if s.League.Sport() == "" {
		return fmt.Errorf("%w: %w: %q", ErrInvalidSubscription, ErrUnknownLeague, s.League)
	}
	switch s.Service {
	case "", ServiceESPN, ServiceSRNFL, ServiceSRSoccer:
	default:
		return fmt.Errorf("%w: unknown service %q", ErrInvalidSubscription, s.Service)
	}
	return nil
}

// Key returns the cache key of the subscription's ScoreInfo: info:{league}-{eventId}.
// Only league and event id participate, so two independently built subscriptions
// for the same game share one snapshot.
func (s Subscription) Key() string {
	return infoKeyPrefix + string(s.League) + "-" + s.EventID
}

// IsDemo reports whether the subscription points at a canned demo fixture.
func (s Subscription) IsDemo() bool {
	return IsDemoEventID(s.EventID)
}

// Marshal returns the canonical serialized form stored in the subscription set.
func (s Subscription) Marshal() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal subscription: %w", err)
	}
	return string(b), nil
}

// ParseSubscription decodes a serialized subscription.
func ParseSubscription(raw string) (Subscription, error) {
	var s Subscription
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Subscription{}, fmt.Errorf("%w: %w", ErrInvalidSubscription, err)
	}
	if s.EventID == "" {
		return Subscription{}, fmt.Errorf("%w: missing eventId", ErrInvalidSubscription)
	}
	return s, nil
}

// PostKey returns the key of the binding between a piece of content and its subscription.
func PostKey(contentID string) (string, error) {
	if contentID == "" {
		return "", ErrMissingContentID
	}
	return postKeyPrefix + contentID, nil
}

// IsDemoEventID reports whether id is a synthetic demo identifier.
func IsDemoEventID(id string) bool {
	return strings.HasPrefix(id, demoIDPrefix)
}
