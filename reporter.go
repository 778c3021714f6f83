package mbuzz

import (
	"context"
	"encoding/json"

	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

// DefaultCurrency is sent with conversions that do not name one.
const DefaultCurrency = "USD"

// Reasons a call is refused before reaching the network.
const (
	reasonEmptyEventType      = "empty_event_type"
	reasonEmptyConversionType = "empty_conversion_type"
	reasonEmptyUserID         = "empty_user_id"
	reasonMissingIdentifier   = "missing_identifier"
	reasonMalformedResponse   = "malformed_response"
)

// EventResult describes an event accepted by the API.
type EventResult struct {
	EventID   string
	EventType string
	VisitorID string
}

// ConversionResult describes a conversion accepted by the API.
// Attribution is passed through from the response untouched.
type ConversionResult struct {
	ConversionID string
	Attribution  json.RawMessage
}

// Conversion holds the optional fields of a conversion. Visitor and user ids
// override the ones of the request's Visitor. Zero values are not sent, except
// Currency which defaults to DefaultCurrency.
type Conversion struct {
	VisitorID          string
	UserID             string
	EventID            string
	Revenue            *float64
	Currency           string
	IsAcquisition      bool
	InheritAcquisition bool
	Properties         map[string]any
	Identifier         map[string]any
}

// Float64 returns a pointer to v, for Conversion.Revenue.
func Float64(v float64) *float64 {
	return &v
}

// TrackOption adjusts a single Track call.
type TrackOption func(*trackOptions)

type trackOptions struct {
	visitorID string
	userID    string
}

// WithVisitorID tracks the event for an explicit visitor, as background jobs
// must. When the request's Visitor has no identity yet, the id is established
// on it and persisted.
func WithVisitorID(id string) TrackOption {
	return func(o *trackOptions) {
		o.visitorID = id
	}
}

// WithUserID tracks the event for an explicit user.
func WithUserID(id string) TrackOption {
	return func(o *trackOptions) {
		o.userID = id
	}
}

type eventRecord struct {
	EventType  string         `json:"event_type"`
	VisitorID  string         `json:"visitor_id,omitempty"`
	UserID     string         `json:"user_id,omitempty"`
	Properties map[string]any `json:"properties"`
	IP         string         `json:"ip,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	Timestamp  string         `json:"timestamp"`
}

type eventsPayload struct {
	Events []eventRecord `json:"events"`
}

type eventsResponse struct {
	Events []struct {
		ID flexibleID `json:"id"`
	} `json:"events"`
}

// Track reports one event for the Visitor in ctx, or for the ids given as
// options. It returns ok=false without a network call when eventType is empty
// or no visitor or user id is known, and ok=false when delivery fails.
func (c *Client) Track(ctx context.Context, eventType string, properties map[string]any, opts ...TrackOption) (EventResult, bool) {
	if !c.cfg.IsEnabled() {
		return EventResult{}, false
	}
	if eventType == "" {
		c.reject(ctx, "track", reasonEmptyEventType)
		return EventResult{}, false
	}

	var o trackOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := VisitorFromContext(ctx)
	visitorID, userID := o.visitorID, o.userID
	if v != nil {
		if visitorID == "" {
			visitorID = v.VisitorID()
		} else if v.VisitorID() == "" {
			if err := v.Establish(visitorID); err != nil {
				c.debug(ctx, "mbuzz: persisting visitor id failed", logger.Error(err))
			}
		}
		if userID == "" {
			userID = v.UserID()
		}
	}
	if visitorID == "" && userID == "" {
		c.reject(ctx, "track", reasonMissingIdentifier, logger.EventType(eventType))
		return EventResult{}, false
	}

	rec := eventRecord{
		EventType: eventType,
		VisitorID: visitorID,
		UserID:    userID,
		Timestamp: formatTimestamp(c.now()),
	}
	if v != nil {
		rec.Properties = v.EnrichProperties(properties)
		rec.IP = v.IP()
		rec.UserAgent = v.UserAgent()
	} else {
		rec.Properties = copyProperties(properties)
	}

	body, ok := c.postWithResponse(ctx, pathEvents, eventsPayload{Events: []eventRecord{rec}})
	if !ok {
		return EventResult{}, false
	}

	var resp eventsResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Events) == 0 {
		c.reject(ctx, "track", reasonMalformedResponse, logger.EventType(eventType))
		return EventResult{}, false
	}

	return EventResult{
		EventID:   string(resp.Events[0].ID),
		EventType: eventType,
		VisitorID: visitorID,
	}, true
}

type conversionRecord struct {
	ConversionType     string         `json:"conversion_type"`
	VisitorID          string         `json:"visitor_id,omitempty"`
	UserID             string         `json:"user_id,omitempty"`
	EventID            string         `json:"event_id,omitempty"`
	Revenue            *float64       `json:"revenue,omitempty"`
	Currency           string         `json:"currency"`
	IsAcquisition      bool           `json:"is_acquisition,omitempty"`
	InheritAcquisition bool           `json:"inherit_acquisition,omitempty"`
	Properties         map[string]any `json:"properties,omitempty"`
	Identifier         map[string]any `json:"identifier,omitempty"`
	IP                 string         `json:"ip,omitempty"`
	UserAgent          string         `json:"user_agent,omitempty"`
	Timestamp          string         `json:"timestamp"`
}

type conversionPayload struct {
	Conversion conversionRecord `json:"conversion"`
}

type conversionResponse struct {
	Conversion struct {
		ID flexibleID `json:"id"`
	} `json:"conversion"`
	Attribution json.RawMessage `json:"attribution"`
}

// Convert reports a conversion. Besides visitor and user ids, an event id is
// enough to identify it. Failures are reported as ok=false, never as errors.
func (c *Client) Convert(ctx context.Context, conversionType string, conv Conversion) (ConversionResult, bool) {
	if !c.cfg.IsEnabled() {
		return ConversionResult{}, false
	}
	if conversionType == "" {
		c.reject(ctx, "convert", reasonEmptyConversionType)
		return ConversionResult{}, false
	}

	rec := conversionRecord{
		ConversionType:     conversionType,
		VisitorID:          conv.VisitorID,
		UserID:             conv.UserID,
		EventID:            conv.EventID,
		Revenue:            conv.Revenue,
		Currency:           conv.Currency,
		IsAcquisition:      conv.IsAcquisition,
		InheritAcquisition: conv.InheritAcquisition,
		Properties:         conv.Properties,
		Identifier:         conv.Identifier,
		Timestamp:          formatTimestamp(c.now()),
	}
	if rec.Currency == "" {
		rec.Currency = DefaultCurrency
	}
	if v := VisitorFromContext(ctx); v != nil {
		if rec.VisitorID == "" {
			rec.VisitorID = v.VisitorID()
		}
		if rec.UserID == "" {
			rec.UserID = v.UserID()
		}
		rec.IP = v.IP()
		rec.UserAgent = v.UserAgent()
	}
	if rec.VisitorID == "" && rec.UserID == "" && rec.EventID == "" {
		c.reject(ctx, "convert", reasonMissingIdentifier)
		return ConversionResult{}, false
	}

	body, ok := c.postWithResponse(ctx, pathConversions, conversionPayload{Conversion: rec})
	if !ok {
		return ConversionResult{}, false
	}

	var resp conversionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.reject(ctx, "convert", reasonMalformedResponse)
		return ConversionResult{}, false
	}

	result := ConversionResult{ConversionID: string(resp.Conversion.ID)}
	if len(resp.Attribution) > 0 && string(resp.Attribution) != "null" {
		result.Attribution = resp.Attribution
	}
	return result, true
}

type identifyPayload struct {
	UserID    string         `json:"user_id"`
	VisitorID string         `json:"visitor_id,omitempty"`
	Traits    map[string]any `json:"traits"`
}

// Identify links the request's visitor to userID. The Visitor in ctx adopts
// userID before the call is made, whatever its outcome; the result reports
// only whether the API accepted it.
func (c *Client) Identify(ctx context.Context, userID string, traits map[string]any) bool {
	if !c.cfg.IsEnabled() {
		return false
	}
	if userID == "" {
		c.reject(ctx, "identify", reasonEmptyUserID)
		return false
	}

	payload := identifyPayload{
		UserID: userID,
		Traits: copyProperties(traits),
	}
	if v := VisitorFromContext(ctx); v != nil {
		v.SetUserID(userID)
		payload.VisitorID = v.VisitorID()
	}

	return c.post(ctx, pathIdentify, payload)
}

// Validate checks the API key against the API.
func (c *Client) Validate(ctx context.Context) bool {
	_, ok := c.get(ctx, pathValidate)
	return ok
}

// copyProperties returns a non-nil copy so payloads always encode an object.
func copyProperties(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
