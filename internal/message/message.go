// Package message defines the core data types flowing through the ordertaker pipeline.
package message

import (
	"time"

	"github.com/nadzzz/ordertaker/internal/voiceorder"
)

// OrderRequest represents an incoming spoken order from any transport.
type OrderRequest struct {
	// ID is a unique identifier for this request (UUID). Assigned when empty.
	ID string `json:"id"`

	// Tenant selects the spoken-menu catalog the items are matched against.
	Tenant string `json:"tenant"`

	// Source identifies the sender (e.g., "kiosk-03", "drive-thru-lane-1").
	Source string `json:"source"`

	// Audio is the raw audio payload. Nil if the request is text-only.
	Audio []byte `json:"audio,omitempty"`

	// ContentType is the MIME type of the audio (e.g., "audio/wav", "audio/ogg").
	ContentType string `json:"content_type,omitempty"`

	// Text is an optional pre-transcribed transcript (bypasses transcription).
	Text string `json:"text,omitempty"`

	// Language is the language tag of the transcript (e.g., "gsw", "de-CH").
	// When empty the language detected during transcription is used, then
	// the configured default.
	Language string `json:"language,omitempty"`

	// Instruction tells ordertaker how to process and route the result.
	Instruction Instruction `json:"instruction"`

	// Timestamp is when the request was received by ordertaker.
	Timestamp time.Time `json:"timestamp"`
}

// HasAudio returns true if the request contains an audio payload.
func (r *OrderRequest) HasAudio() bool {
	return len(r.Audio) > 0
}

// Instruction describes how to process and route a request.
type Instruction struct {
	// Targets lists the services that should receive the parsed order.
	// The original sender always receives the result regardless of this list.
	Targets []Target `json:"targets,omitempty"`

	// SkipMatching returns the parsed order without resolving catalog items.
	SkipMatching bool `json:"skip_matching,omitempty"`

	// Prompt is an optional vocabulary hint passed to the transcriber
	// (e.g., the tenant's menu item names).
	Prompt string `json:"prompt,omitempty"`
}

// Target defines a downstream service that should receive parsed orders.
type Target struct {
	// ServiceName is a human-readable identifier (e.g., "kitchen", "pos").
	ServiceName string `json:"service_name"`

	// Endpoint is the address to reach this target
	// (an URL, a host:port, or an MQTT topic).
	Endpoint string `json:"endpoint"`

	// Protocol is the protocol to use ("http", "grpc", "mqtt").
	Protocol string `json:"protocol"`

	// Token is an optional bearer token sent with HTTP and gRPC deliveries.
	Token string `json:"-"`
}

// OrderResult is the outcome of processing a request through the pipeline.
type OrderResult struct {
	// RequestID is the original request ID.
	RequestID string `json:"request_id"`

	// Tenant echoes the request tenant.
	Tenant string `json:"tenant,omitempty"`

	// Source echoes the request source.
	Source string `json:"source,omitempty"`

	// Transcript is the text that was parsed.
	Transcript string `json:"transcript,omitempty"`

	// Language is the lexicon the transcript was parsed with.
	Language string `json:"language,omitempty"`

	// Order is the structured order draft.
	Order voiceorder.ParsedOrder `json:"order"`

	// Unmatched is the number of items that did not resolve to a catalog entry.
	Unmatched int `json:"unmatched"`

	// RoutedTo lists the targets that received the result.
	RoutedTo []string `json:"routed_to"`

	// Error is set if processing failed at any stage.
	Error string `json:"error,omitempty"`
}

// RematchRequest asks for already parsed items to be matched again, e.g.
// after the tenant's catalog changed.
type RematchRequest struct {
	ID     string                       `json:"id"`
	Tenant string                       `json:"tenant"`
	Items  []voiceorder.ParsedOrderItem `json:"items"`
}

// RematchResult is the outcome of a RematchRequest.
type RematchResult struct {
	RequestID string                       `json:"request_id"`
	Items     []voiceorder.ParsedOrderItem `json:"items"`
	Unmatched int                          `json:"unmatched"`
	Error     string                       `json:"error,omitempty"`
}
