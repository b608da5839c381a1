// Package dispatch implements the order pipeline.
//
// The dispatcher receives requests from transports, runs them through
// transcription (audio only), transcript parsing and menu matching, then
// routes the resulting order to target services. The sender always
// receives the result, including when a stage fails.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nadzzz/ordertaker/internal/catalog"
	"github.com/nadzzz/ordertaker/internal/config"
	"github.com/nadzzz/ordertaker/internal/lexicon"
	"github.com/nadzzz/ordertaker/internal/menu"
	"github.com/nadzzz/ordertaker/internal/message"
	"github.com/nadzzz/ordertaker/internal/transcribe"
	"github.com/nadzzz/ordertaker/internal/transport"
	"github.com/nadzzz/ordertaker/internal/voiceorder"
)

// promptNames caps how many menu names are sent as a transcription hint.
const promptNames = 64

// Options wires the dispatcher's collaborators.
type Options struct {
	Transcriber       transcribe.Transcriber // nil disables audio input
	Catalogs          catalog.Source
	Matcher           config.MatcherConfig
	DefaultLanguage   lexicon.Language
	BindModifications bool
	Targets           map[string]config.Target // named targets from the config file
	Logger            *slog.Logger
}

// Dispatcher is the central order pipeline. It implements transport.Handler.
type Dispatcher struct {
	opts       Options
	transports map[string]transport.Transport
	logger     *slog.Logger

	// parsers holds one parser per tenant with matcher overrides. All other
	// tenants share defaultParser. Both are built once in New.
	defaultParser *voiceorder.Parser
	parsers       map[string]*voiceorder.Parser
}

var _ transport.Handler = (*Dispatcher)(nil)

// New creates a Dispatcher routing results through the given transports.
func New(opts Options, transports []transport.Transport) *Dispatcher {
	if opts.Transcriber == nil {
		opts.Transcriber = transcribe.Disabled{}
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = lexicon.SwissGerman
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tm := make(map[string]transport.Transport, len(transports))
	for _, t := range transports {
		tm[t.Name()] = t
	}
	d := &Dispatcher{
		opts:       opts,
		transports: tm,
		logger:     logger,
		parsers:    make(map[string]*voiceorder.Parser, len(opts.Matcher.Tenants)),
	}
	d.defaultParser = d.newParser(opts.Matcher.ForTenant(""), logger)
	for tenant := range opts.Matcher.Tenants {
		d.parsers[tenant] = d.newParser(opts.Matcher.ForTenant(tenant), logger.With("tenant", tenant))
	}
	return d
}

func (d *Dispatcher) newParser(s config.MatcherSettings, logger *slog.Logger) *voiceorder.Parser {
	m := menu.NewMatcher(
		menu.WithThreshold(s.Threshold),
		menu.WithExactConfidence(s.ExactConfidence),
		menu.WithAliasConfidence(s.AliasConfidence),
		menu.WithLogger(logger),
	)
	return voiceorder.NewParser(
		voiceorder.WithMatcher(m),
		voiceorder.WithModificationBinding(d.opts.BindModifications),
		voiceorder.WithLogger(d.logger),
	)
}

// parserFor returns the parser carrying the tenant's matcher policy.
// The map is read-only after New.
func (d *Dispatcher) parserFor(tenant string) *voiceorder.Parser {
	if p, ok := d.parsers[tenant]; ok {
		return p
	}
	return d.defaultParser
}

// HandleOrder processes a single order request through the full pipeline.
func (d *Dispatcher) HandleOrder(ctx context.Context, req *message.OrderRequest) (*message.OrderResult, error) {
	if req == nil {
		return nil, errors.New("nil order request")
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	start := time.Now()
	logger := d.logger.With("request_id", req.ID, "tenant", req.Tenant, "source", req.Source)
	logger.Info("order received", "audio_bytes", len(req.Audio), "text_length", len(req.Text))

	result := &message.OrderResult{
		RequestID: req.ID,
		Tenant:    req.Tenant,
		Source:    req.Source,
		RoutedTo:  []string{},
	}

	if req.Tenant != "" {
		if err := catalog.ValidateTenant(req.Tenant); err != nil {
			result.Error = err.Error()
			return result, nil
		}
	}

	var requested lexicon.Language
	if req.Language != "" {
		lang, err := lexicon.ParseLanguage(req.Language)
		if err != nil {
			result.Error = err.Error()
			logger.Warn("rejected order", "error", err)
			return result, nil
		}
		requested = lang
	}

	// Step 1: Transcribe audio (if present).
	var transcript, detected string
	switch {
	case req.HasAudio():
		opts := transcribe.Options{Prompt: req.Instruction.Prompt}
		if requested != "" {
			opts.Language = whisperLanguage(requested)
		}
		if opts.Prompt == "" {
			opts.Prompt = d.menuPrompt(ctx, req.Tenant)
		}
		logger.Debug("transcribing audio", "content_type", req.ContentType, "bytes", len(req.Audio))
		res, err := d.opts.Transcriber.Transcribe(ctx, req.Audio, req.ContentType, opts)
		if err != nil {
			result.Error = fmt.Sprintf("transcription failed: %v", err)
			logger.Error("transcription failed", "error", err)
			return result, nil
		}
		transcript, detected = res.Text, res.Language
		logger.Info("transcription complete", "text_length", len(transcript), "language", detected)
	case strings.TrimSpace(req.Text) != "":
		transcript = req.Text
	default:
		result.Error = "request has no audio and no text"
		return result, nil
	}
	result.Transcript = transcript

	// Step 2: Parse the transcript.
	lang := d.resolveLanguage(requested, detected, logger)
	result.Language = lang.String()
	parser := d.parserFor(req.Tenant)
	order, err := parser.ParseOrder(transcript, lang)
	if err != nil {
		result.Error = fmt.Sprintf("parsing failed: %v", err)
		logger.Error("parsing failed", "error", err)
		return result, nil
	}

	// Step 3: Match items against the tenant's catalog snapshot.
	if req.Tenant != "" && d.opts.Catalogs != nil && !req.Instruction.SkipMatching && len(order.Items) > 0 {
		snapshot, err := d.opts.Catalogs.Catalog(ctx, req.Tenant)
		if err != nil {
			result.Order = order
			result.Unmatched = order.UnmatchedCount()
			result.Error = fmt.Sprintf("catalog unavailable: %v", err)
			logger.Error("catalog unavailable", "error", err)
			return result, nil
		}
		order.Items = parser.MatchMenuItems(order.Items, snapshot)
	}
	result.Order = order
	result.Unmatched = order.UnmatchedCount()
	logger.Info("order parsed",
		"language", lang,
		"items", len(order.Items),
		"unmatched", result.Unmatched,
		"modifications", len(order.Modifications),
	)

	// Step 4: Route the order to target services.
	d.route(ctx, req.Instruction.Targets, result, logger)

	logger.Info("dispatch complete", "duration", time.Since(start), "routed_to", len(result.RoutedTo))

	// The result is always returned to the sender via the transport that received the request.
	return result, nil
}

// HandleRematch matches already parsed items against the tenant's current
// catalog without parsing again.
func (d *Dispatcher) HandleRematch(ctx context.Context, req *message.RematchRequest) (*message.RematchResult, error) {
	if req == nil {
		return nil, errors.New("nil rematch request")
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	logger := d.logger.With("request_id", req.ID, "tenant", req.Tenant)

	result := &message.RematchResult{RequestID: req.ID, Items: []voiceorder.ParsedOrderItem{}}
	if err := catalog.ValidateTenant(req.Tenant); err != nil {
		result.Error = err.Error()
		return result, nil
	}

	if d.opts.Catalogs == nil {
		result.Error = "no catalog source configured"
		return result, nil
	}
	snapshot, err := d.opts.Catalogs.Catalog(ctx, req.Tenant)
	if err != nil {
		result.Error = fmt.Sprintf("catalog unavailable: %v", err)
		logger.Error("catalog unavailable", "error", err)
		return result, nil
	}

	result.Items = d.parserFor(req.Tenant).MatchMenuItems(req.Items, snapshot)
	result.Unmatched = voiceorder.CountUnmatched(result.Items)
	logger.Info("rematch complete", "items", len(result.Items), "unmatched", result.Unmatched)
	return result, nil
}

// resolveLanguage picks the request language, then the language the
// transcriber detected, then the configured default. Whisper reports Swiss
// German as German, so a German detection keeps a Swiss German default.
func (d *Dispatcher) resolveLanguage(requested lexicon.Language, detected string, logger *slog.Logger) lexicon.Language {
	if requested != "" {
		return requested
	}
	if detected != "" {
		lang, err := lexicon.ParseLanguage(detected)
		if err == nil {
			if lang == lexicon.German && d.opts.DefaultLanguage == lexicon.SwissGerman {
				return lexicon.SwissGerman
			}
			return lang
		}
		logger.Warn("detected language unsupported, using default", "detected", detected, "default", d.opts.DefaultLanguage)
	}
	return d.opts.DefaultLanguage
}

// menuPrompt lists the tenant's primary menu names as a vocabulary hint.
// Failures only cost recognition quality and are ignored.
func (d *Dispatcher) menuPrompt(ctx context.Context, tenant string) string {
	if tenant == "" || d.opts.Catalogs == nil {
		return ""
	}
	snapshot, err := d.opts.Catalogs.Catalog(ctx, tenant)
	if err != nil {
		return ""
	}
	names := make([]string, 0, min(len(snapshot), promptNames))
	for _, e := range snapshot {
		if len(names) == promptNames {
			break
		}
		if n := e.PrimaryName(); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// route sends the result to every target whose protocol has a transport.
// Delivery failures are logged and skipped.
func (d *Dispatcher) route(ctx context.Context, targets []message.Target, result *message.OrderResult, logger *slog.Logger) {
	if len(targets) == 0 {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		result.Error = fmt.Sprintf("marshalling result: %v", err)
		return
	}

	for _, target := range targets {
		target = d.resolveTarget(target)
		t, ok := d.transports[strings.ToLower(target.Protocol)]
		if !ok {
			logger.Warn("no transport for target protocol", "protocol", target.Protocol, "target", target.ServiceName)
			continue
		}

		if err := t.Send(ctx, target, payload); err != nil {
			logger.Error("failed to send to target", "target", target.ServiceName, "error", err)
			continue
		}

		result.RoutedTo = append(result.RoutedTo, target.ServiceName)
		logger.Info("routed to target", "target", target.ServiceName)
	}
}

// resolveTarget fills a target that names a configured service but omits
// its endpoint.
func (d *Dispatcher) resolveTarget(t message.Target) message.Target {
	if t.Endpoint != "" {
		return t
	}
	cfg, ok := d.opts.Targets[t.ServiceName]
	if !ok {
		return t
	}
	t.Endpoint = cfg.Endpoint
	t.Token = cfg.Token
	if t.Protocol == "" {
		t.Protocol = cfg.Protocol
	}
	return t
}

// whisperLanguage maps a lexicon language to the ISO-639-1 hint Whisper
// understands. Whisper has no Swiss German model and transcribes it as
// German.
func whisperLanguage(l lexicon.Language) string {
	if l == lexicon.SwissGerman {
		return string(lexicon.German)
	}
	return string(l)
}
