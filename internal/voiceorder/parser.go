package voiceorder

import (
	"log/slog"
	"strings"

	"github.com/nadzzz/ordertaker/internal/lexicon"
	"github.com/nadzzz/ordertaker/internal/menu"
)

// Parser assembles parsed orders. A Parser holds no mutable state and is
// safe for concurrent use.
type Parser struct {
	matcher *menu.Matcher
	bind    bool
	logger  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMatcher sets the matcher used by MatchMenuItems and Parse.
func WithMatcher(m *menu.Matcher) Option {
	return func(p *Parser) {
		if m != nil {
			p.matcher = m
		}
	}
}

// WithModificationBinding makes the parser attach every modification to
// the nearest item spoken before it.
func WithModificationBinding(enabled bool) Option {
	return func(p *Parser) { p.bind = enabled }
}

// WithLogger sets the logger for parse diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a Parser. Without options it uses the default matcher
// and leaves modifications unbound.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.matcher == nil {
		p.matcher = menu.NewMatcher(menu.WithLogger(p.logger))
	}
	return p
}

// ParseOrder extracts items, modifications and special requests from a
// transcript. Items come back unmatched. An unsupported language is
// reported before any text is examined; a blank transcript yields an
// empty order.
func (p *Parser) ParseOrder(transcript string, lang lexicon.Language) (ParsedOrder, error) {
	table, err := lexicon.Lookup(lang)
	if err != nil {
		return ParsedOrder{}, err
	}
	if strings.TrimSpace(transcript) == "" {
		return emptyOrder(), nil
	}

	tokens := normalizeTokens(table, transcript)
	items := segment(table, tokens)
	mods := extractModifications(table, tokens)

	order := emptyOrder()
	if p.bind {
		order.Items, order.Modifications = bindModifications(items, mods)
	} else {
		for _, c := range items {
			order.Items = append(order.Items, c.item)
		}
		for _, m := range mods {
			order.Modifications = append(order.Modifications, m.mod)
		}
	}
	order.SpecialRequests = extractSpecialRequests(table, tokens)

	p.logger.Debug("parsed order",
		"language", lang,
		"tokens", len(tokens),
		"items", len(order.Items),
		"modifications", len(order.Modifications),
		"special_requests", len(order.SpecialRequests),
	)
	return order, nil
}

// MatchMenuItems resolves each item against catalog and returns new items.
// The input slice is not modified. Items that cannot be resolved come back
// with Matched=false and zero confidence.
func (p *Parser) MatchMenuItems(items []ParsedOrderItem, catalog []menu.VoiceMenuMapping) []ParsedOrderItem {
	out := make([]ParsedOrderItem, len(items))
	for i, it := range items {
		res := p.matcher.Match(it.RawName, catalog)
		it.Modifiers = append([]string{}, it.Modifiers...)
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		it.Matched = res.Matched
		it.Confidence = res.Confidence
		it.CanonicalName = res.CanonicalName
		it.CatalogID = res.CanonicalID
		out[i] = it
	}
	return out
}

// Parse runs ParseOrder and matches the resulting items against catalog.
func (p *Parser) Parse(transcript string, lang lexicon.Language, catalog []menu.VoiceMenuMapping) (ParsedOrder, error) {
	order, err := p.ParseOrder(transcript, lang)
	if err != nil {
		return ParsedOrder{}, err
	}
	order.Items = p.MatchMenuItems(order.Items, catalog)
	return order, nil
}

var defaultParser = NewParser()

// ParseOrder parses transcript with the default parser.
func ParseOrder(transcript string, lang lexicon.Language) (ParsedOrder, error) {
	return defaultParser.ParseOrder(transcript, lang)
}

// MatchMenuItems matches items with the default matcher settings.
func MatchMenuItems(items []ParsedOrderItem, catalog []menu.VoiceMenuMapping) []ParsedOrderItem {
	return defaultParser.MatchMenuItems(items, catalog)
}
