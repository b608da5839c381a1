package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/ordertaker/internal/catalog"
	"github.com/nadzzz/ordertaker/internal/config"
	"github.com/nadzzz/ordertaker/internal/lexicon"
	"github.com/nadzzz/ordertaker/internal/menu"
	"github.com/nadzzz/ordertaker/internal/message"
	"github.com/nadzzz/ordertaker/internal/transcribe"
	"github.com/nadzzz/ordertaker/internal/transport"
	"github.com/nadzzz/ordertaker/internal/voiceorder"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubCatalogs map[string][]menu.VoiceMenuMapping

func (s stubCatalogs) Catalog(_ context.Context, tenant string) ([]menu.VoiceMenuMapping, error) {
	c, ok := s[tenant]
	if !ok {
		return nil, catalog.ErrTenantNotFound
	}
	return c, nil
}

type stubTranscriber struct {
	res  *transcribe.Result
	err  error
	opts transcribe.Options
}

func (s *stubTranscriber) Name() string { return "stub" }

func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte, _ string, opts transcribe.Options) (*transcribe.Result, error) {
	s.opts = opts
	return s.res, s.err
}

func (s *stubTranscriber) Close() error { return nil }

type sent struct {
	target  message.Target
	payload []byte
}

type recordingTransport struct {
	name string
	err  error

	mu   sync.Mutex
	sent []sent
}

func (r *recordingTransport) Name() string { return r.name }

func (r *recordingTransport) Listen(ctx context.Context, _ transport.Handler) error {
	<-ctx.Done()
	return nil
}

func (r *recordingTransport) Send(_ context.Context, target message.Target, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{target: target, payload: payload})
	return r.err
}

func (r *recordingTransport) Close() error { return nil }

func cafeCatalogs() stubCatalogs {
	return stubCatalogs{
		"cafe": {
			{CanonicalID: "coffee", SpokenNames: []string{"kaffee"}, Aliases: []string{"kafi"}},
			{CanonicalID: "croissant", SpokenNames: []string{"gipfeli"}},
			{CanonicalID: "cappuccino", SpokenNames: []string{"cappuccino"}},
		},
	}
}

func defaultMatcher() config.MatcherConfig {
	return config.MatcherConfig{Threshold: 0.7, ExactConfidence: 1, AliasConfidence: 0.9}
}

func newDispatcher(opts Options, transports ...transport.Transport) *Dispatcher {
	if opts.Catalogs == nil {
		opts.Catalogs = cafeCatalogs()
	}
	if opts.Matcher.Threshold == 0 && opts.Matcher.Tenants == nil {
		opts.Matcher = defaultMatcher()
	}
	opts.Logger = discardLogger()
	return New(opts, transports)
}

func TestHandleOrder_TextAndMatch(t *testing.T) {
	t.Parallel()

	d := newDispatcher(Options{})
	res, err := d.HandleOrder(t.Context(), &message.OrderRequest{
		Tenant: "cafe",
		Source: "kiosk-1",
		Text:   "zwei kafi und drü gipfeli, bitte",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RequestID)
	assert.Empty(t, res.Error)
	assert.Equal(t, "gsw", res.Language)
	require.Len(t, res.Order.Items, 2)
	assert.Equal(t, "coffee", res.Order.Items[0].CatalogID)
	assert.Equal(t, 2, res.Order.Items[0].Quantity)
	assert.Equal(t, "croissant", res.Order.Items[1].CatalogID)
	assert.Equal(t, 3, res.Order.Items[1].Quantity)
	assert.Zero(t, res.Unmatched)
	assert.Equal(t, []string{"bitte"}, res.Order.SpecialRequests)
	assert.Equal(t, []string{}, res.RoutedTo)
}

func TestHandleOrder_KeepsRequestID(t *testing.T) {
	t.Parallel()

	d := newDispatcher(Options{})
	req := &message.OrderRequest{ID: "req-1", Text: "a coffee", Language: "en"}
	res, err := d.HandleOrder(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "req-1", res.RequestID)
	assert.False(t, req.Timestamp.IsZero())
}

func TestHandleOrder_SkipMatchingAndNoTenant(t *testing.T) {
	t.Parallel()

	d := newDispatcher(Options{})
	for _, req := range []*message.OrderRequest{
		{Tenant: "cafe", Text: "zwei kafi", Instruction: message.Instruction{SkipMatching: true}},
		{Text: "zwei kafi"},
	} {
		res, err := d.HandleOrder(t.Context(), req)
		require.NoError(t, err)
		assert.Empty(t, res.Error)
		require.Len(t, res.Order.Items, 1)
		assert.False(t, res.Order.Items[0].Matched)
		assert.Equal(t, 1, res.Unmatched)
	}
}

func TestHandleOrder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     message.OrderRequest
		wantErr string
	}{
		{name: "no input", req: message.OrderRequest{Tenant: "cafe"}, wantErr: "no audio and no text"},
		{name: "unsupported language", req: message.OrderRequest{Text: "x", Language: "tlh"}, wantErr: "unsupported language"},
		{name: "invalid tenant", req: message.OrderRequest{Tenant: "../etc", Text: "x"}, wantErr: "invalid tenant"},
		{name: "unknown tenant", req: message.OrderRequest{Tenant: "ghost", Text: "zwei kafi"}, wantErr: "catalog unavailable"},
		{name: "audio without transcriber", req: message.OrderRequest{Tenant: "cafe", Audio: []byte("RIFF")}, wantErr: "transcription disabled"},
	}
	d := newDispatcher(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := tt.req
			res, err := d.HandleOrder(t.Context(), &req)
			require.NoError(t, err)
			assert.Contains(t, res.Error, tt.wantErr)
			assert.NotEmpty(t, res.RequestID)
		})
	}
}

func TestHandleOrder_UnknownTenantStillReturnsParsedOrder(t *testing.T) {
	t.Parallel()

	d := newDispatcher(Options{})
	res, err := d.HandleOrder(t.Context(), &message.OrderRequest{Tenant: "ghost", Text: "zwei kafi"})
	require.NoError(t, err)
	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, 1, res.Unmatched)
}

func TestHandleOrder_Audio(t *testing.T) {
	t.Parallel()

	tr := &stubTranscriber{res: &transcribe.Result{Text: "zwöi kafi", Language: "german"}}
	d := newDispatcher(Options{Transcriber: tr, DefaultLanguage: lexicon.SwissGerman})

	res, err := d.HandleOrder(t.Context(), &message.OrderRequest{Tenant: "cafe", Audio: []byte("RIFF"), ContentType: "audio/wav"})
	require.NoError(t, err)
	assert.Empty(t, res.Error)
	assert.Equal(t, "zwöi kafi", res.Transcript)
	assert.Equal(t, "gsw", res.Language)
	require.Len(t, res.Order.Items, 1)
	assert.True(t, res.Order.Items[0].Matched)

	// The tenant's menu is offered as vocabulary.
	assert.Equal(t, "kaffee, gipfeli, cappuccino", tr.opts.Prompt)
	assert.Empty(t, tr.opts.Language)
}

func TestHandleOrder_AudioLanguageHint(t *testing.T) {
	t.Parallel()

	tr := &stubTranscriber{res: &transcribe.Result{Text: "two coffees", Language: "english"}}
	d := newDispatcher(Options{Transcriber: tr})

	res, err := d.HandleOrder(t.Context(), &message.OrderRequest{
		Audio:       []byte("RIFF"),
		Language:    "de-CH",
		Instruction: message.Instruction{Prompt: "custom"},
	})
	require.NoError(t, err)
	assert.Equal(t, "de", tr.opts.Language)
	assert.Equal(t, "custom", tr.opts.Prompt)
	assert.Equal(t, "gsw", res.Language)
}

func TestHandleOrder_DetectedLanguageUsed(t *testing.T) {
	t.Parallel()

	tr := &stubTranscriber{res: &transcribe.Result{Text: "deux cafés", Language: "french"}}
	d := newDispatcher(Options{Transcriber: tr})

	res, err := d.HandleOrder(t.Context(), &message.OrderRequest{Audio: []byte("RIFF")})
	require.NoError(t, err)
	assert.Equal(t, "fr", res.Language)
	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, 2, res.Order.Items[0].Quantity)
}

func TestHandleOrder_TranscriptionFailure(t *testing.T) {
	t.Parallel()

	tr := &stubTranscriber{err: errors.New("whisper down")}
	d := newDispatcher(Options{Transcriber: tr})

	res, err := d.HandleOrder(t.Context(), &message.OrderRequest{Audio: []byte("RIFF")})
	require.NoError(t, err)
	assert.Contains(t, res.Error, "whisper down")
}

func TestHandleOrder_Routing(t *testing.T) {
	t.Parallel()

	httpT := &recordingTransport{name: "http"}
	mqttT := &recordingTransport{name: "mqtt", err: errors.New("broker gone")}
	d := newDispatcher(Options{
		Targets: map[string]config.Target{
			"kitchen": {Endpoint: "http://kitchen/orders", Protocol: "http", Token: "tok"},
		},
	}, httpT, mqttT)

	res, err := d.HandleOrder(t.Context(), &message.OrderRequest{
		Tenant: "cafe",
		Text:   "zwei kafi",
		Instruction: message.Instruction{Targets: []message.Target{
			{ServiceName: "kitchen"},
			{ServiceName: "display", Endpoint: "cafe/display", Protocol: "mqtt"},
			{ServiceName: "fax", Endpoint: "0800", Protocol: "fax"},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"kitchen"}, res.RoutedTo)

	require.Len(t, httpT.sent, 1)
	assert.Equal(t, "http://kitchen/orders", httpT.sent[0].target.Endpoint)
	assert.Equal(t, "tok", httpT.sent[0].target.Token)

	var routed message.OrderResult
	require.NoError(t, json.Unmarshal(httpT.sent[0].payload, &routed))
	assert.Equal(t, res.RequestID, routed.RequestID)
	require.Len(t, routed.Order.Items, 1)
	assert.Equal(t, "coffee", routed.Order.Items[0].CatalogID)

	require.Len(t, mqttT.sent, 1)
}

func TestHandleOrder_TenantMatcherOverride(t *testing.T) {
	t.Parallel()

	strict := 0.95
	d := newDispatcher(Options{
		Catalogs: stubCatalogs{
			"strict": {{CanonicalID: "cappuccino", SpokenNames: []string{"cappuccino"}}},
			"loose":  {{CanonicalID: "cappuccino", SpokenNames: []string{"cappuccino"}}},
		},
		Matcher: config.MatcherConfig{
			Threshold: 0.7, ExactConfidence: 1, AliasConfidence: 0.9,
			Tenants: map[string]config.MatcherOverride{"strict": {Threshold: &strict}},
		},
	})

	loose, err := d.HandleOrder(t.Context(), &message.OrderRequest{Tenant: "loose", Text: "one capucino", Language: "en"})
	require.NoError(t, err)
	require.Len(t, loose.Order.Items, 1)
	assert.True(t, loose.Order.Items[0].Matched)

	tight, err := d.HandleOrder(t.Context(), &message.OrderRequest{Tenant: "strict", Text: "one capucino", Language: "en"})
	require.NoError(t, err)
	require.Len(t, tight.Order.Items, 1)
	assert.False(t, tight.Order.Items[0].Matched)
}

func TestHandleOrder_UnknownTenantsShareDefaultParser(t *testing.T) {
	t.Parallel()

	strict := 0.95
	d := newDispatcher(Options{
		Matcher: config.MatcherConfig{
			Threshold: 0.7, ExactConfidence: 1, AliasConfidence: 0.9,
			Tenants: map[string]config.MatcherOverride{"strict": {Threshold: &strict}},
		},
	})

	for i := range 200 {
		res, err := d.HandleOrder(t.Context(), &message.OrderRequest{
			Tenant: fmt.Sprintf("bogus-%d", i),
			Text:   "zwei kafi",
		})
		require.NoError(t, err)
		assert.Contains(t, res.Error, "catalog unavailable")
	}

	assert.Len(t, d.parsers, 1)
	assert.Same(t, d.defaultParser, d.parserFor("bogus-7"))
	assert.NotSame(t, d.defaultParser, d.parserFor("strict"))
}

func TestHandleRematch(t *testing.T) {
	t.Parallel()

	d := newDispatcher(Options{})
	res, err := d.HandleRematch(t.Context(), &message.RematchRequest{
		Tenant: "cafe",
		Items: []voiceorder.ParsedOrderItem{
			{RawName: "kafi", Quantity: 2},
			{RawName: "widget", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Error)
	assert.NotEmpty(t, res.RequestID)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "coffee", res.Items[0].CatalogID)
	assert.InDelta(t, 0.9, res.Items[0].Confidence, 1e-9)
	assert.False(t, res.Items[1].Matched)
	assert.Equal(t, 1, res.Unmatched)

	res, err = d.HandleRematch(t.Context(), &message.RematchRequest{Tenant: "ghost"})
	require.NoError(t, err)
	assert.Contains(t, res.Error, "catalog unavailable")

	res, err = d.HandleRematch(t.Context(), &message.RematchRequest{})
	require.NoError(t, err)
	assert.Contains(t, res.Error, "invalid tenant")
}
