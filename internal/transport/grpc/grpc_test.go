package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nadzzz/ordertaker/internal/config"
	"github.com/nadzzz/ordertaker/internal/message"
	"github.com/nadzzz/ordertaker/internal/voiceorder"
)

const bufSize = 1 << 20

type fakeHandler struct {
	mu    sync.Mutex
	order *message.OrderRequest
	err   error
}

func (f *fakeHandler) HandleOrder(_ context.Context, req *message.OrderRequest) (*message.OrderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = req
	if f.err != nil {
		return nil, f.err
	}
	return &message.OrderResult{
		RequestID: "req-1",
		Tenant:    req.Tenant,
		Order: voiceorder.ParsedOrder{
			Items: []voiceorder.ParsedOrderItem{{RawName: "kaffee", Quantity: 2, Modifiers: []string{}}},
		},
		Unmatched: 1,
	}, nil
}

func (f *fakeHandler) HandleRematch(_ context.Context, req *message.RematchRequest) (*message.RematchResult, error) {
	return &message.RematchResult{RequestID: req.ID, Items: req.Items}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dialBuf(t *testing.T, lis *bufconn.Listener) *grpc.ClientConn {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func startServer(t *testing.T, h *fakeHandler) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(bufSize)
	tr := New(config.GRPCConfig{}, WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tr.serve(ctx, lis, h) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return dialBuf(t, lis)
}

func TestParse(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{}
	conn := startServer(t, h)

	req := &message.OrderRequest{Tenant: "cafe", Text: "zwei kafi", Language: "gsw"}
	var res message.OrderResult
	err := conn.Invoke(context.Background(), "/"+ServiceName+"/Parse", req, &res, grpc.ForceCodec(jsonCodec{}))
	require.NoError(t, err)

	assert.Equal(t, "req-1", res.RequestID)
	assert.Equal(t, "cafe", res.Tenant)
	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, 2, res.Order.Items[0].Quantity)

	h.mu.Lock()
	defer h.mu.Unlock()
	require.NotNil(t, h.order)
	assert.Equal(t, "zwei kafi", h.order.Text)
}

func TestParse_HandlerError(t *testing.T) {
	t.Parallel()

	conn := startServer(t, &fakeHandler{err: errors.New("boom")})

	var res message.OrderResult
	err := conn.Invoke(context.Background(), "/"+ServiceName+"/Parse",
		&message.OrderRequest{Text: "x"}, &res, grpc.ForceCodec(jsonCodec{}))
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRematch(t *testing.T) {
	t.Parallel()

	conn := startServer(t, &fakeHandler{})

	req := &message.RematchRequest{
		ID:     "r-7",
		Tenant: "cafe",
		Items:  []voiceorder.ParsedOrderItem{{RawName: "gipfeli", Quantity: 1, Modifiers: []string{}}},
	}
	var res message.RematchResult
	err := conn.Invoke(context.Background(), "/"+ServiceName+"/Rematch", req, &res, grpc.ForceCodec(jsonCodec{}))
	require.NoError(t, err)
	assert.Equal(t, "r-7", res.RequestID)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "gipfeli", res.Items[0].RawName)
}

// sink records deliveries made by Transport.Send.
type sink struct {
	mu      sync.Mutex
	payload json.RawMessage
	auth    []string
}

type orderSinkServer interface {
	deliver(context.Context, *json.RawMessage) (*json.RawMessage, error)
}

func (s *sink) deliver(ctx context.Context, in *json.RawMessage) (*json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = *in
	md, _ := metadata.FromIncomingContext(ctx)
	s.auth = md.Get("authorization")
	ack := json.RawMessage(`{}`)
	return &ack, nil
}

var sinkDesc = grpc.ServiceDesc{
	ServiceName: "ordertaker.v1.OrderSink",
	HandlerType: (*orderSinkServer)(nil),
	Methods: []grpc.MethodDesc{{
		MethodName: "Deliver",
		Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
			in := new(json.RawMessage)
			if err := dec(in); err != nil {
				return nil, err
			}
			return srv.(orderSinkServer).deliver(ctx, in)
		},
	}},
}

func TestSend(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(bufSize)
	s := &sink{}
	srv := grpc.NewServer(grpc.ForceServerCodec(jsonCodec{}))
	srv.RegisterService(&sinkDesc, s)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	tr := New(config.GRPCConfig{},
		WithLogger(quietLogger()),
		WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		})),
	)
	t.Cleanup(func() { _ = tr.Close() })

	target := message.Target{ServiceName: "pos", Endpoint: "passthrough:///pos", Protocol: "grpc", Token: "s3cret"}
	payload := []byte(`{"request_id":"req-1"}`)
	require.NoError(t, tr.Send(context.Background(), target, payload))
	// The second send reuses the cached connection.
	require.NoError(t, tr.Send(context.Background(), target, payload))

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.JSONEq(t, string(payload), string(s.payload))
	assert.Equal(t, []string{"Bearer s3cret"}, s.auth)

	tr.mu.Lock()
	assert.Len(t, tr.conns, 1)
	tr.mu.Unlock()
}

func TestSend_Unavailable(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(bufSize)
	require.NoError(t, lis.Close())

	tr := New(config.GRPCConfig{},
		WithLogger(quietLogger()),
		WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		})),
	)
	t.Cleanup(func() { _ = tr.Close() })

	err := tr.Send(context.Background(), message.Target{Endpoint: "passthrough:///down"}, []byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(errors.Unwrap(err)))
}
