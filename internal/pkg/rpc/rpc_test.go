package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPort = 8369

var testServer *server.Server

func TestMain(m *testing.M) {
	opts := natsserver.DefaultTestOptions
	opts.Port = testPort
	testServer = natsserver.RunServer(&opts)

	code := m.Run()

	testServer.Shutdown()
	os.Exit(code)
}

type echoRequest struct {
	Value string `json:"value"`
}

type echoResponse struct {
	Value string `json:"value"`
}

func connect(t *testing.T) *nats.Conn {
	t.Helper()
	nc, err := nats.Connect(testServer.ClientURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)
	return nc
}

func TestCall_Success(t *testing.T) {
	nc := connect(t)
	srv := NewServer(nc, "test", nil)
	require.NoError(t, srv.Handle("echo.say", func(ctx context.Context, payload []byte) (interface{}, error) {
		req, err := Decode[echoRequest](payload)
		if err != nil {
			return nil, err
		}
		return echoResponse{Value: "hi " + req.Value}, nil
	}))
	defer srv.Shutdown()

	client := NewClient(nc, nil, time.Second)
	res, err := Call[echoResponse](context.Background(), client, "echo", "say", echoRequest{Value: "bob"}, 0)

	require.NoError(t, err)
	assert.True(t, res.Ok)
	assert.Equal(t, "hi bob", res.Value.Value)
	assert.NoError(t, res.Err())
}

func TestCall_BusinessFailureCarriesCode(t *testing.T) {
	nc := connect(t)
	srv := NewServer(nc, "test", nil)
	require.NoError(t, srv.Handle("users.deduct_balance", func(ctx context.Context, payload []byte) (interface{}, error) {
		return nil, NewError(constants.CodeInsufficient, "balance too low")
	}))
	require.NoError(t, srv.Handle("users.get", func(ctx context.Context, payload []byte) (interface{}, error) {
		return nil, errors.New("db down")
	}))
	defer srv.Shutdown()

	client := NewClient(nc, nil, time.Second)

	res, err := Call[echoResponse](context.Background(), client, "users", "deduct_balance", echoRequest{}, 0)
	require.NoError(t, err)
	assert.False(t, res.Ok)
	assert.Equal(t, constants.CodeInsufficient, res.Code)
	assert.Equal(t, "balance too low", res.Reason)

	var rpcErr *Error
	require.True(t, errors.As(res.Err(), &rpcErr))
	assert.Equal(t, constants.CodeInsufficient, rpcErr.Code)

	res, err = Call[echoResponse](context.Background(), client, "users", "get", echoRequest{}, 0)
	require.NoError(t, err)
	assert.False(t, res.Ok)
	assert.Equal(t, constants.CodeInternal, res.Code)
}

func TestCall_BadPayload(t *testing.T) {
	nc := connect(t)
	srv := NewServer(nc, "test", nil)
	require.NoError(t, srv.Handle("echo.strict", func(ctx context.Context, payload []byte) (interface{}, error) {
		_, err := Decode[echoRequest](payload)
		return nil, err
	}))
	defer srv.Shutdown()

	client := NewClient(nc, nil, time.Second)
	res, err := Call[echoResponse](context.Background(), client, "echo", "strict", "not-an-object", 0)

	require.NoError(t, err)
	assert.False(t, res.Ok)
	assert.Equal(t, constants.CodeBadRequest, res.Code)
}

func TestCall_Timeout(t *testing.T) {
	nc := connect(t)
	// subscriber that never answers
	sub, err := nc.Subscribe("slow.op", func(*nats.Msg) {})
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, nc.Flush())

	client := NewClient(nc, nil, time.Second)
	start := time.Now()
	_, err = Call[echoResponse](context.Background(), client, "slow", "op", echoRequest{}, 100*time.Millisecond)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.True(t, Retryable(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestCall_NoResponders(t *testing.T) {
	nc := connect(t)
	client := NewClient(nc, nil, time.Second)

	_, err := Call[echoResponse](context.Background(), client, "nobody", "home", echoRequest{}, 0)

	assert.ErrorIs(t, err, ErrNoResponders)
	assert.True(t, Retryable(err))
}

func TestCall_MalformedReply(t *testing.T) {
	nc := connect(t)
	sub, err := nc.Subscribe("broken.op", func(m *nats.Msg) {
		reply := nats.NewMsg(m.Reply)
		reply.Header.Set(constants.HeaderCorrelationID, m.Header.Get(constants.HeaderCorrelationID))
		reply.Data = []byte("{not json")
		_ = m.RespondMsg(reply)
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, nc.Flush())

	client := NewClient(nc, nil, time.Second)
	_, err = Call[echoResponse](context.Background(), client, "broken", "op", echoRequest{}, 0)

	assert.ErrorIs(t, err, ErrMalformedReply)
	assert.False(t, Retryable(err))
}

func TestCall_DiscardsForeignCorrelation(t *testing.T) {
	nc := connect(t)
	sub, err := nc.Subscribe("noisy.op", func(m *nats.Msg) {
		stale := nats.NewMsg(m.Reply)
		stale.Header.Set(constants.HeaderCorrelationID, "someone-else")
		stale.Data, _ = json.Marshal(Envelope{Success: true, Data: json.RawMessage(`{"value":"stale"}`)})
		_ = nc.PublishMsg(stale)

		good := nats.NewMsg(m.Reply)
		good.Header.Set(constants.HeaderCorrelationID, m.Header.Get(constants.HeaderCorrelationID))
		good.Data, _ = json.Marshal(Envelope{Success: true, Data: json.RawMessage(`{"value":"fresh"}`)})
		_ = nc.PublishMsg(good)
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, nc.Flush())

	client := NewClient(nc, nil, time.Second)
	res, err := Call[echoResponse](context.Background(), client, "noisy", "op", echoRequest{}, 0)

	require.NoError(t, err)
	assert.Equal(t, "fresh", res.Value.Value)
}

func TestCall_ReleasesInboxOnEveryPath(t *testing.T) {
	nc := connect(t)
	client := NewClient(nc, nil, time.Second)
	before := nc.NumSubscriptions()

	for i := 0; i < 5; i++ {
		_, _ = Call[echoResponse](context.Background(), client, "nobody", "home", echoRequest{}, 50*time.Millisecond)
	}

	assert.Equal(t, before, nc.NumSubscriptions())
}

func TestCall_CircuitOpensOnTransportFailures(t *testing.T) {
	nc := connect(t)
	breakers := NewBreakerManager(2, time.Minute, logger.NewFromZap(zap.NewNop()))
	client := NewClient(nc, breakers, time.Second)

	for i := 0; i < 2; i++ {
		_, err := Call[echoResponse](context.Background(), client, "ghost", "op", echoRequest{}, 0)
		assert.ErrorIs(t, err, ErrNoResponders)
	}

	_, err := Call[echoResponse](context.Background(), client, "ghost", "op", echoRequest{}, 0)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, Retryable(err))
}

func TestCall_BusinessFailuresKeepCircuitClosed(t *testing.T) {
	nc := connect(t)
	srv := NewServer(nc, "test", nil)
	require.NoError(t, srv.Handle("picky.op", func(ctx context.Context, payload []byte) (interface{}, error) {
		return nil, NewError(constants.CodeNotFound, "nope")
	}))
	defer srv.Shutdown()

	breakers := NewBreakerManager(1, time.Minute, logger.NewFromZap(zap.NewNop()))
	client := NewClient(nc, breakers, time.Second)

	for i := 0; i < 3; i++ {
		res, err := Call[echoResponse](context.Background(), client, "picky", "op", echoRequest{}, 0)
		require.NoError(t, err)
		assert.False(t, res.Ok)
	}
}

func TestServer_RecoversFromPanic(t *testing.T) {
	nc := connect(t)
	srv := NewServer(nc, "test", nil)
	require.NoError(t, srv.Handle("panicky.op", func(ctx context.Context, payload []byte) (interface{}, error) {
		panic("boom")
	}))
	defer srv.Shutdown()

	client := NewClient(nc, nil, time.Second)
	res, err := Call[echoResponse](context.Background(), client, "panicky", "op", echoRequest{}, 0)

	require.NoError(t, err)
	assert.False(t, res.Ok)
	assert.Equal(t, constants.CodeInternal, res.Code)
}

func TestCall_ContextCancelled(t *testing.T) {
	nc := connect(t)
	sub, err := nc.Subscribe("stuck.op", func(*nats.Msg) {})
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, nc.Flush())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	client := NewClient(nc, nil, 5*time.Second)
	_, err = Call[echoResponse](ctx, client, "stuck", "op", echoRequest{}, 0)

	assert.ErrorIs(t, err, context.Canceled)
}
