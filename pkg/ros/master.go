// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ros

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/rpc"
	"net/url"
	"time"

	"github.com/kolo/xmlrpc"
)

// DefaultMasterURI is used when neither the config nor ROS_MASTER_URI set one.
const DefaultMasterURI = "http://localhost:11311"

// DefaultCallerID identifies this process to the master.
const DefaultCallerID = "/rosa"

// Status codes of the ROS master/slave XML-RPC API.
const (
	statusError   = -1
	statusFailure = 0
	statusSuccess = 1
)

// MasterConfig configures a Master client.
type MasterConfig struct {
	// URI of the ROS master, e.g. http://localhost:11311.
	URI string

	// CallerID is sent as the first argument of every call.
	CallerID string

	// Timeout bounds every HTTP round trip. Zero means 10 seconds.
	Timeout time.Duration

	// Logger for debug tracing of calls. Nil uses slog.Default().
	Logger *slog.Logger
}

// Master is a client of the ROS master and parameter server XML-RPC API.
// It holds no graph state: every method queries the master.
type Master struct {
	uri       string
	callerID  string
	transport *http.Transport
	logger    *slog.Logger
}

// NewMaster creates a client for the master at cfg.URI.
func NewMaster(cfg MasterConfig) (*Master, error) {
	if cfg.URI == "" {
		cfg.URI = DefaultMasterURI
	}
	if cfg.CallerID == "" {
		cfg.CallerID = DefaultCallerID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: cfg.Timeout}).DialContext,
		ResponseHeaderTimeout: cfg.Timeout,
		MaxIdleConnsPerHost:   4,
	}
	if _, err := url.Parse(cfg.URI); err != nil {
		return nil, fmt.Errorf("parse master uri %q: %w", cfg.URI, err)
	}

	return &Master{
		uri:       cfg.URI,
		callerID:  cfg.CallerID,
		transport: transport,
		logger:    cfg.Logger,
	}, nil
}

// URI returns the master URI this client talks to.
func (m *Master) URI() string {
	return m.uri
}

// CallerID returns the caller id sent with every call.
func (m *Master) CallerID() string {
	return m.callerID
}

// Close drops idle connections to the master and to nodes.
func (m *Master) Close() error {
	m.transport.CloseIdleConnections()
	return nil
}

// Ping asks the master for its own URI. It is the cheapest call that proves
// the master is alive.
func (m *Master) Ping(ctx context.Context) (string, error) {
	v, err := m.call(ctx, m.uri, "getUri")
	if err != nil {
		return "", err
	}
	uri, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("getUri: %w: value is %T", ErrMalformed, v)
	}
	return uri, nil
}

// call invokes method on the XML-RPC endpoint at uri with the caller id
// prepended to args and unwraps the [code, statusMessage, value] triple every
// master/slave method returns.
//
// Each call gets its own client: an xmlrpc client is shut down for good by
// the first fault or transport error it reads.
func (m *Master) call(ctx context.Context, uri, method string, args ...any) (any, error) {
	client, err := xmlrpc.NewClient(uri, m.transport)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", method, ErrUnavailable, err)
	}
	defer func() { _ = client.Close() }()

	params := append([]any{m.callerID}, args...)
	start := time.Now()

	var reply []any
	pending := client.Go(method, params, &reply, nil)
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w: %w", method, ErrUnavailable, ctx.Err())
	case <-pending.Done:
	}

	m.logger.Debug("ros.master.call",
		"method", method,
		"duration_ms", time.Since(start).Milliseconds(),
		"err", pending.Error,
	)

	if err := pending.Error; err != nil {
		var fault xmlrpc.FaultError
		if errors.As(err, &fault) {
			return nil, fmt.Errorf("%s: %w: %s", method, ErrMalformed, fault.String)
		}
		var serverErr rpc.ServerError
		if errors.As(err, &serverErr) {
			return nil, fmt.Errorf("%s: %w: %s", method, ErrMalformed, string(serverErr))
		}
		return nil, fmt.Errorf("%s: %w: %v", method, ErrUnavailable, err)
	}

	return unwrapStatus(method, reply)
}

// unwrapStatus checks the status code of a master response.
func unwrapStatus(method string, reply []any) (any, error) {
	if len(reply) != 3 {
		return nil, fmt.Errorf("%s: %w: expected 3 elements, got %d", method, ErrMalformed, len(reply))
	}
	code, ok := asInt(reply[0])
	if !ok {
		return nil, fmt.Errorf("%s: %w: status code is %T", method, ErrMalformed, reply[0])
	}
	msg, _ := reply[1].(string)

	switch code {
	case statusSuccess:
		return reply[2], nil
	case statusError:
		return nil, fmt.Errorf("%s: %w: %s", method, ErrNotFound, msg)
	case statusFailure:
		return nil, fmt.Errorf("%s: %w: %s", method, ErrMalformed, msg)
	default:
		return nil, fmt.Errorf("%s: %w: unknown status code %d", method, ErrMalformed, code)
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	default:
		return 0, false
	}
}

func asString(method string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w: expected string, got %T", method, ErrMalformed, v)
	}
	return s, nil
}

func asSlice(method string, v any) ([]any, error) {
	s, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: expected array, got %T", method, ErrMalformed, v)
	}
	return s, nil
}

func asStrings(method string, v any) ([]string, error) {
	items, err := asSlice(method, v)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := asString(method, item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
