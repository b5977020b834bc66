// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
)

// Call records one XML-RPC request received by a FakeMaster.
type Call struct {
	Method string
	// Params holds the text of each scalar parameter; arrays and structs
	// are kept as raw XML.
	Params []string
}

// FakeMaster is an httptest XML-RPC server that answers like a ROS master
// (or a node's slave API). Unregistered methods answer with a fault.
type FakeMaster struct {
	URL string

	mu      sync.Mutex
	replies map[string]func(params []string) any
	faults  map[string]string
	calls   []Call
	server  *httptest.Server
}

// NewFakeMaster starts a fake master that is closed when the test ends.
//
// Example:
//
//	master := testing.NewFakeMaster(t)
//	master.Reply("getParamNames", []any{"/rosdistro", "/run_id"})
//	client, _ := ros.NewMaster(ros.MasterConfig{URI: master.URL})
func NewFakeMaster(t *testing.T) *FakeMaster {
	t.Helper()

	f := &FakeMaster{
		replies: make(map[string]func([]string) any),
		faults:  make(map[string]string),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	f.URL = f.server.URL + "/"
	t.Cleanup(f.server.Close)
	return f
}

// Reply makes method succeed with value, wrapped in [1, "", value].
func (f *FakeMaster) Reply(method string, value any) {
	f.Handle(method, func([]string) any { return Success(value) })
}

// Status makes method answer [code, msg, 0], e.g. -1 for unknown entities.
func (f *FakeMaster) Status(method string, code int, msg string) {
	f.Handle(method, func([]string) any { return []any{code, msg, 0} })
}

// Fault makes method answer with an XML-RPC fault.
func (f *FakeMaster) Fault(method, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[method] = msg
}

// Handle registers a function computing the full response value.
func (f *FakeMaster) Handle(method string, fn func(params []string) any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method] = fn
}

// Calls returns the requests received so far.
func (f *FakeMaster) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the requests received for one method.
func (f *FakeMaster) CallsTo(method string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Success wraps value in the master's success triple.
func Success(value any) []any {
	return []any{1, "", value}
}

type methodCall struct {
	MethodName string     `xml:"methodName"`
	Params     []xmlParam `xml:"params>param"`
}

type xmlParam struct {
	Value xmlValue `xml:"value"`
}

type xmlValue struct {
	Inner   string  `xml:",innerxml"`
	String  *string `xml:"string"`
	Int     *string `xml:"int"`
	I4      *string `xml:"i4"`
	Double  *string `xml:"double"`
	Boolean *string `xml:"boolean"`
}

func (v xmlValue) text() string {
	for _, s := range []*string{v.String, v.Int, v.I4, v.Double, v.Boolean} {
		if s != nil {
			return *s
		}
	}
	return strings.TrimSpace(v.Inner)
}

func (f *FakeMaster) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var mc methodCall
	if err := xml.Unmarshal(body, &mc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]string, 0, len(mc.Params))
	for _, p := range mc.Params {
		params = append(params, p.Value.text())
	}

	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: mc.MethodName, Params: params})
	fn := f.replies[mc.MethodName]
	fault, hasFault := f.faults[mc.MethodName]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "text/xml")
	switch {
	case hasFault:
		writeFault(w, fault)
	case fn == nil:
		writeFault(w, "unknown method "+mc.MethodName)
	default:
		var sb strings.Builder
		sb.WriteString(`<?xml version="1.0"?><methodResponse><params><param>`)
		encodeValue(&sb, fn(params))
		sb.WriteString(`</param></params></methodResponse>`)
		_, _ = io.WriteString(w, sb.String())
	}
}

func writeFault(w io.Writer, msg string) {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><methodResponse><fault>`)
	encodeValue(&sb, map[string]any{"faultCode": 1, "faultString": msg})
	sb.WriteString(`</fault></methodResponse>`)
	_, _ = io.WriteString(w, sb.String())
}

func encodeValue(sb *strings.Builder, v any) {
	sb.WriteString("<value>")
	switch val := v.(type) {
	case nil:
		sb.WriteString("<string></string>")
	case string:
		sb.WriteString("<string>")
		_ = xml.EscapeText(sb, []byte(val))
		sb.WriteString("</string>")
	case int:
		fmt.Fprintf(sb, "<int>%d</int>", val)
	case int64:
		fmt.Fprintf(sb, "<int>%d</int>", val)
	case float64:
		fmt.Fprintf(sb, "<double>%g</double>", val)
	case bool:
		if val {
			sb.WriteString("<boolean>1</boolean>")
		} else {
			sb.WriteString("<boolean>0</boolean>")
		}
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		encodeValue(sb, items)
		return
	case []any:
		sb.WriteString("<array><data>")
		for _, item := range val {
			encodeValue(sb, item)
		}
		sb.WriteString("</data></array>")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("<struct>")
		for _, k := range keys {
			sb.WriteString("<member><name>")
			_ = xml.EscapeText(sb, []byte(k))
			sb.WriteString("</name>")
			encodeValue(sb, val[k])
			sb.WriteString("</member>")
		}
		sb.WriteString("</struct>")
	default:
		sb.WriteString("<string>")
		_ = xml.EscapeText(sb, []byte(fmt.Sprint(val)))
		sb.WriteString("</string>")
	}
	sb.WriteString("</value>")
}
