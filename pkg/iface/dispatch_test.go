package iface

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cpritcha/meillionen/pkg/call"
)

type recordingHandler struct {
	calls   int
	sinks   call.Ports
	sources call.Ports
	result  any
	err     error
}

func (h *recordingHandler) Call(_ context.Context, sinks, sources call.Ports) (any, error) {
	h.calls++
	h.sinks, h.sources = sinks, sources
	return h.result, h.err
}

func boundModule(t *testing.T, set *call.HandlerSet) *ModuleInterface {
	t.Helper()
	buf, err := simulationModule(t).MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	m, err := DecodeModuleInterface(buf, set)
	if err != nil {
		t.Fatalf("DecodeModuleInterface: %v", err)
	}
	return m
}

func TestDispatch(t *testing.T) {
	h := &recordingHandler{result: "ok"}
	set := call.NewHandlerSet()
	set.Register("sim.update", h)
	m := boundModule(t, set)

	req := &call.Request{
		ClassName:  "simulation",
		MethodName: "update",
		Sinks:      call.Ports{"yield": "daily.csv"},
		Sources:    call.Ports{"rate": 1.5},
	}
	out, err := m.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out != "ok" {
		t.Fatalf("result = %v, want ok", out)
	}
	if h.calls != 1 {
		t.Fatalf("calls = %d, want 1", h.calls)
	}
	if !reflect.DeepEqual(h.sinks, req.Sinks) || !reflect.DeepEqual(h.sources, req.Sources) {
		t.Fatalf("ports must pass through untouched: sinks=%v sources=%v", h.sinks, h.sources)
	}
}

func TestDispatchClassNotFound(t *testing.T) {
	h := &recordingHandler{}
	set := call.NewHandlerSet()
	set.Register("sim.update", h)
	m := boundModule(t, set)

	_, err := m.Dispatch(context.Background(), &call.Request{ClassName: "harvester", MethodName: "update"})
	if !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("err = %v, want ErrClassNotFound", err)
	}
	if h.calls != 0 {
		t.Fatalf("handler must not run on a miss")
	}
}

func TestDispatchMethodNotFound(t *testing.T) {
	h := &recordingHandler{}
	set := call.NewHandlerSet()
	set.Register("sim.update", h)
	m := boundModule(t, set)

	_, err := m.Dispatch(context.Background(), &call.Request{ClassName: "simulation", MethodName: "restart"})
	if !errors.Is(err, ErrMethodNotFound) {
		t.Fatalf("err = %v, want ErrMethodNotFound", err)
	}
	if h.calls != 0 {
		t.Fatalf("handler must not run on a miss")
	}
}

func TestDispatchUnresolvedHandle(t *testing.T) {
	m := boundModule(t, call.NewHandlerSet())
	_, err := m.Dispatch(context.Background(), &call.Request{ClassName: "simulation", MethodName: "update"})
	if !errors.Is(err, ErrHandleNotResolved) {
		t.Fatalf("err = %v, want ErrHandleNotResolved", err)
	}

	buf, err := simulationModule(t).MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	unbound, err := DecodeModuleInterface(buf, nil)
	if err != nil {
		t.Fatalf("DecodeModuleInterface: %v", err)
	}
	_, err = unbound.Dispatch(context.Background(), &call.Request{ClassName: "simulation", MethodName: "update"})
	if !errors.Is(err, ErrHandleNotResolved) {
		t.Fatalf("err = %v, want ErrHandleNotResolved", err)
	}
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	set := call.NewHandlerSet()
	set.Register("sim.update", &recordingHandler{err: boom})
	m := boundModule(t, set)

	_, err := m.Dispatch(context.Background(), &call.Request{ClassName: "simulation", MethodName: "update"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want handler error", err)
	}
}

func TestDispatchHandlerFunc(t *testing.T) {
	set := call.NewHandlerSet()
	set.RegisterFunc("sim.initialize", func(_ context.Context, _, sources call.Ports) (any, error) {
		return sources["planting_date"], nil
	})
	m := boundModule(t, set)

	out, err := m.Dispatch(context.Background(), &call.Request{
		ClassName:  "simulation",
		MethodName: "initialize",
		Sources:    call.Ports{"planting_date": "1984-05-01"},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out != "1984-05-01" {
		t.Fatalf("result = %v, want 1984-05-01", out)
	}
}

func TestMethodCallDirect(t *testing.T) {
	h := &recordingHandler{result: 42}
	mi := NewMethodInterface("update", "sim.update", h)
	out, err := mi.Call(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != 42 {
		t.Fatalf("result = %v, want 42", out)
	}
}
