package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cpritcha/meillionen/pkg/call"
	"github.com/cpritcha/meillionen/pkg/call/codec"
	"github.com/cpritcha/meillionen/pkg/config"
	"github.com/cpritcha/meillionen/pkg/iface"
	"github.com/cpritcha/meillionen/pkg/observability"
	"github.com/cpritcha/meillionen/pkg/registry"
)

func main() {
	in := flag.String("in", "", "descriptor file; omit to use the built-in simplecrop descriptor")
	cfgPath := flag.String("config", "", "path to config file (optional)")
	class := flag.String("class", "simulation", "class name to call")
	method := flag.String("method", "update", "method name to call")
	sinks := flag.String("sinks", "{}", "sink ports as a JSON object")
	sources := flag.String("sources", "{}", "source ports as a JSON object")
	reqFile := flag.String("request", "", "framed request file; overrides -class/-method/-sinks/-sources")
	format := flag.String("format", "", "request wire format: json|cbor|proto (default from config)")
	timeout := flag.Duration("timeout", 5*time.Second, "dispatch timeout")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		fatalf("setup logger: %v", err)
	}
	defer logger.Sync()

	set := call.NewHandlerSet()
	registerSimpleCrop(set)

	var buf []byte
	if *in != "" {
		buf, err = os.ReadFile(*in)
		if err != nil {
			fatalf("read descriptor: %v", err)
		}
		if len(buf) > cfg.Descriptor.MaxBytes {
			fatalf("descriptor is %d bytes, limit %d", len(buf), cfg.Descriptor.MaxBytes)
		}
	} else {
		buf, err = buildSimpleCrop().MarshalBinary()
		if err != nil {
			fatalf("marshal descriptor: %v", err)
		}
	}
	m, err := iface.DecodeModuleInterface(buf, set)
	if err != nil {
		fatalf("decode descriptor: %v", err)
	}

	store := registry.NewStore()
	if err := store.Publish("simplecrop", m); err != nil {
		fatalf("publish: %v", err)
	}

	reg := codec.NewRegistry()
	cb, err := codec.CBOR()
	if err != nil {
		fatalf("cbor codec: %v", err)
	}
	reg.Register(cb)

	var decoded *call.Request
	if *reqFile != "" {
		payload, err := os.ReadFile(*reqFile)
		if err != nil {
			fatalf("read request: %v", err)
		}
		var f codec.Format
		decoded, f, err = codec.DecodeRequest(reg, payload)
		if err != nil {
			fatalf("decode request: %v", err)
		}
		zap.L().Info("request loaded", zap.String("format", f.String()), zap.Int("bytes", len(payload)))
	} else {
		// Push the flag-built request through the wire framing, the
		// same path a remote caller takes.
		fname := *format
		if fname == "" {
			fname = cfg.Dispatch.DefaultFormat
		}
		f, err := codec.ParseFormat(fname)
		if err != nil {
			fatalf("%v", err)
		}
		req := &call.Request{
			ClassName:  *class,
			MethodName: *method,
			Sinks:      parsePorts(*sinks, "sinks"),
			Sources:    parsePorts(*sources, "sources"),
		}
		payload, err := codec.EncodeRequest(reg, f, req)
		if err != nil {
			fatalf("encode request: %v", err)
		}
		decoded, _, err = codec.DecodeRequest(reg, payload)
		if err != nil {
			fatalf("decode request: %v", err)
		}
		zap.L().Info("request framed", zap.String("format", f.String()), zap.Int("bytes", len(payload)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	out, err := store.Dispatch(ctx, "simplecrop", decoded)
	if err != nil {
		if errors.Is(err, iface.ErrClassNotFound) || errors.Is(err, iface.ErrMethodNotFound) {
			fatalf("no such target %s.%s: %v", decoded.ClassName, decoded.MethodName, err)
		}
		fatalf("dispatch: %v", err)
	}

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fatalf("render result: %v", err)
	}
	fmt.Println(string(enc))
}

// simpleCrop is the toy crop model backing the demo handlers.
type simpleCrop struct {
	planted bool
	days    int
	yield   float64
	values  map[string]any
}

func registerSimpleCrop(set *call.HandlerSet) {
	model := &simpleCrop{values: map[string]any{}}
	set.RegisterFunc("simplecrop.initialize", func(_ context.Context, _, sources call.Ports) (any, error) {
		model.planted = true
		model.days = 0
		model.yield = 0
		return map[string]any{"planted": true, "plant_date": sources["plant_date"]}, nil
	})
	set.RegisterFunc("simplecrop.update", func(_ context.Context, _, sources call.Ports) (any, error) {
		if !model.planted {
			return nil, fmt.Errorf("update before initialize")
		}
		model.days++
		if rain, ok := sources["rainfall"].(float64); ok {
			model.yield += rain * 0.1
		}
		return map[string]any{"day": model.days, "yield": model.yield}, nil
	})
	set.RegisterFunc("simplecrop.set_value", func(_ context.Context, _, sources call.Ports) (any, error) {
		for k, v := range sources {
			model.values[k] = v
		}
		return len(sources), nil
	})
	set.RegisterFunc("simplecrop.finalize", func(_ context.Context, _, _ call.Ports) (any, error) {
		model.planted = false
		return map[string]any{"days": model.days, "yield": model.yield}, nil
	})
	set.RegisterFunc("weather.read_daily", func(_ context.Context, _, sources call.Ports) (any, error) {
		return map[string]any{"station": sources["station"], "rainfall": 2.5, "temp_max": 31.0}, nil
	})
}

func buildSimpleCrop() *iface.ModuleInterface {
	sim := mustClass("simulation",
		iface.NewMethodInterface("initialize", "simplecrop.initialize", nil),
		iface.NewMethodInterface("update", "simplecrop.update", nil),
		iface.NewMethodInterface("set_value", "simplecrop.set_value", nil),
		iface.NewMethodInterface("finalize", "simplecrop.finalize", nil),
	)
	weather := mustClass("weather",
		iface.NewMethodInterface("read_daily", "weather.read_daily", nil),
	)
	m, err := iface.NewModuleInterface([]*iface.ClassInterface{sim, weather})
	if err != nil {
		fatalf("build module: %v", err)
	}
	return m
}

func mustClass(name string, methods ...*iface.MethodInterface) *iface.ClassInterface {
	c, err := iface.NewClassInterface(name, methods)
	if err != nil {
		fatalf("build class %s: %v", name, err)
	}
	return c
}

func parsePorts(s, flagName string) call.Ports {
	p := call.Ports{}
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		fatalf("parse -%s: %v", flagName, err)
	}
	return p
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
