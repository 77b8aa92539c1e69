package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cpritcha/meillionen/pkg/config"
	"github.com/cpritcha/meillionen/pkg/iface"
	"github.com/cpritcha/meillionen/pkg/observability"
)

func main() {
	in := flag.String("in", "", "descriptor file to inspect")
	cfgPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()
	if *in == "" {
		fatalf("missing -in descriptor path")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		fatalf("setup logger: %v", err)
	}
	defer logger.Sync()

	buf, err := os.ReadFile(*in)
	if err != nil {
		fatalf("read descriptor: %v", err)
	}
	if len(buf) > cfg.Descriptor.MaxBytes {
		fatalf("descriptor is %d bytes, limit %d", len(buf), cfg.Descriptor.MaxBytes)
	}

	// No resolver: inspection never needs live handlers.
	m, err := iface.DecodeModuleInterface(buf, nil)
	if err != nil {
		fatalf("decode descriptor: %v", err)
	}
	zap.L().Info("descriptor decoded",
		zap.String("file", *in),
		zap.Int("bytes", len(buf)),
		zap.Int("classes", len(m.Classes())))

	for _, c := range m.Classes() {
		fmt.Printf("class %s (%d methods)\n", c.Name(), len(c.Methods()))
		for _, mi := range c.Methods() {
			fmt.Printf("  %-12s handle=%s\n", mi.Name(), mi.Handle())
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
