package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpritcha/meillionen/pkg/iface"
)

func main() {
	outDir := flag.String("out", "testdata/descriptor", "output directory for descriptor buffers")
	flag.Parse()
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	buf, err := buildSimpleCrop().MarshalBinary()
	if err != nil {
		log.Fatal(err)
	}

	// 1) The complete demo descriptor
	writeOut(*outDir, "simplecrop.bin", buf)

	// 2) Truncated variant for decoder error paths
	writeOut(*outDir, "simplecrop_truncated.bin", buf[:len(buf)/2])

	// 3) Broken root offset variant
	bad := append([]byte(nil), buf...)
	bad[0], bad[1], bad[2], bad[3] = 0xFF, 0xFF, 0xFF, 0xFF
	writeOut(*outDir, "simplecrop_badroot.bin", bad)

	fmt.Println("Generated descriptors in", *outDir)
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
		log.Fatal(err)
	}
	return m
}

func mustClass(name string, methods ...*iface.MethodInterface) *iface.ClassInterface {
	c, err := iface.NewClassInterface(name, methods)
	if err != nil {
		log.Fatal(err)
	}
	return c
}

func writeOut(dir, name string, b []byte) {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%-28s %5d bytes  head: %s\n", name, len(b), shortHex(b, 64))
}

func shortHex(b []byte, n int) string {
	if len(b) == 0 {
		return ""
	}
	if n > len(b) {
		n = len(b)
	}
	enc := hex.EncodeToString(b[:n])
	if len(b) > n {
		enc += "..."
	}
	var out []string
	for i := 0; i < len(enc); i += 4 {
		j := i + 4
		if j > len(enc) {
			j = len(enc)
		}
		out = append(out, enc[i:j])
	}
	return strings.Join(out, " ")
}
