package api

import (
	"github.com/cpritcha/meillionen/pkg/call"
	"github.com/cpritcha/meillionen/pkg/iface"
)

// Re-export the descriptor and call types API consumers work with, so
// most programs only need this import.
type (
	ModuleInterface = iface.ModuleInterface
	ClassInterface  = iface.ClassInterface
	MethodInterface = iface.MethodInterface

	Request     = call.Request
	Ports       = call.Ports
	Handler     = call.Handler
	HandlerFunc = call.HandlerFunc
	Resolver    = call.Resolver
	HandlerSet  = call.HandlerSet
)

// NewHandlerSet mirrors call.NewHandlerSet for api-only consumers.
func NewHandlerSet() *HandlerSet { return call.NewHandlerSet() }
