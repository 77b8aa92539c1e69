package call

// Resolver rebinds the handle references carried in a decoded descriptor
// to local handlers. Decoding is the only consumer; a nil Resolver
// leaves every method unbound, which is enough to inspect a descriptor.
type Resolver interface {
	Resolve(handle string) (Handler, bool)
}

// HandlerSet maps handle references to handlers. It is the plain
// map-backed Resolver hosts register their implementations in before
// decoding a descriptor.
type HandlerSet struct{ byHandle map[string]Handler }

// NewHandlerSet constructs an empty set.
func NewHandlerSet() *HandlerSet {
	return &HandlerSet{byHandle: make(map[string]Handler)}
}

// Register binds a handle reference to h, replacing any previous binding.
func (s *HandlerSet) Register(handle string, h Handler) { s.byHandle[handle] = h }

// RegisterFunc binds a handle reference to a function.
func (s *HandlerSet) RegisterFunc(handle string, f HandlerFunc) { s.byHandle[handle] = f }

// Resolve returns the handler bound to handle, or ok=false.
func (s *HandlerSet) Resolve(handle string) (Handler, bool) {
	h, ok := s.byHandle[handle]
	return h, ok
}
