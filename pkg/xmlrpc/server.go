package xmlrpc

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Well-known fault codes. The negative ones follow the XML-RPC errata;
// the positive ones mirror HTTP status codes the way blog servers
// conventionally surface them.
const (
	FaultParse         = -32700
	FaultUnknownMethod = -32601
	FaultBadRequest    = 400
	FaultAuth          = 403
	FaultNotFound      = 404
	FaultInternal      = 500
)

// Fault is a protocol-level error returned to the client as a
// (code, message) pair rather than a transport failure.
type Fault struct {
	Code    int
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("xmlrpc fault %d: %s", f.Code, f.Message)
}

// NewFault builds a fault with a formatted message.
func NewFault(code int, format string, args ...any) *Fault {
	return &Fault{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Handler processes one decoded method call and returns a result that
// MarshalResponse understands, or an error (ideally a *Fault).
type Handler func(params []Value) (any, error)

// Server dispatches method calls by name through a static method table.
type Server struct {
	methods map[string]Handler
	log     *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{
		methods: make(map[string]Handler),
		log:     log,
	}
}

// Register binds a method name to its handler.
func (s *Server) Register(name string, h Handler) {
	s.methods[name] = h
}

// HandleRequest runs one request body end to end and returns the response
// document. Per XML-RPC convention the transport status is always 200; all
// failures travel as faults in the body.
func (s *Server) HandleRequest(body []byte) []byte {
	method, params, err := UnmarshalCall(body)
	if err != nil {
		s.log.Warn("unparseable method call", zap.Error(err))
		return MarshalFault(NewFault(FaultParse, "parse error: %v", err))
	}

	h, ok := s.methods[method]
	if !ok {
		s.log.Warn("unknown method", zap.String("method", method))
		return MarshalFault(NewFault(FaultUnknownMethod, "unknown method %q", method))
	}

	start := time.Now()
	result, err := h(params)
	if err != nil {
		f := AsFault(err)
		s.log.Info("method returned fault",
			zap.String("method", method),
			zap.Int("code", f.Code),
			zap.String("message", f.Message))
		return MarshalFault(f)
	}

	out, err := MarshalResponse(result)
	if err != nil {
		s.log.Error("response marshal failed", zap.String("method", method), zap.Error(err))
		return MarshalFault(NewFault(FaultInternal, "internal error: %v", err))
	}
	s.log.Info("method call served",
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)))
	return out
}

// AsFault coerces any error into a *Fault, wrapping non-fault errors as an
// internal fault carrying the error text verbatim.
func AsFault(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return &Fault{Code: FaultInternal, Message: err.Error()}
}
