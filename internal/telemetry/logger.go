package telemetry

import (
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// JSONLogger writes one JSON object per event. A logger built with an empty
// path discards everything.
type JSONLogger struct {
	z *zap.Logger
	w io.Closer
}

func NewJSONLogger(path string) (*JSONLogger, error) {
	if path == "" {
		return &JSONLogger{z: zap.NewNop()}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLogger{z: newZap(zapcore.AddSync(f)), w: f}, nil
}

// NewWriterLogger logs to w, which the caller keeps ownership of.
func NewWriterLogger(w io.Writer) *JSONLogger {
	return &JSONLogger{z: newZap(zapcore.AddSync(w))}
}

func newZap(ws zapcore.WriteSyncer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.MessageKey = "msg"
	enc.LevelKey = "level"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.CallerKey = ""
	enc.StacktraceKey = ""
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(ws), zapcore.DebugLevel)
	return zap.New(core)
}

func (l *JSONLogger) Info(msg string, fields map[string]any) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Info(msg, zapFields(fields)...)
}

func (l *JSONLogger) Error(msg string, fields map[string]any) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Error(msg, zapFields(fields)...)
}

// With returns a logger that adds fields to every event.
func (l *JSONLogger) With(fields map[string]any) *JSONLogger {
	if l == nil || l.z == nil {
		return l
	}
	return &JSONLogger{z: l.z.With(zapFields(fields)...)}
}

func (l *JSONLogger) Close() error {
	if l == nil || l.z == nil {
		return nil
	}
	_ = l.z.Sync()
	if l.w == nil {
		return nil
	}
	return l.w.Close()
}

// zapFields keeps key order stable so identical events encode identically.
func zapFields(fields map[string]any) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
