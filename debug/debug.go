// Package debug provides env-gated debug logging for the mapping engine.
//
// Gates are read once at init from REMAP_DEBUG_* environment variables.
// Logging goes through a zap logger writing to stderr; the logger is a no-op
// unless at least one gate is enabled.
package debug

import (
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/remapfmt/remap/ir"
)

type debug struct {
	Transform bool
	Reverse   bool
	Apply     bool
	Bind      bool
}

var (
	d   *debug
	log *zap.SugaredLogger
)

func init() {
	d = &debug{}
	d.Transform = boolEnv("REMAP_DEBUG_TRANSFORM")
	d.Reverse = boolEnv("REMAP_DEBUG_REVERSE")
	d.Apply = boolEnv("REMAP_DEBUG_APPLY")
	d.Bind = boolEnv("REMAP_DEBUG_BIND")

	if d.Transform || d.Reverse || d.Apply || d.Bind {
		cfg := zap.NewDevelopmentEncoderConfig()
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zapcore.Lock(os.Stderr),
			zapcore.DebugLevel,
		)
		log = zap.New(core).Sugar()
	} else {
		log = zap.NewNop().Sugar()
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Transform() bool {
	return d.Transform
}
func Reverse() bool {
	return d.Reverse
}
func Apply() bool {
	return d.Apply
}
func Bind() bool {
	return d.Bind
}

// Logf logs a formatted debug message. Arguments of type *ir.Node are
// rendered as JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		node, ok := args[i].(*ir.Node)
		if !ok {
			continue
		}
		d, err := ir.ToJSON(node)
		if err != nil {
			continue
		}
		args[i] = string(d)
	}
	log.Debugf(msg, args...)
}

// Logger returns the shared debug logger.
func Logger() *zap.SugaredLogger {
	return log
}
