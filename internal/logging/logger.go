// Package logging provides categorized logging for vigil, one category
// per subsystem, backed by zap. Until Init runs the root logger is a
// nop, so library code and tests stay silent; the CLI calls Init once
// at startup.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategorySpec    Category = "spec"    // identity minting, fragment registry
	CategoryEncoder Category = "encoder" // layout -> predicate construction
	CategoryFacts   Category = "facts"   // datalog export and queries
	CategoryStore   Category = "store"   // sqlite persistence
	CategoryWatch   Category = "watch"   // filesystem watch loop
	CategoryCLI     Category = "cli"     // command surface
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init builds the process logger. level is one of debug|info|warn|error,
// format is "console" or "json".
func Init(level, format string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if format == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	root = logger
	mu.Unlock()
	return nil
}

// Get returns the sugared logger for the given category.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sugar().With("category", string(category))
}

// Sync flushes buffered log entries. Call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// =============================================================================

// Spec logs to the spec category.
func Spec(format string, args ...interface{}) {
	Get(CategorySpec).Infof(format, args...)
}

// SpecDebug logs debug to the spec category.
func SpecDebug(format string, args ...interface{}) {
	Get(CategorySpec).Debugf(format, args...)
}

// Encoder logs to the encoder category.
func Encoder(format string, args ...interface{}) {
	Get(CategoryEncoder).Infof(format, args...)
}

// EncoderDebug logs debug to the encoder category.
func EncoderDebug(format string, args ...interface{}) {
	Get(CategoryEncoder).Debugf(format, args...)
}

// Facts logs to the facts category.
func Facts(format string, args ...interface{}) {
	Get(CategoryFacts).Infof(format, args...)
}

// FactsDebug logs debug to the facts category.
func FactsDebug(format string, args ...interface{}) {
	Get(CategoryFacts).Debugf(format, args...)
}

// Store logs to the store category.
func Store(format string, args ...interface{}) {
	Get(CategoryStore).Infof(format, args...)
}

// StoreDebug logs debug to the store category.
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debugf(format, args...)
}

// Watch logs to the watch category.
func Watch(format string, args ...interface{}) {
	Get(CategoryWatch).Infof(format, args...)
}

// WatchDebug logs debug to the watch category.
func WatchDebug(format string, args ...interface{}) {
	Get(CategoryWatch).Debugf(format, args...)
}

// CLI logs to the cli category.
func CLI(format string, args ...interface{}) {
	Get(CategoryCLI).Infof(format, args...)
}

// CLIDebug logs debug to the cli category.
func CLIDebug(format string, args ...interface{}) {
	Get(CategoryCLI).Debugf(format, args...)
}
