/*
 * Copyright (c) 2017-2020 The qitmeer developers
 */

// Package log is the leveled key/value logger every package logs through.
// Lines go to stderr, coloured on a terminal, and optionally to a rotated
// log file.
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jrick/logrotate/rotator"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

type (
	Logger = log.Logger
	Lvl    = log.Lvl
	Ctx    = log.Ctx
)

const (
	LvlCrit  = log.LvlCrit
	LvlError = log.LvlError
	LvlWarn  = log.LvlWarn
	LvlInfo  = log.LvlInfo
	LvlDebug = log.LvlDebug
	LvlTrace = log.LvlTrace
)

const (
	// rotateThresholdKB is the size a log file grows to before it is
	// rolled.
	rotateThresholdKB = 10 * 1024
	maxRolls          = 3
)

var (
	glogger *log.GlogHandler

	logWrite *logWriter
)

// logWriter copies every line to stderr and, once InitLogRotator ran, to
// the rotated log file.
type logWriter struct {
	logRotator *rotator.Rotator

	// nil unless stderr is a colour capable terminal
	colorableWrite io.Writer
}

func newLogWriter() *logWriter {
	lw := &logWriter{}
	if isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb" {
		lw.colorableWrite = colorable.NewColorableStderr()
	}
	return lw
}

func (lw *logWriter) Close() {
	if lw.logRotator != nil {
		lw.logRotator.Close()
		lw.logRotator = nil
	}
}

func (lw *logWriter) IsUseColor() bool {
	return lw.colorableWrite != nil
}

func (lw *logWriter) Write(p []byte) (n int, err error) {
	if lw.logRotator != nil {
		lw.logRotator.Write(p)
	}

	if lw.colorableWrite != nil {
		lw.colorableWrite.Write(p)
	} else {
		os.Stderr.Write(p)
	}
	return len(p), nil
}

func init() {
	logWrite = newLogWriter()
	glogger = log.NewGlogHandler(log.StreamHandler(logWrite, log.TerminalFormat(logWrite.IsUseColor())))
	log.Root().SetHandler(glogger)
	glogger.Verbosity(LvlInfo)
}

// InitLogRotator makes every following line also go to logFile, rolled
// into numbered files in the same directory.
func InitLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return errors.Wrap(err, "failed to create log directory")
	}
	r, err := rotator.New(logFile, rotateThresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrap(err, "failed to create file rotator")
	}
	logWrite.Close()
	logWrite.logRotator = r
	return nil
}

// LvlFromString parses a level name such as "debug" or "warn".
func LvlFromString(level string) (Lvl, error) {
	return log.LvlFromString(level)
}

// SetLogLevel sets the verbosity of every module logger.
func SetLogLevel(level string) error {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		return err
	}
	glogger.Verbosity(lvl)
	return nil
}

// SetModuleLevels applies a glog style vmodule pattern, e.g.
// "verification=5,store=4".
func SetModuleLevels(pattern string) error {
	return glogger.Vmodule(pattern)
}

func LogWrite() *logWriter {
	return logWrite
}

// New returns a logger carrying ctx on every line.
func New(ctx ...interface{}) Logger {
	return log.New(ctx...)
}

func Trace(msg string, ctx ...interface{}) { log.Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { log.Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { log.Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { log.Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { log.Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { log.Crit(msg, ctx...) }
