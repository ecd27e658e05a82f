/*
Copyright 2024 The GeoSys Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level       string
	Filename    string
	SendToFile  bool
	Development bool
	MaxSize     int // megabytes
	MaxBackups  int
	MaxAge      int // days
}

var l *zap.Logger

func Init(cfg *Config) {
	l = newLogger(cfg)
	zap.ReplaceGlobals(l)
}

func newLogger(cfg *Config) *zap.Logger {
	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if cfg.Development {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var syncer zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	if cfg.SendToFile {
		maxSize := cfg.MaxSize
		if maxSize == 0 {
			maxSize = 100
		}
		fileSyncer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    maxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		})
		syncer = zapcore.NewMultiWriteSyncer(syncer, fileSyncer)
	}

	core := zapcore.NewCore(encoder, syncer, level)

	opts := []zap.Option{zap.AddCallerSkip(1)}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddCaller())
	}

	return zap.New(core, opts...)
}

func getLogger() *zap.Logger {
	if l == nil {
		Init(&Config{Level: "debug", Development: true})
	}

	return l
}

// Logger returns the raw zap logger.
func Logger() *zap.Logger {
	return getLogger()
}

// SugaredLogger returns a sugared logger without the wrapper's caller skip,
// suitable for handing to services and handlers.
func SugaredLogger() *zap.SugaredLogger {
	return getLogger().WithOptions(zap.AddCallerSkip(-1)).Sugar()
}

func Debug(args ...interface{}) {
	getLogger().Sugar().Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	getLogger().Sugar().Debugf(format, args...)
}

func Info(args ...interface{}) {
	getLogger().Sugar().Info(args...)
}

func Infof(format string, args ...interface{}) {
	getLogger().Sugar().Infof(format, args...)
}

func Warn(args ...interface{}) {
	getLogger().Sugar().Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	getLogger().Sugar().Warnf(format, args...)
}

func Error(args ...interface{}) {
	getLogger().Sugar().Error(args...)
}

func Errorf(format string, args ...interface{}) {
	getLogger().Sugar().Errorf(format, args...)
}

func Panic(args ...interface{}) {
	getLogger().Sugar().Panic(args...)
}

func Panicf(format string, args ...interface{}) {
	getLogger().Sugar().Panicf(format, args...)
}

func Fatal(args ...interface{}) {
	getLogger().Sugar().Fatal(args...)
}

func Fatalf(format string, args ...interface{}) {
	getLogger().Sugar().Fatalf(format, args...)
}
