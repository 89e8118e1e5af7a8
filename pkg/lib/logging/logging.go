/*
Copyright 2022 Cortex Labs, Inc.

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

package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	LogLevelEnvVar           = "QRUN_LOG_LEVEL"
	DisableJSONLoggingEnvVar = "QRUN_DISABLE_JSON_LOGGING"
)

var logger *zap.SugaredLogger
var loggerLock sync.Mutex

// NewLogger builds a logger from QRUN_LOG_LEVEL (default: defaultLevel) and QRUN_DISABLE_JSON_LOGGING
func NewLogger(defaultLevel LogLevel, fields ...map[string]interface{}) (*zap.SugaredLogger, error) {
	level := defaultLevel
	if levelStr := os.Getenv(LogLevelEnvVar); levelStr != "" {
		level = LogLevelFromString(strings.ToLower(levelStr))
		if level == UnknownLogLevel {
			return nil, ErrorInvalidLogLevel(levelStr, LogLevelTypes())
		}
	}

	zapConfig := DefaultZapConfig(level, fields...)

	if strings.ToLower(os.Getenv(DisableJSONLoggingEnvVar)) == "true" {
		zapConfig.Encoding = "console"
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return zapLogger.Sugar(), nil
}

// GetLogger returns the process-wide logger, building it on first use
func GetLogger() *zap.SugaredLogger {
	loggerLock.Lock()
	defer loggerLock.Unlock()

	if logger == nil {
		var err error
		logger, err = NewLogger(WarningLogLevel)
		if err != nil {
			panic(err)
		}
	}
	return logger
}

func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func DefaultZapConfig(level LogLevel, fields ...map[string]interface{}) zap.Config {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.MessageKey = "message"

	labels := map[string]interface{}{}
	for _, m := range fields {
		for k, v := range m {
			labels[k] = v
		}
	}

	initialFields := map[string]interface{}{}
	if len(labels) > 0 {
		initialFields["labels"] = labels
	}

	return zap.Config{
		Level:            zap.NewAtomicLevelAt(ToZapLogLevel(level)),
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    initialFields,
	}
}
