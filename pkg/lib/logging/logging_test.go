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
	"testing"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "debug")
	t.Setenv(DisableJSONLoggingEnvVar, "true")

	logger, err := NewLogger(ErrorLogLevel)
	require.NoError(t, err)
	require.True(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))

	t.Setenv(LogLevelEnvVar, "verbose")
	_, err = NewLogger(InfoLogLevel)
	require.Error(t, err)
	require.Equal(t, ErrInvalidLogLevel, errors.GetKind(err))
}

func TestDefaultZapConfig(t *testing.T) {
	t.Parallel()

	config := DefaultZapConfig(WarningLogLevel, map[string]interface{}{"workspace": "default"})
	require.Equal(t, "json", config.Encoding)
	require.Equal(t, "message", config.EncoderConfig.MessageKey)
	require.Equal(t, zapcore.WarnLevel, config.Level.Level())
	require.Equal(t, map[string]interface{}{"workspace": "default"}, config.InitialFields["labels"])
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, WarningLogLevel, LogLevelFromString("warning"))
	require.Equal(t, UnknownLogLevel, LogLevelFromString("trace"))
	require.Equal(t, []string{"debug", "info", "warning", "error"}, LogLevelTypes())
	require.Equal(t, zapcore.ErrorLevel, ToZapLogLevel(ErrorLogLevel))

	var level LogLevel
	require.NoError(t, level.UnmarshalText([]byte("info")))
	require.Equal(t, InfoLogLevel, level)
}
