package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LoggerFactory builds zap.Logger instances writing diagnostics to a single destination.
type LoggerFactory struct {
	outputWriter io.Writer
}

// NewLoggerFactory constructs a factory whose loggers write to standard error.
func NewLoggerFactory() *LoggerFactory {
	return NewLoggerFactoryWithWriter(os.Stderr)
}

// NewLoggerFactoryWithWriter constructs a factory whose loggers write to outputWriter.
func NewLoggerFactoryWithWriter(outputWriter io.Writer) *LoggerFactory {
	if outputWriter == nil {
		outputWriter = os.Stderr
	}
	return &LoggerFactory{outputWriter: outputWriter}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
// Values are matched case-insensitively.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	normalizedLevel := LogLevel(strings.ToLower(strings.TrimSpace(string(requestedLogLevel))))
	zapLogLevel, levelExists := logLevelMapping[normalizedLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoder, encoderError := buildEncoder(LogFormat(strings.ToLower(strings.TrimSpace(string(requestedLogFormat)))))
	if encoderError != nil {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(factory.outputWriter)), zap.NewAtomicLevelAt(zapLogLevel))
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

func buildEncoder(format LogFormat) (zapcore.Encoder, error) {
	switch format {
	case LogFormatStructured:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	case LogFormatConsole:
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.CallerKey = zapcore.OmitKey
		encoderConfiguration.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		return zapcore.NewConsoleEncoder(encoderConfiguration), nil
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, format)
	}
}
