package log

import (
	"strings"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/sirupsen/logrus"
)

const (
	// PrettyFormatName writes human readable, colored lines.
	PrettyFormatName = "pretty"
	// KeyValueFormatName writes `key=value` pairs without colors.
	KeyValueFormatName = "key-value"
	// JSONFormatName writes one JSON object per line.
	JSONFormatName = "json"

	timestampFormat = "15:04:05.000"
)

// AllFormatNames lists the accepted values of ParseFormat.
var AllFormatNames = []string{PrettyFormatName, KeyValueFormatName, JSONFormatName}

// ParseFormat returns the logrus formatter registered under the given name.
func ParseFormat(name string) (logrus.Formatter, error) {
	switch strings.ToLower(name) {
	case PrettyFormatName, "":
		return &logrus.TextFormatter{
			FullTimestamp:          true,
			TimestampFormat:        timestampFormat,
			DisableLevelTruncation: true,
			PadLevelText:           true,
		}, nil
	case KeyValueFormatName:
		return &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		}, nil
	case JSONFormatName:
		return &logrus.JSONFormatter{}, nil
	}

	return nil, errors.Errorf("invalid log format %q, supported formats: %s", name, strings.Join(AllFormatNames, ", "))
}
