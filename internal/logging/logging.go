// Package logging routes diagnostic output to a rotating log file so the
// report written to stdout stays clean.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu        sync.Mutex
	logWriter *lumberjack.Logger
)

// Formatter renders entries as "[time] [level] message | k=v, ...".
type Formatter struct{}

// Format renders a single log entry.
func (f *Formatter) Format(entry *log.Entry) ([]byte, error) {
	buffer := entry.Buffer
	if buffer == nil {
		buffer = &bytes.Buffer{}
	}

	level := entry.Level.String()
	if level == "warning" {
		level = "warn"
	}
	fmt.Fprintf(buffer, "[%s] [%-5s] %s", entry.Time.Format("2006-01-02 15:04:05"), level, strings.TrimRight(entry.Message, "\r\n"))

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buffer.WriteString(" |")
		for i, k := range keys {
			if i > 0 {
				buffer.WriteByte(',')
			}
			fmt.Fprintf(buffer, " %s=%v", k, entry.Data[k])
		}
	}
	buffer.WriteByte('\n')
	return buffer.Bytes(), nil
}

// Init points the standard logrus logger at a rotating file at logPath.
// An empty path discards all log output.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logWriter != nil {
		_ = logWriter.Close()
		logWriter = nil
	}

	log.SetFormatter(&Formatter{})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	if strings.TrimSpace(logPath) == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	logWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 3,
	}
	log.SetOutput(logWriter)
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logWriter == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logWriter.Close()
	logWriter = nil
	return err
}

// LogEvent logs a formatted message at info level.
func LogEvent(format string, args ...any) {
	log.Infof(format, args...)
}

// LogRequest logs an outbound or inbound control-plane exchange at debug level.
func LogRequest(direction, region, target string, payload any) {
	log.WithFields(requestFields(direction, region, target)).Debug(formatPayload(payload))
}

func requestFields(direction, region, target string) log.Fields {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	if dir == "" {
		dir = "OUT"
	}
	regionValue := strings.TrimSpace(region)
	if regionValue == "" {
		regionValue = "unknown"
	}
	fields := log.Fields{
		"direction": dir,
		"region":    regionValue,
	}
	if target = strings.TrimSpace(target); target != "" {
		fields["target"] = target
	}
	return fields
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
