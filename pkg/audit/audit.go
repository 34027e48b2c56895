// Package audit writes a log of operations changing Scorch through the console.
package audit

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const SystemName = "scorchd"

// field keys
const (
	FieldEventID = "event_id"
	FieldAction  = "action"
	FieldTarget  = "target"
	FieldRemote  = "remote"
)

type Formatter struct {
	SystemName string
}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	fmt.Fprintf(b, "Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05"))
	fmt.Fprintf(b, "Event Source: %s, ", f.SystemName)
	fmt.Fprintf(b, "Event Type: %s, ", strings.ToUpper(entry.Level.String()))

	eventID, ok := entry.Data[FieldEventID]
	if !ok {
		eventID = uuid.New().String()
	}
	fmt.Fprintf(b, "Event ID: %v, ", eventID)
	fmt.Fprintf(b, "Message: %s", entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == FieldEventID {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, ", %s: %v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

type Config struct {
	// File to write. When empty, it writes to stderr.
	File string

	MaxSizeMB  int
	MaxBackups int
}

type Logger struct {
	logger *logrus.Logger
	closer io.Closer
}

// New creates an audit logger rotating its file with lumberjack.
func New(conf Config) *Logger {
	l := logrus.New()
	l.SetFormatter(&Formatter{SystemName: SystemName})
	l.SetLevel(logrus.InfoLevel)

	ret := &Logger{logger: l}
	if conf.File == "" {
		l.SetOutput(os.Stderr)
		return ret
	}

	file := &lumberjack.Logger{
		Filename:   conf.File,
		MaxSize:    conf.MaxSizeMB,
		MaxBackups: conf.MaxBackups,
		MaxAge:     28,
		Compress:   true,
	}
	l.SetOutput(file)
	ret.closer = file
	return ret
}

// NewWithWriter creates an audit logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	l := logrus.New()
	l.SetFormatter(&Formatter{SystemName: SystemName})
	l.SetOutput(w)
	return &Logger{logger: l}
}

// Record writes an operation done on target.
//
// A nil err is recorded as INFO and the others as ERROR.
func (l *Logger) Record(remote string, action string, target string, err error) {
	entry := l.logger.WithFields(logrus.Fields{
		FieldAction: action,
		FieldTarget: target,
		FieldRemote: remote,
	})
	if err != nil {
		entry.WithError(err).Errorf("%s %s failed", action, target)
		return
	}
	entry.Infof("%s %s", action, target)
}

// Failure writes an error shown to a user with its event id, so the user can refer to it.
func (l *Logger) Failure(eventID string, route string, err error) {
	l.logger.WithFields(logrus.Fields{
		FieldEventID: eventID,
		"route":      route,
	}).WithError(err).Error("page failed")
}

// StdLogger returns a *log.Logger writing to the audit log as WARNING.
func (l *Logger) StdLogger() *log.Logger {
	return log.New(l.logger.WriterLevel(logrus.WarnLevel), "", 0)
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
