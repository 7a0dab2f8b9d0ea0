package logging

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultQueueSize = 1024

type severity int

const (
	severityInfo severity = iota
	severityWarn
	severityError
)

type entry struct {
	sev    severity
	msg    string
	fields logrus.Fields
}

// Logger is an asynchronous log sink. Producers enqueue entries and a single
// consumer goroutine writes them to logrus in submission order. Enqueueing
// only blocks while the queue is full, so a caller's entries are never
// reordered or dropped.
type Logger struct {
	out   *logrus.Logger
	queue chan entry

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

func New() *Logger {
	return newWithQueueSize(defaultQueueSize)
}

func newWithQueueSize(size int) *Logger {
	out := logrus.New()
	out.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "02/01/2006 - 15:04:05",
	})

	return &Logger{
		out:   out,
		queue: make(chan entry, size),
		done:  make(chan struct{}),
	}
}

// SetOutput redirects the underlying sink. Used by tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.out.SetOutput(w)
}

// Start launches the consumer goroutine. Safe to call once at process start.
func (l *Logger) Start() {
	l.startOnce.Do(func() {
		go l.consume()
	})
}

// Stop closes the queue and blocks until every pending entry has been written.
func (l *Logger) Stop() {
	l.stopOnce.Do(func() {
		close(l.queue)
		<-l.done
	})
}

func (l *Logger) consume() {
	defer close(l.done)
	for e := range l.queue {
		l.write(e)
	}
}

func (l *Logger) write(e entry) {
	line := l.out.WithFields(e.fields)
	switch e.sev {
	case severityError:
		line.Error(e.msg)
	case severityWarn:
		line.Warn(e.msg)
	default:
		line.Info(e.msg)
	}
}

func (l *Logger) enqueue(e entry) {
	// Blocks only while the queue is full. Writing the entry synchronously
	// instead would let it jump ahead of the caller's queued entries.
	l.queue <- e
}

func (l *Logger) Info(msg string, fields logrus.Fields) {
	l.enqueue(entry{sev: severityInfo, msg: msg, fields: fields})
}

func (l *Logger) Warn(msg string, fields logrus.Fields) {
	l.enqueue(entry{sev: severityWarn, msg: msg, fields: fields})
}

func (l *Logger) Error(msg string, fields logrus.Fields) {
	l.enqueue(entry{sev: severityError, msg: msg, fields: fields})
}
