package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
	Debugf(format string, v ...any)
	Warnf(format string, v ...any)
}

// ZeroLogger prints through zerolog at info level.
type ZeroLogger struct {
	log zerolog.Logger
}

var _ Logger = (*ZeroLogger)(nil)

func NewZeroLogger(w io.Writer, level zerolog.Level) *ZeroLogger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return &ZeroLogger{
		log: zerolog.New(output).Level(level).With().Timestamp().Logger(),
	}
}

func (l *ZeroLogger) Println(v ...any) {
	l.log.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
func (l *ZeroLogger) Printf(format string, v ...any) {
	l.log.Info().Msgf(format, v...)
}
func (l *ZeroLogger) Print(v ...any) {
	l.log.Info().Msg(fmt.Sprint(v...))
}
func (l *ZeroLogger) Debugf(format string, v ...any) {
	l.log.Debug().Msgf(format, v...)
}
func (l *ZeroLogger) Warnf(format string, v ...any) {
	l.log.Warn().Msgf(format, v...)
}

var DefaultLogger Logger = NewZeroLogger(os.Stderr, zerolog.InfoLevel)

type _silentLogger struct {
}

func (l *_silentLogger) Println(v ...any)               {}
func (l *_silentLogger) Printf(format string, v ...any) {}
func (l *_silentLogger) Print(v ...any)                 {}
func (l *_silentLogger) Debugf(format string, v ...any) {}
func (l *_silentLogger) Warnf(format string, v ...any)  {}

var SilentLogger Logger = &_silentLogger{}

// FuncLogger sends every line to a callback.
type FuncLogger struct {
	Log func(string)
}

func (l *FuncLogger) Println(v ...any) {
	l.Log(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
func (l *FuncLogger) Printf(format string, v ...any) {
	l.Log(fmt.Sprintf(format, v...))
}
func (l *FuncLogger) Print(v ...any) {
	l.Log(fmt.Sprint(v...))
}
func (l *FuncLogger) Debugf(format string, v ...any) {
	l.Log(fmt.Sprintf(format, v...))
}
func (l *FuncLogger) Warnf(format string, v ...any) {
	l.Log("warning: " + fmt.Sprintf(format, v...))
}

// LoggerForLevel maps "silent" to SilentLogger and every other value to a
// zerolog level.
func LoggerForLevel(level string) (Logger, Error) {
	if level == "silent" {
		return SilentLogger, NilError
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, Wrap(err)
	}
	return NewZeroLogger(os.Stderr, parsed), NilError
}
