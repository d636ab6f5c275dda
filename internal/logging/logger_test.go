package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRespectsLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{Level: WarnLevel, Writer: &buf, NoColor: true})
	l.Info("should not appear")
	l.Warn("should appear")
	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("expected info-level message filtered out, got %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Fatalf("expected warn-level message present, got %q", out)
	}
}

func TestWithFieldAddsStructuredContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{Level: InfoLevel, Writer: &buf, NoColor: true})
	l.WithField("run", 3).Info("tick complete")
	if !strings.Contains(buf.String(), "run=3") {
		t.Fatalf("expected field rendered in output, got %q", buf.String())
	}
}

func TestWithPrefixIsIndependentPerDerivedLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithConfig(Config{Level: InfoLevel, Writer: &buf, NoColor: true})
	a := base.WithPrefix("mc")
	b := base.WithPrefix("replay")
	a.Info("from a")
	b.Info("from b")
	out := buf.String()
	if !strings.Contains(out, "[mc]") || !strings.Contains(out, "[replay]") {
		t.Fatalf("expected both prefixes present independently, got %q", out)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if ParseLevel("bogus") != InfoLevel {
		t.Fatalf("expected unknown level string to default to InfoLevel")
	}
	if ParseLevel("ERROR") != ErrorLevel {
		t.Fatalf("expected case-insensitive parse")
	}
}

type recordingLog struct{ lines []string }

func (r *recordingLog) Debug(args ...interface{})                            {}
func (r *recordingLog) Debugf(string, ...interface{})                        {}
func (r *recordingLog) Info(args ...interface{})                             { r.lines = append(r.lines, sprint(args...)) }
func (r *recordingLog) Infof(string, ...interface{})                        {}
func (r *recordingLog) Warn(args ...interface{})                             {}
func (r *recordingLog) Warnf(string, ...interface{})                         {}
func (r *recordingLog) Error(args ...interface{})                            {}
func (r *recordingLog) Errorf(string, ...interface{})                        {}
func (r *recordingLog) Fatal(args ...interface{})                            {}
func (r *recordingLog) Fatalf(string, ...interface{})                        {}
func (r *recordingLog) WithField(string, interface{}) Logger                 { return r }
func (r *recordingLog) WithFields(map[string]interface{}) Logger             { return r }
func (r *recordingLog) WithPrefix(string) Logger                             { return r }

func sprint(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	s, _ := args[0].(string)
	return s
}

func TestEventSinkForwardsMessageText(t *testing.T) {
	rec := &recordingLog{}
	sink := EventSink{Log: rec}
	sink.Message("ev1", "first-contact", "hello operator")
	if len(rec.lines) != 1 || rec.lines[0] != "hello operator" {
		t.Fatalf("expected message text forwarded, got %+v", rec.lines)
	}
}
