package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shabbyrobe/golib/assert"
	"go.uber.org/zap"
)

func TestNewFormats(t *testing.T) {
	for _, tc := range []struct {
		format string
		check  func(tt assert.T, out string)
	}{
		{JSON, func(tt assert.T, out string) {
			var m map[string]interface{}
			tt.MustOK(json.Unmarshal([]byte(out), &m))
			tt.MustEqual("hello", m["msg"])
			tt.MustEqual("threehalves", m["name"])
			tt.MustEqual(float64(7), m["rp"])
		}},
		{Logfmt, func(tt assert.T, out string) {
			tt.MustAssert(strings.Contains(out, "msg=hello"), out)
			tt.MustAssert(strings.Contains(out, "rp=7"), out)
		}},
		{Console, func(tt assert.T, out string) {
			tt.MustAssert(strings.Contains(out, "INFO"), out)
			tt.MustAssert(strings.Contains(out, "hello"), out)
			tt.MustAssert(strings.Contains(out, `"rp": 7`), out)
		}},
	} {
		t.Run(tc.format, func(t *testing.T) {
			tt := assert.WrapTB(t)
			var buf bytes.Buffer
			lg, err := New(Config{Format: tc.format, Writer: &buf})
			tt.MustOK(err)
			lg.Info("hello", zap.Int("rp", 7))
			tc.check(tt, strings.TrimSpace(buf.String()))
		})
	}
}

func TestNewLevel(t *testing.T) {
	tt := assert.WrapTB(t)

	var buf bytes.Buffer
	lg, err := New(Config{Level: "WARN", Format: Logfmt, Writer: &buf})
	tt.MustOK(err)
	lg.Info("dropped")
	lg.Warn("kept")
	tt.MustAssert(!strings.Contains(buf.String(), "dropped"), buf.String())
	tt.MustAssert(strings.Contains(buf.String(), "kept"), buf.String())
}

func TestNewInvalid(t *testing.T) {
	tt := assert.WrapTB(t)

	_, err := New(Config{Level: "loud"})
	tt.MustAssert(err != nil)

	_, err = New(Config{Format: "xml"})
	tt.MustAssert(err != nil)
}
