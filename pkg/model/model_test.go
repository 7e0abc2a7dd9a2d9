package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerCarriesGraphID(t *testing.T) {
	var buf bytes.Buffer
	m := New(WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})))
	if _, err := m.Root().NewChildNode("main"); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "node created") || !strings.Contains(out, "graph="+m.Graph().ID().String()) {
		t.Errorf("log output missing graph id:\n%s", out)
	}
}
