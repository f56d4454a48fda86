package dns

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/bilgehannal/dnsredir/internal/env"
	"github.com/bilgehannal/dnsredir/internal/storage"
	"github.com/bilgehannal/dnsredir/internal/utils"
	"github.com/bilgehannal/dnsredir/pkg/dnsredir"
	"github.com/miekg/dns"
)

// recordingWriter captures the response instead of sending it.
type recordingWriter struct {
	msg *dns.Msg
}

func (w *recordingWriter) LocalAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 53}
}

func (w *recordingWriter) RemoteAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000}
}

func (w *recordingWriter) WriteMsg(m *dns.Msg) error {
	w.msg = m
	return nil
}

func (w *recordingWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *recordingWriter) Close() error                { return nil }
func (w *recordingWriter) TsigStatus() error           { return nil }
func (w *recordingWriter) TsigTimersOnly(bool)         {}
func (w *recordingWriter) Hijack()                     {}

func newTestHandler(t *testing.T, hostsFile string) *Handler {
	t.Helper()

	root := t.TempDir()
	if hostsFile != "" {
		if err := os.MkdirAll(filepath.Join(root, "hosts"), 0755); err != nil {
			t.Fatalf("Failed to create hosts dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(root, "hosts", "sysmmc"), []byte(hostsFile), 0644); err != nil {
			t.Fatalf("Failed to write hosts file: %v", err)
		}
	}

	st, err := storage.NewDir(root)
	if err != nil {
		t.Fatalf("NewDir failed: %v", err)
	}

	resolver := dnsredir.New(st, env.NewEmummc(false, 0))
	if err := resolver.Initialize(true); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	logger, err := utils.NewLogger(filepath.Join(root, "test.log"))
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	t.Cleanup(func() { logger.Close() })

	return NewHandler(resolver, logger)
}

func query(name string, qtype uint16) *dns.Msg {
	m := new(dns.Msg)
	m.SetQuestion(name, qtype)
	return m
}

func TestHandlerAnswersRedirectedHost(t *testing.T) {
	h := newTestHandler(t, "")
	w := &recordingWriter{}

	h.ServeDNS(w, query("receive-lp1.dg.srv.nintendo.net.", dns.TypeA))

	if w.msg == nil {
		t.Fatal("No response written")
	}
	if len(w.msg.Answer) != 1 {
		t.Fatalf("Expected 1 answer, got %d", len(w.msg.Answer))
	}

	a, ok := w.msg.Answer[0].(*dns.A)
	if !ok {
		t.Fatalf("Expected A record, got %T", w.msg.Answer[0])
	}
	if !a.A.Equal(net.IPv4(127, 0, 0, 1)) {
		t.Errorf("Expected 127.0.0.1, got %s", a.A)
	}
	if a.Hdr.Name != "receive-lp1.dg.srv.nintendo.net." {
		t.Errorf("Answer name mismatch: %s", a.Hdr.Name)
	}
}

func TestHandlerReturnsNXDomainForUnknownHost(t *testing.T) {
	h := newTestHandler(t, "")
	w := &recordingWriter{}

	h.ServeDNS(w, query("unknown.example.", dns.TypeA))

	if w.msg == nil {
		t.Fatal("No response written")
	}
	if w.msg.Rcode != dns.RcodeNameError {
		t.Errorf("Expected NXDOMAIN, got rcode %d", w.msg.Rcode)
	}
	if len(w.msg.Answer) != 0 {
		t.Errorf("Expected no answers, got %d", len(w.msg.Answer))
	}
}

func TestHandlerSkipsNonAQueries(t *testing.T) {
	h := newTestHandler(t, "")
	w := &recordingWriter{}

	h.ServeDNS(w, query("receive-lp1.dg.srv.nintendo.net.", dns.TypeAAAA))

	if w.msg == nil {
		t.Fatal("No response written")
	}
	if len(w.msg.Answer) != 0 {
		t.Errorf("Expected no answers for AAAA query, got %d", len(w.msg.Answer))
	}
	if w.msg.Rcode != dns.RcodeSuccess {
		t.Errorf("Expected rcode success, got %d", w.msg.Rcode)
	}
}

func TestHandlerMatchingIsCaseSensitive(t *testing.T) {
	h := newTestHandler(t, "10.0.0.9 MixedCase.example\n")
	w := &recordingWriter{}

	h.ServeDNS(w, query("mixedcase.example.", dns.TypeA))

	if w.msg == nil {
		t.Fatal("No response written")
	}
	if w.msg.Rcode != dns.RcodeNameError {
		t.Errorf("Expected NXDOMAIN for case mismatch, got rcode %d", w.msg.Rcode)
	}

	w = &recordingWriter{}
	h.ServeDNS(w, query("MixedCase.example.", dns.TypeA))

	if len(w.msg.Answer) != 1 {
		t.Fatalf("Expected exact-case query to match, got %d answers", len(w.msg.Answer))
	}
	a := w.msg.Answer[0].(*dns.A)
	if !a.A.Equal(net.IPv4(10, 0, 0, 9)) {
		t.Errorf("Expected 10.0.0.9, got %s", a.A)
	}
}
