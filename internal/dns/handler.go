package dns

import (
	"strings"

	"github.com/bilgehannal/dnsredir/internal/utils"
	"github.com/bilgehannal/dnsredir/pkg/dnsredir"
	"github.com/miekg/dns"
)

// Handler answers DNS requests from the redirection table
type Handler struct {
	resolver *dnsredir.Resolver
	logger   *utils.Logger
}

// NewHandler creates a new DNS handler
func NewHandler(resolver *dnsredir.Resolver, logger *utils.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// ServeDNS handles a DNS request
func (h *Handler) ServeDNS(w dns.ResponseWriter, r *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(r)

	// Process each question
	for _, q := range r.Question {
		h.logger.Info("DNS Query: %s (type: %s)", q.Name, dns.TypeToString[q.Qtype])

		// Only handle A record queries
		if q.Qtype != dns.TypeA {
			h.logger.Info("Skipping non-A record query for: %s", q.Name)
			continue
		}

		// The table is keyed by bare hostname; only the root dot is
		// stripped. Matching stays case sensitive.
		hostname := strings.TrimSuffix(q.Name, ".")

		if addr, found := h.resolver.Resolve(hostname); found {
			h.logger.Info("Redirecting: %s -> %s", hostname, addr)

			rr := &dns.A{
				Hdr: dns.RR_Header{
					Name:   q.Name,
					Rrtype: dns.TypeA,
					Class:  dns.ClassINET,
					Ttl:    300,
				},
				A: addr.IP(),
			}
			m.Answer = append(m.Answer, rr)
		} else {
			h.logger.Info("No redirection for: %s - returning NXDOMAIN", hostname)
			m.SetRcode(r, dns.RcodeNameError)
		}
	}

	// Send response
	if err := w.WriteMsg(m); err != nil {
		h.logger.Error("Error writing DNS response: %v", err)
	}
}
