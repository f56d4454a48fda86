package dns

import (
	"context"
	"fmt"
	"time"

	"github.com/bilgehannal/dnsredir/internal/utils"
	"github.com/bilgehannal/dnsredir/pkg/dnsredir"
	"github.com/miekg/dns"
)

// Server intercepts name-resolution requests and answers them from the
// redirection table
type Server struct {
	handler   *Handler
	logger    *utils.Logger
	udpServer *dns.Server
	tcpServer *dns.Server
	addr      string
}

// NewServer creates a new DNS server listening on addr
func NewServer(resolver *dnsredir.Resolver, addr string, logger *utils.Logger) *Server {
	handler := NewHandler(resolver, logger)

	return &Server{
		handler: handler,
		logger:  logger,
		addr:    addr,
	}
}

// Start starts the DNS server
func (s *Server) Start() error {
	// Create UDP server
	s.udpServer = &dns.Server{
		Addr:    s.addr,
		Net:     "udp",
		Handler: s.handler,
	}

	// Create TCP server
	s.tcpServer = &dns.Server{
		Addr:    s.addr,
		Net:     "tcp",
		Handler: s.handler,
	}

	// Start servers in goroutines
	errChan := make(chan error, 2)

	go func() {
		s.logger.Info("Starting UDP DNS server on %s", s.addr)
		if err := s.udpServer.ListenAndServe(); err != nil {
			errChan <- fmt.Errorf("UDP server error: %w", err)
		}
	}()

	go func() {
		s.logger.Info("Starting TCP DNS server on %s", s.addr)
		if err := s.tcpServer.ListenAndServe(); err != nil {
			errChan <- fmt.Errorf("TCP server error: %w", err)
		}
	}()

	// Wait a bit to see if servers start successfully
	select {
	case err := <-errChan:
		return err
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Shutdown gracefully shuts down the DNS server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down DNS server...")

	var err error
	if s.udpServer != nil {
		if e := s.udpServer.ShutdownContext(ctx); e != nil {
			err = e
		}
	}
	if s.tcpServer != nil {
		if e := s.tcpServer.ShutdownContext(ctx); e != nil {
			err = e
		}
	}

	return err
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.addr
}
