package dnsredir

import (
	"fmt"
	"io"
	"net"
)

const (
	// MaxHostnameLen is the length at which a hostname token is rejected.
	// Tokens up to MaxHostnameLen-1 bytes parse successfully.
	MaxHostnameLen = 511

	// MaxFileSize is the size at which a hosts file is rejected. Files must
	// be strictly smaller than this to be loaded.
	MaxFileSize = 0x8000
)

// Well-known paths, relative to the storage root.
const (
	DefaultHostsPath = "/hosts/default"
	SysmmcHostsPath  = "/hosts/sysmmc"
	EmummcHostsPath  = "/hosts/emummc"
	StartupLogPath   = "/dns_mitm_startup.log"
)

// DefaultHostsFile is written verbatim to DefaultHostsPath when no hosts
// file exists, and parsed as the baseline entries when defaults are enabled.
const DefaultHostsFile = "# Nintendo telemetry servers\n" +
	"127.0.0.1 receive-lp1.dg.srv.nintendo.net\n" +
	"127.0.0.1 receive-lp1.er.srv.nintendo.net\n"

// Addr is an IPv4 address with the first dotted octet stored in the
// lowest-order byte, so "127.0.0.1" is 0x0100007F. This matches the
// network-order layout the redirected socket layer expects.
type Addr uint32

// AddrFrom4 builds an Addr from the four dotted-decimal octets read
// left to right.
func AddrFrom4(a, b, c, d byte) Addr {
	return Addr(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// String returns the address in dotted-decimal form.
func (a Addr) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a), byte(a>>8), byte(a>>16), byte(a>>24))
}

// IP converts the address to a net.IP for use in DNS answers.
func (a Addr) IP() net.IP {
	return net.IPv4(byte(a), byte(a>>8), byte(a>>16), byte(a>>24))
}

// File is a handle obtained from Storage. Appending is done by writing at
// the current Size.
type File interface {
	io.ReaderAt
	io.WriterAt
	Size() (int64, error)
	Sync() error
	Close() error
}

// Storage is the narrow filesystem surface the resolver needs. Paths are
// slash-separated and rooted at the storage root.
type Storage interface {
	Exists(path string) bool
	Create(path string, size int64) error
	Open(path string) (File, error)
	Delete(path string) error
}

// Detector reports whether emulated storage is active and which unit it is.
type Detector interface {
	IsActive() bool
	ActiveID() uint32
}
