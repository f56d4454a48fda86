package dnsredir

import "fmt"

// ErrHostnameTooLong indicates a hostname token reached MaxHostnameLen bytes
// without a terminator. The whole file is rejected.
var ErrHostnameTooLong = fmt.Errorf("hostname exceeds %d bytes", MaxHostnameLen-1)

// FileSizeError indicates a hosts file that cannot be loaded into the
// fixed-size scratch buffer.
type FileSizeError struct {
	Path string
	Size int64
}

func (e *FileSizeError) Error() string {
	return fmt.Sprintf("hosts file '%s' has unloadable size %d (must be 0 <= size < %d)", e.Path, e.Size, MaxFileSize)
}
