package dnsredir

import (
	"fmt"
	"io"
)

// Resolver owns the redirection table and rebuilds it from the hosts files
// reachable through its Storage. Resolve may be called concurrently with
// itself and with a running Initialize.
type Resolver struct {
	st    Storage
	det   Detector
	table *Table
}

// New creates a resolver with an empty table. Call Initialize to load it.
func New(st Storage, det Detector) *Resolver {
	return &Resolver{
		st:    st,
		det:   det,
		table: NewTable(),
	}
}

// Resolve returns the redirected address for a hostname, if one exists.
func (r *Resolver) Resolve(hostname string) (Addr, bool) {
	return r.table.Lookup(hostname)
}

// Entries returns a copy of the current redirection set.
func (r *Resolver) Entries() map[string]Addr {
	return r.table.Snapshot()
}

// Initialize rebuilds the redirection table from scratch: it provisions the
// default hosts file if missing, optionally applies the built-in defaults,
// selects and parses the hosts file for the current environment, and swaps
// the result in wholesale. On error the previous table is left untouched.
// Progress is written to the startup log, which is recreated on every run.
func (r *Resolver) Initialize(addDefaults bool) error {
	// The startup log may not exist yet; the delete result is irrelevant.
	r.st.Delete(StartupLogPath)
	if err := r.st.Create(StartupLogPath, 0); err != nil {
		return fmt.Errorf("create startup log: %w", err)
	}
	logFile, err := r.st.Open(StartupLogPath)
	if err != nil {
		return fmt.Errorf("open startup log: %w", err)
	}
	defer logFile.Close()

	log := &startupLog{f: logFile}
	log.printf("DNS Mitm:\n")

	if err := r.provisionDefaultHosts(log); err != nil {
		return err
	}

	staging := make(map[string]Addr)
	if addDefaults {
		log.printf("Adding defaults to redirection list.\n")
		if err := parseInto([]byte(DefaultHostsFile), staging); err != nil {
			return fmt.Errorf("parse built-in defaults: %w", err)
		}
	}

	path := SelectHostsFile(r.st, r.det, log.printf)
	log.printf("Selected %s\n", path)

	data, err := r.readHostsFile(path)
	if err != nil {
		return err
	}
	if err := parseInto(data, staging); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	log.printf("Redirections:\n")
	for host, addr := range staging {
		log.printf("    `%s` -> %s\n", host, addr)
	}
	if log.err != nil {
		return fmt.Errorf("write startup log: %w", log.err)
	}

	r.table.Replace(staging)
	return nil
}

// provisionDefaultHosts writes the built-in payload to the default hosts
// path if no file exists there, so the selector's final fallback is
// guaranteed to be openable.
func (r *Resolver) provisionDefaultHosts(log *startupLog) error {
	if r.st.Exists(DefaultHostsPath) {
		return nil
	}
	log.printf("Creating %s because it does not exist.\n", DefaultHostsPath)

	payload := []byte(DefaultHostsFile)
	if err := r.st.Create(DefaultHostsPath, int64(len(payload))); err != nil {
		return fmt.Errorf("create %s: %w", DefaultHostsPath, err)
	}

	f, err := r.st.Open(DefaultHostsPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", DefaultHostsPath, err)
	}
	defer f.Close()

	if _, err := f.WriteAt(payload, 0); err != nil {
		return fmt.Errorf("write %s: %w", DefaultHostsPath, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("flush %s: %w", DefaultHostsPath, err)
	}
	return nil
}

// readHostsFile reads the whole file, rejecting anything that does not fit
// the scratch limit.
func (r *Resolver) readHostsFile(path string) ([]byte, error) {
	f, err := r.st.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	size, err := f.Size()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if size < 0 || size >= MaxFileSize {
		return nil, &FileSizeError{Path: path, Size: size}
	}

	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf, nil
}

// startupLog appends formatted lines to the diagnostic log file, flushing
// each one. The first write failure is retained and silences later lines.
type startupLog struct {
	f   File
	err error
}

func (l *startupLog) printf(format string, args ...any) {
	if l.err != nil {
		return
	}

	off, err := l.f.Size()
	if err != nil {
		l.err = err
		return
	}
	if _, err := l.f.WriteAt(fmt.Appendf(nil, format, args...), off); err != nil {
		l.err = err
		return
	}
	l.err = l.f.Sync()
}
