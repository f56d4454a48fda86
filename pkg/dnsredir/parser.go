package dnsredir

// The hosts grammar is line oriented: an entry is a dotted-decimal IPv4
// address followed by one or more whitespace-separated hostnames, all of
// which map to that address. Any line not starting with a digit, and any
// line that stops looking like an address mid-token, is skipped. Octets are
// accumulated in full before being truncated to 8 bits, so "999" stores 231.

type state uint8

// The IP states must stay declared in scan order: transition steps from an
// octet state to its dot state (and back) with s+1.
const (
	stateBeginLine state = iota
	stateIgnoredLine
	stateIP1
	stateIPDot1
	stateIP2
	stateIPDot2
	stateIP3
	stateIPDot3
	stateIP4
	stateWhiteSpace
	stateHostName
)

type action uint8

const (
	actionNone       action = iota
	actionBeginOctet        // start a new octet accumulator from this digit
	actionAccumOctet        // fold this digit into the accumulator
	actionStoreOctet        // truncate the accumulator into the address
	actionBeginHost         // start a hostname token with this byte
	actionAppendHost        // append this byte to the hostname token
	actionCommitHost        // record hostname -> current address
)

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// transition is the DFA step. It is pure: the caller owns the octet
// accumulator, the partial address and the hostname token.
func transition(s state, c byte) (state, action) {
	switch s {
	case stateBeginLine:
		if isDigit(c) {
			return stateIP1, actionBeginOctet
		}
		return stateIgnoredLine, actionNone

	case stateIgnoredLine:
		if c == '\n' {
			return stateBeginLine, actionNone
		}
		return stateIgnoredLine, actionNone

	case stateIP1, stateIP2, stateIP3:
		if isDigit(c) {
			return s, actionAccumOctet
		}
		if c == '.' {
			return s + 1, actionStoreOctet
		}
		return stateIgnoredLine, actionNone

	case stateIPDot1, stateIPDot2, stateIPDot3:
		if isDigit(c) {
			return s + 1, actionBeginOctet
		}
		return stateIgnoredLine, actionNone

	case stateIP4:
		if isDigit(c) {
			return stateIP4, actionAccumOctet
		}
		if c == ' ' || c == '\t' {
			return stateWhiteSpace, actionStoreOctet
		}
		return stateIgnoredLine, actionNone

	case stateWhiteSpace:
		switch c {
		case '\n':
			return stateBeginLine, actionNone
		case ' ', '\t', '\r':
			return stateWhiteSpace, actionNone
		}
		return stateHostName, actionBeginHost

	case stateHostName:
		switch c {
		case '\n':
			return stateBeginLine, actionCommitHost
		case ' ', '\t', '\r':
			return stateWhiteSpace, actionCommitHost
		}
		return stateHostName, actionAppendHost
	}

	return stateIgnoredLine, actionNone
}

// octetShift returns the bit offset an octet committed from state s occupies
// in the address.
func octetShift(s state) uint {
	switch s {
	case stateIP1:
		return 0
	case stateIP2:
		return 8
	case stateIP3:
		return 16
	default: // stateIP4
		return 24
	}
}

// parseInto scans data and inserts (or overwrites) every parsed entry into
// entries. A NUL byte terminates the input early; a hostname pending at end
// of input is still committed. The only failure is a hostname token reaching
// MaxHostnameLen bytes; entries already inserted are left behind, so callers
// that need all-or-nothing semantics must parse into a staging map.
func parseInto(data []byte, entries map[string]Addr) error {
	var (
		st   = stateBeginLine
		addr uint32
		work uint32
		host []byte
	)

	for _, c := range data {
		if c == 0 {
			break
		}

		next, act := transition(st, c)
		switch act {
		case actionBeginOctet:
			if st == stateBeginLine {
				addr = 0
			}
			work = uint32(c - '0')
		case actionAccumOctet:
			work = work*10 + uint32(c-'0')
		case actionStoreOctet:
			addr |= (work & 0xFF) << octetShift(st)
			work = 0
		case actionBeginHost:
			host = append(host[:0], c)
		case actionAppendHost:
			if len(host) >= MaxHostnameLen-1 {
				return ErrHostnameTooLong
			}
			host = append(host, c)
		case actionCommitHost:
			entries[string(host)] = Addr(addr)
		}
		st = next
	}

	if st == stateHostName {
		entries[string(host)] = Addr(addr)
	}

	return nil
}

// Parse parses a complete hosts file and returns its entries.
func Parse(data []byte) (map[string]Addr, error) {
	entries := make(map[string]Addr)
	if err := parseInto(data, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
