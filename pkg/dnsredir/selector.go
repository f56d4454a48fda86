package dnsredir

import "fmt"

// SelectHostsFile picks which hosts file to load. With emulated storage
// active the unit-specific file is preferred, then the shared emummc file;
// otherwise the sysmmc file is tried. Every skipped candidate is logged, and
// the default path is returned when nothing earlier exists, so selection
// always yields a path.
func SelectHostsFile(st Storage, det Detector, logf func(format string, args ...any)) string {
	logf("Selecting hosts file...\n")

	if det.IsActive() {
		specific := fmt.Sprintf("%s_%04x", EmummcHostsPath, det.ActiveID())
		if st.Exists(specific) {
			return specific
		}
		logf("Skipping %s because it does not exist...\n", specific)

		if st.Exists(EmummcHostsPath) {
			return EmummcHostsPath
		}
		logf("Skipping %s because it does not exist...\n", EmummcHostsPath)
	} else {
		if st.Exists(SysmmcHostsPath) {
			return SysmmcHostsPath
		}
		logf("Skipping %s because it does not exist...\n", SysmmcHostsPath)
	}

	return DefaultHostsPath
}
