package cli

import (
	"fmt"
	"sort"

	"github.com/bilgehannal/dnsredir/pkg/dnsredir"
)

// PrintEntries prints a redirection set in a human-readable format
func PrintEntries(entries map[string]dnsredir.Addr) {
	fmt.Printf("\n=== Redirections (%d total) ===\n\n", len(entries))

	if len(entries) == 0 {
		fmt.Println("No redirections loaded")
		return
	}

	hosts := make([]string, 0, len(entries))
	for host := range entries {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	for _, host := range hosts {
		fmt.Printf("  %s -> %s\n", host, entries[host])
	}
	fmt.Println()
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	fmt.Printf("✗ Error: "+format+"\n", args...)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	fmt.Printf("✓ "+format+"\n", args...)
}
