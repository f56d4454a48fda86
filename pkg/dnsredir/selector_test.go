package dnsredir

import (
	"strings"
	"testing"
)

func TestSelectHostsFile(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		det   stubDetector
		want  string
	}{
		{
			name:  "emummc with no files falls back to default",
			files: nil,
			det:   stubDetector{active: true, id: 0x0012},
			want:  DefaultHostsPath,
		},
		{
			name:  "emummc specific file wins",
			files: []string{"/hosts/emummc_0012", EmummcHostsPath, SysmmcHostsPath, DefaultHostsPath},
			det:   stubDetector{active: true, id: 0x0012},
			want:  "/hosts/emummc_0012",
		},
		{
			name:  "emummc shared file beats default",
			files: []string{EmummcHostsPath, DefaultHostsPath},
			det:   stubDetector{active: true, id: 0x0012},
			want:  EmummcHostsPath,
		},
		{
			name:  "emummc never considers sysmmc",
			files: []string{SysmmcHostsPath, DefaultHostsPath},
			det:   stubDetector{active: true, id: 0x0012},
			want:  DefaultHostsPath,
		},
		{
			name:  "sysmmc preferred when present",
			files: []string{SysmmcHostsPath, DefaultHostsPath},
			det:   stubDetector{active: false},
			want:  SysmmcHostsPath,
		},
		{
			name:  "sysmmc missing falls back to default",
			files: []string{DefaultHostsPath},
			det:   stubDetector{active: false},
			want:  DefaultHostsPath,
		},
		{
			name:  "emummc id is zero padded hex",
			files: []string{"/hosts/emummc_00ab"},
			det:   stubDetector{active: true, id: 0xab},
			want:  "/hosts/emummc_00ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newMemStorage()
			for _, path := range tt.files {
				st.put(path, "")
			}

			got := SelectHostsFile(st, tt.det, func(string, ...any) {})
			if got != tt.want {
				t.Errorf("SelectHostsFile() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectHostsFileLogsSkips(t *testing.T) {
	st := newMemStorage()
	det := stubDetector{active: true, id: 0x0012}

	var sb strings.Builder
	logf := func(format string, args ...any) {
		sb.WriteString(strings.TrimSpace(format))
		if len(args) > 0 {
			sb.WriteString(" ")
			for _, a := range args {
				sb.WriteString(a.(string))
			}
		}
		sb.WriteString("\n")
	}

	if got := SelectHostsFile(st, det, logf); got != DefaultHostsPath {
		t.Fatalf("Expected default path, got %s", got)
	}

	log := sb.String()
	for _, path := range []string{"/hosts/emummc_0012", EmummcHostsPath} {
		if !strings.Contains(log, path) {
			t.Errorf("Skip of %s not logged:\n%s", path, log)
		}
	}
}
