package console

import (
	"bytes"
	"testing"
)

func TestNotices(t *testing.T) {
	tests := []struct {
		name  string
		write func(buf *bytes.Buffer)
		want  string
	}{
		{
			name:  "note",
			write: func(buf *bytes.Buffer) { Notef(buf, "Wait completed, continuing execution...") },
			want:  "NOTE: Wait completed, continuing execution...\n",
		},
		{
			name:  "note with arguments",
			write: func(buf *bytes.Buffer) { Notef(buf, "Waiting: %d minutes", 28) },
			want:  "NOTE: Waiting: 28 minutes\n",
		},
		{
			name:  "continuation aligns under prefix",
			write: func(buf *bytes.Buffer) { Contf(buf, "This might take a bit of time...") },
			want:  "      This might take a bit of time...\n",
		},
		{
			name:  "error",
			write: func(buf *bytes.Buffer) { Errorf(buf, "config file not found: %s", "bugtrace.yaml") },
			want:  "ERROR: config file not found: bugtrace.yaml\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.write(&buf)
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}
