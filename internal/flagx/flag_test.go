package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps allowed flag with value",
			args:    []string{"-a", "http://x", "-z", "nope"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://x"},
		},
		{
			name:    "keeps equals form",
			args:    []string{"-a=http://x", "-z=nope"},
			allowed: []string{"-a"},
			want:    []string{"-a=http://x"},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-a", "-d", "x.db"},
			allowed: []string{"-a", "-d"},
			want:    []string{"-a", "-d", "x.db"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "http://x"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJSONConfigFlags(t *testing.T) {
	os.Args = []string{"evently", "-config", "/etc/evently.json", "-a", "http://x"}
	require.Equal(t, "/etc/evently.json", JSONConfigFlags())

	os.Args = []string{"evently", "-c", "short.json"}
	require.Equal(t, "short.json", JSONConfigFlags())

	os.Args = []string{"evently", "-a", "http://x"}
	require.Equal(t, "", JSONConfigFlags())
}
