package bytesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want ByteSize
	}{
		{"0", 0},
		{"1024", 1024},
		{"4Ki", 4 * KiB},
		{"32Mi", 32 * MiB},
		{"1GiB", GiB},
		{"100MB", 100 * MB},
		{"2T", 2 * TB},
		{"1.5Gi", ByteSize(1.5 * float64(GiB))},
		{" 64 mi ", 64 * MiB},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "  ", "Mi", "12Q", "-5", "1..5Gi"} {
		_, err := Parse(in)
		assert.Error(t, err, "Parse(%q)", in)
	}
}

func TestUnmarshalText(t *testing.T) {
	var b ByteSize
	require.NoError(t, b.UnmarshalText([]byte("8Ki")))
	assert.Equal(t, 8*KiB, b)

	assert.Error(t, b.UnmarshalText([]byte("bogus")))
}

func TestString(t *testing.T) {
	assert.Equal(t, "512B", ByteSize(512).String())
	assert.Equal(t, "1.00KiB", KiB.String())
	assert.Equal(t, "32.00MiB", (32 * MiB).String())
	assert.Equal(t, "2.00GiB", (2 * GiB).String())
}
