package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatNumber(in), "FormatNumber(%d)", in)
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `nat\_geo\.daily \(3\)`, EscapeMarkdownV2("nat_geo.daily (3)"))
	assert.Equal(t, "plain", EscapeMarkdownV2("plain"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
	assert.Equal(t, "2.0 MiB", FormatBytes(2*1024*1024))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond+400*time.Microsecond))
	assert.Equal(t, "1.5s", FormatDuration(1520*time.Millisecond))
	assert.Equal(t, "1m30s", FormatDuration(90*time.Second+200*time.Millisecond))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "never", FormatTime(nil))
	ts := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-01 09:30", FormatTime(&ts))
}
