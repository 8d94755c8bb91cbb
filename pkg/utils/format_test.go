package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "999", FormatCompact(999))
	assert.Equal(t, "892.0K", FormatCompact(892000))
	assert.Equal(t, "1.2M", FormatCompact(1_234_567))
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "503,375", FormatThousands(503375))
	assert.Equal(t, "4,027,000", FormatThousands(4027000))
	assert.Equal(t, "0", FormatThousands(0))
}
