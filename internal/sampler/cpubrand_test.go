package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseXeonNameExtractsModel(t *testing.T) {
	got, ok := ParseXeonName("Intel(R) Xeon(R) CPU E5-2623 v3 @ 3.00GHz")
	assert.True(t, ok)
	assert.Equal(t, "E5-2623 v3", got)
}

func TestParseXeonNameRejectsNonXeonBrand(t *testing.T) {
	_, ok := ParseXeonName("13th Gen Intel(R) Core(TM) i9-13900H")
	assert.False(t, ok)
}
