package scalar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

func TestDecodeText(t *testing.T) {
	assert.Equal(t, "UMA RAZAO", scalar.DecodeText("  UMA RAZAO \n"))
	assert.Equal(t, "", scalar.DecodeText("   "))
}

func TestInt(t *testing.T) {
	v, err := scalar.DecodeInt(" 00001030 ")
	require.NoError(t, err)
	assert.Equal(t, 1030, v)

	assert.Equal(t, "00001030", scalar.EncodeInt(1030, 8))
	assert.Equal(t, "26", scalar.EncodeInt(26, 0))
	assert.Equal(t, "4307609", scalar.EncodeInt(4307609, 7))

	_, err = scalar.DecodeInt("12a")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTypeConversion)

	var de *model.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "integer", de.Expected)
	assert.Equal(t, "12a", de.Value)
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"10.0000", "10.0000"},
		{" 150.00 ", "150.00"},
		{"50", "50"},
		{"-3.5", "-3.5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := scalar.DecodeDecimal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, scalar.EncodeDecimal(d))
		})
	}

	_, err := scalar.DecodeDecimal("1,50")
	assert.ErrorIs(t, err, model.ErrTypeConversion)
}

func TestDecodeAmount(t *testing.T) {
	d, err := scalar.DecodeAmount("0.89")
	require.NoError(t, err)
	assert.Equal(t, "0.89", scalar.EncodeDecimal(d))

	_, err = scalar.DecodeAmount("-0.01")
	require.Error(t, err)
	var de *model.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "non-negative decimal", de.Expected)
}

func TestDateTime(t *testing.T) {
	expected := time.Date(2018, 9, 25, 3, 0, 0, 0, time.UTC)

	inputs := []string{
		"2018-09-25T03:00:00+00:00",
		"2018-09-25T00:00:00-03:00",
		"2018-09-25T00:00:00-0300",
		"2018-09-25T03:00:00Z",
		"2018-09-25T03:00:00",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, err := scalar.DecodeDateTime(in)
			require.NoError(t, err)
			assert.True(t, expected.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	assert.Equal(t, "2018-09-25T03:00:00+00:00", scalar.EncodeDateTime(expected))

	local := time.Date(2018, 9, 25, 0, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, "2018-09-25T03:00:00+00:00", scalar.EncodeDateTime(local))

	_, err := scalar.DecodeDateTime("25/09/2018")
	assert.ErrorIs(t, err, model.ErrTypeConversion)
}

func TestFlag(t *testing.T) {
	v, err := scalar.DecodeFlag("1")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = scalar.DecodeFlag(" 0 ")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = scalar.DecodeFlag("true")
	assert.ErrorIs(t, err, model.ErrTypeConversion)

	assert.Equal(t, "1", scalar.EncodeFlag(true))
	assert.Equal(t, "0", scalar.EncodeFlag(false))
}

func TestBarcode(t *testing.T) {
	sentinels := []string{"SEM GTIN", "sem gtin", " Sem Ean ", "SEM EAN"}
	for _, s := range sentinels {
		assert.Nil(t, scalar.DecodeBarcode(s), "sentinel %q", s)
		assert.True(t, scalar.IsNoBarcode(s))
	}

	for _, empty := range []string{"", "  ", "\n\t"} {
		assert.Nil(t, scalar.DecodeBarcode(empty), "empty %q", empty)
	}

	padded := scalar.DecodeBarcode(" 7891234567895 ")
	require.NotNil(t, padded)
	assert.Equal(t, " 7891234567895 ", *padded)

	code := scalar.DecodeBarcode("7891234567895")
	require.NotNil(t, code)
	assert.Equal(t, "7891234567895", *code)

	assert.Equal(t, "SEM GTIN", scalar.EncodeBarcode(nil))
	assert.Equal(t, "7891234567895", scalar.EncodeBarcode(code))
}
