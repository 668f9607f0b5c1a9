// Package accesskey handles the 44-digit NF-e access key (chave de acesso).
package accesskey

import (
	"fmt"
	"strconv"
	"strings"
)

// Length is the number of digits of an access key
const Length = 44

// Prefix precedes the key in the infNFe Id attribute
const Prefix = "NFe"

// Key is an access key split into its components
type Key struct {
	UF             int    `json:"uf"`
	AnoMes         string `json:"ano_mes"` // YYMM of emission
	CNPJ           string `json:"cnpj"`
	Modelo         string `json:"modelo"`
	Serie          int    `json:"serie"`
	Numero         int    `json:"numero"`
	TipoEmissao    string `json:"tipo_emissao"`
	CodigoNumerico string `json:"codigo_numerico"`
	DV             int    `json:"dv"`
}

// Strip removes the "NFe" prefix from an Id attribute and checks that 44
// digits remain
func Strip(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, Prefix) {
		return "", fmt.Errorf("id %q lacks the %q prefix", id, Prefix)
	}
	key := id[len(Prefix):]
	if err := checkFormat(key); err != nil {
		return "", err
	}
	return key, nil
}

// WithPrefix returns the Id attribute value for a key
func WithPrefix(key string) string {
	return Prefix + key
}

// Parse splits a key into its components. The check digit is not verified.
func Parse(key string) (Key, error) {
	key = strings.TrimSpace(key)
	if err := checkFormat(key); err != nil {
		return Key{}, err
	}
	atoi := func(s string) int {
		v, _ := strconv.Atoi(s) // digits only, checked above
		return v
	}
	return Key{
		UF:             atoi(key[0:2]),
		AnoMes:         key[2:6],
		CNPJ:           key[6:20],
		Modelo:         key[20:22],
		Serie:          atoi(key[22:25]),
		Numero:         atoi(key[25:34]),
		TipoEmissao:    key[34:35],
		CodigoNumerico: key[35:43],
		DV:             atoi(key[43:44]),
	}, nil
}

// CheckDigit computes the modulo-11 check digit of the first 43 digits
func CheckDigit(base string) int {
	weight := 2
	sum := 0
	for i := len(base) - 1; i >= 0; i-- {
		sum += int(base[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// Validate checks length, digits and check digit
func Validate(key string) error {
	key = strings.TrimSpace(key)
	if err := checkFormat(key); err != nil {
		return err
	}
	expected := CheckDigit(key[:Length-1])
	if got := int(key[Length-1] - '0'); got != expected {
		return fmt.Errorf("invalid check digit: got %d, expected %d", got, expected)
	}
	return nil
}

func checkFormat(key string) error {
	if len(key) != Length {
		return fmt.Errorf("access key must have %d digits, has %d", Length, len(key))
	}
	for _, c := range key {
		if c < '0' || c > '9' {
			return fmt.Errorf("access key must contain only digits")
		}
	}
	return nil
}
