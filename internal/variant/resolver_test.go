package variant_test

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/nfe-mapper/internal/variant"
)

func tagText(el *etree.Element) (string, error) {
	return el.Tag + ":" + el.Text(), nil
}

func newResolver() *variant.Resolver[string] {
	return variant.New("PIS",
		variant.Candidate[string]{Tag: "PISOutr", Decode: tagText},
		variant.Candidate[string]{Tag: "PISNT", Decode: tagText},
		variant.Candidate[string]{Tag: "PISAliq", Decode: tagText},
	)
}

func parse(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s))
	return doc.Root()
}

func TestResolver_FirstMatchWins(t *testing.T) {
	r := newResolver()

	tests := []struct {
		name     string
		xml      string
		expected string
	}{
		{"single aliq", `<PIS><PISAliq>a</PISAliq></PIS>`, "PISAliq:a"},
		{"single nt", `<PIS><PISNT>n</PISNT></PIS>`, "PISNT:n"},
		// precedence follows candidate order, not document order
		{"aliq and outr", `<PIS><PISAliq>a</PISAliq><PISOutr>o</PISOutr></PIS>`, "PISOutr:o"},
		{"nt and aliq", `<PIS><PISAliq>a</PISAliq><PISNT>n</PISNT></PIS>`, "PISNT:n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := r.Resolve(parse(t, tt.xml))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolver_NoneMatch(t *testing.T) {
	r := newResolver()

	got, ok, err := r.Resolve(parse(t, `<PIS><PISST>x</PISST></PIS>`))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)

	_, ok, err = r.Resolve(nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolver_DecodeError(t *testing.T) {
	boom := errors.New("boom")
	r := variant.New("ICMS",
		variant.Candidate[int]{Tag: "ICMS60", Decode: func(*etree.Element) (int, error) { return 0, boom }},
	)

	_, ok, err := r.Resolve(parse(t, `<ICMS><ICMS60/></ICMS>`))
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestResolver_MatchAndTags(t *testing.T) {
	r := newResolver()
	assert.Equal(t, []string{"PISOutr", "PISNT", "PISAliq"}, r.Tags())
	assert.Equal(t, "PIS", r.Name())

	tag, el := r.Match(parse(t, `<PIS><PISAliq/><PISNT/></PIS>`))
	assert.Equal(t, "PISNT", tag)
	require.NotNil(t, el)

	tag, el = r.Match(parse(t, `<PIS/>`))
	assert.Empty(t, tag)
	assert.Nil(t, el)
}
