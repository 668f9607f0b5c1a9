package xml

import (
	"github.com/rs/zerolog"

	"github.com/rezonia/nfe-mapper/internal/codes"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/variant"
)

// mapper runs the section assemblers for one schema version
type mapper struct {
	codes *codes.Set
	log   zerolog.Logger

	partyID *variant.Resolver[model.Identificador]
	icms    *variant.Resolver[model.ICMS]
	pis     *variant.Resolver[model.Contribuicao]
	cofins  *variant.Resolver[model.Contribuicao]
}

func newMapper(set *codes.Set, log zerolog.Logger) *mapper {
	m := &mapper{codes: set, log: log}
	m.partyID = partyIDResolver()
	m.icms = m.icmsResolver()
	m.pis = m.contribuicaoResolver(familyPIS)
	m.cofins = m.contribuicaoResolver(familyCOFINS)
	return m
}
