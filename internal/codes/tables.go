package codes

import (
	"strings"

	"github.com/rezonia/nfe-mapper/internal/model"
)

// Set groups every code table of one schema version
type Set struct {
	Version model.VersaoLayout

	Modelo           *Table[model.ModeloDocumento]
	FormatoImpressao *Table[model.FormatoImpressao]
	Ambiente         *Table[model.TipoAmbiente]
	TipoEmissao      *Table[model.TipoEmissao]
	Finalidade       *Table[model.FinalidadeEmissao]
	Processo         *Table[model.ProcessoEmissao]
	TipoOperacao     *Table[model.TipoOperacao]
	Destino          *Table[model.DestinoOperacao]
	Consumidor       *Table[model.TipoConsumidor]
	Presenca         *Table[model.PresencaComprador]
	Intermediador    *Table[model.Intermediador]
	IndicadorIEDest  *Table[model.IndicadorIEDest]
	Regime           *Table[model.RegimeTributario]
	EscalaRelevante  *Table[model.EscalaRelevante]
	Origem           *Table[model.OrigemMercadoria]
	ModalidadeBC     *Table[model.ModalidadeBC]
	ModalidadeBCST   *Table[model.ModalidadeBCST]
	ModalidadeFrete  *Table[model.ModalidadeFrete]
}

// Versions maps the versao attribute to the supported layouts
var Versions = NewTable("versao", model.VersaoLayout400,
	E("4.00", model.VersaoLayout400),
)

// V400 is the code table set of layout 4.00
var V400 = &Set{
	Version: model.VersaoLayout400,

	Modelo: NewTable("mod", model.VersaoLayout400,
		E("55", model.ModeloNFe),
		E("65", model.ModeloNFCe),
	),
	FormatoImpressao: NewTable("tpImp", model.VersaoLayout400,
		E("0", model.ImpressaoSemDanfe),
		E("1", model.ImpressaoRetrato),
		E("2", model.ImpressaoPaisagem),
		E("3", model.ImpressaoSimplificado),
		E("4", model.ImpressaoNFCe),
		E("5", model.ImpressaoNFCeMensagem),
	),
	Ambiente: NewTable("tpAmb", model.VersaoLayout400,
		E("1", model.AmbienteProducao),
		E("2", model.AmbienteHomologacao),
	),
	TipoEmissao: NewTable("tpEmis", model.VersaoLayout400,
		E("1", model.EmissaoNormal),
		E("2", model.EmissaoContingenciaFSIA),
		E("3", model.EmissaoContingenciaSCAN),
		E("4", model.EmissaoContingenciaEPEC),
		E("5", model.EmissaoContingenciaFSDA),
		E("6", model.EmissaoContingenciaSVCAN),
		E("7", model.EmissaoContingenciaSVCRS),
		E("9", model.EmissaoContingenciaOffline),
	).WithDefault(model.EmissaoNormal),
	Finalidade: NewTable("finNFe", model.VersaoLayout400,
		E("1", model.FinalidadeNormal),
		E("2", model.FinalidadeComplementar),
		E("3", model.FinalidadeAjuste),
		E("4", model.FinalidadeDevolucao),
	).WithDefault(model.FinalidadeNormal),
	Processo: NewTable("procEmi", model.VersaoLayout400,
		E("0", model.ProcessoAplicativoContribuinte),
		E("1", model.ProcessoAvulsaFisco),
		E("2", model.ProcessoAvulsaSiteFisco),
		E("3", model.ProcessoAplicativoFisco),
	).WithDefault(model.ProcessoAplicativoContribuinte),
	TipoOperacao: NewTable("tpNF", model.VersaoLayout400,
		E("0", model.OperacaoEntrada),
		E("1", model.OperacaoSaida),
	),
	Destino: NewTable("idDest", model.VersaoLayout400,
		E("1", model.DestinoInterna),
		E("2", model.DestinoInterestadual),
		E("3", model.DestinoExterior),
	),
	Consumidor: NewTable("indFinal", model.VersaoLayout400,
		E("0", model.ConsumidorNormal),
		E("1", model.ConsumidorFinal),
	),
	Presenca: NewTable("indPres", model.VersaoLayout400,
		E("0", model.PresencaNaoSeAplica),
		E("1", model.PresencaPresencial),
		E("2", model.PresencaInternet),
		E("3", model.PresencaTeleatendimento),
		E("4", model.PresencaEntregaDomicilio),
		E("5", model.PresencaForaEstabelecimento),
		E("9", model.PresencaOutros),
	),
	Intermediador: NewTable("indIntermed", model.VersaoLayout400,
		E("0", model.IntermediadorSem),
		E("1", model.IntermediadorTerceiros),
	).WithDefault(model.IntermediadorSem),
	IndicadorIEDest: NewTable("indIEDest", model.VersaoLayout400,
		E("1", model.IEContribuinte),
		E("2", model.IEIsento),
		E("9", model.IENaoContribuinte),
	),
	Regime: NewTable("CRT", model.VersaoLayout400,
		E("1", model.RegimeSimplesNacional),
		E("2", model.RegimeSimplesNacionalExcesso),
		E("3", model.RegimeNormal),
		E("4", model.RegimeMEI),
	),
	EscalaRelevante: NewTable("indEscala", model.VersaoLayout400,
		E("S", model.EscalaRelevanteSim),
		E("N", model.EscalaRelevanteNao),
	),
	Origem: NewTable("orig", model.VersaoLayout400,
		E("0", model.OrigemNacional),
		E("1", model.OrigemEstrangeiraImportacaoDireta),
		E("2", model.OrigemEstrangeiraMercadoInterno),
		E("3", model.OrigemNacionalImportacaoAcima40),
		E("4", model.OrigemNacionalProcessosBasicos),
		E("5", model.OrigemNacionalImportacaoAte40),
		E("6", model.OrigemEstrangeiraImportacaoDiretaCamex),
		E("7", model.OrigemEstrangeiraMercadoInternoCamex),
		E("8", model.OrigemNacionalImportacaoAcima70),
	),
	ModalidadeBC: NewTable("modBC", model.VersaoLayout400,
		E("0", model.BCMargemValorAgregado),
		E("1", model.BCPauta),
		E("2", model.BCPrecoTabeladoMaximo),
		E("3", model.BCValorOperacao),
	),
	ModalidadeBCST: NewTable("modBCST", model.VersaoLayout400,
		E("0", model.BCSTPrecoTabelado),
		E("1", model.BCSTListaNegativa),
		E("2", model.BCSTListaPositiva),
		E("3", model.BCSTListaNeutra),
		E("4", model.BCSTMargemValorAgregado),
		E("5", model.BCSTPauta),
		E("6", model.BCSTValorOperacao),
	),
	ModalidadeFrete: NewTable("modFrete", model.VersaoLayout400,
		E("0", model.FreteEmitente),
		E("1", model.FreteDestinatario),
		E("2", model.FreteTerceiros),
		E("3", model.FreteProprioRemetente),
		E("4", model.FreteProprioDestinatario),
		E("9", model.FreteSemFrete),
	),
}

// ForVersion returns the table set for a schema version
func ForVersion(v model.VersaoLayout) (*Set, error) {
	switch v {
	case model.VersaoLayout400:
		return V400, nil
	default:
		return nil, model.NewUnsupportedVersionError(string(v))
	}
}

// DecodeVersion maps the versao attribute, reporting unknown versions as
// unsupported rather than as unknown codes
func DecodeVersion(text string) (model.VersaoLayout, error) {
	v, err := Versions.Decode(text)
	if err != nil {
		return "", model.NewUnsupportedVersionError(strings.TrimSpace(text))
	}
	return v, nil
}

// Describe lists every table of the set in a stable order
func (s *Set) Describe() []TableInfo {
	return []TableInfo{
		s.Modelo.Describe(),
		s.FormatoImpressao.Describe(),
		s.Ambiente.Describe(),
		s.TipoEmissao.Describe(),
		s.Finalidade.Describe(),
		s.Processo.Describe(),
		s.TipoOperacao.Describe(),
		s.Destino.Describe(),
		s.Consumidor.Describe(),
		s.Presenca.Describe(),
		s.Intermediador.Describe(),
		s.IndicadorIEDest.Describe(),
		s.Regime.Describe(),
		s.EscalaRelevante.Describe(),
		s.Origem.Describe(),
		s.ModalidadeBC.Describe(),
		s.ModalidadeBCST.Describe(),
		s.ModalidadeFrete.Describe(),
	}
}
