package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccessKeyPrefix is the literal carried in front of the access key in the Id attribute
const AccessKeyPrefix = "NFe"

// Document is a decoded NF-e information root (infNFe)
type Document struct {
	Versao      VersaoLayout `json:"versao"`
	ChaveAcesso string       `json:"chave_acesso"` // 44 digits, without the "NFe" prefix

	Identificacao Identificacao `json:"identificacao"`
	Emitente      Emitente      `json:"emitente"`
	Destinatario  *Destinatario `json:"destinatario,omitempty"`

	// Line items, numbered from 1 in document order
	Itens []Item `json:"itens"`

	Total      Total      `json:"total"`
	Transporte Transporte `json:"transporte"`

	InformacaoComplementar *string `json:"informacao_complementar,omitempty"` // infAdic/infCpl
}

// Identificacao is the <ide> section regrouped by concern
type Identificacao struct {
	CodigoUF                   int              `json:"codigo_uf"`
	Modelo                     ModeloDocumento  `json:"modelo"`
	Serie                      int              `json:"serie"`
	Numero                     int              `json:"numero"`
	CodigoMunicipioFatoGerador int              `json:"codigo_municipio_fato_gerador"`
	FormatoImpressao           FormatoImpressao `json:"formato_impressao"`
	Ambiente                   TipoAmbiente     `json:"ambiente"`

	Chave    ComposicaoChave `json:"chave"`
	Emissao  Emissao         `json:"emissao"`
	Operacao Operacao        `json:"operacao"`
}

// ComposicaoChave holds the parts of the access key carried inside <ide>
type ComposicaoChave struct {
	CodigoNumerico    int `json:"codigo_numerico"`    // cNF, 8 digits
	DigitoVerificador int `json:"digito_verificador"` // cDV
}

// Emissao describes how the document was issued
type Emissao struct {
	DataHora       time.Time         `json:"data_hora"`
	Tipo           TipoEmissao       `json:"tipo"`
	Finalidade     FinalidadeEmissao `json:"finalidade"`
	Processo       ProcessoEmissao   `json:"processo"`
	VersaoProcesso string            `json:"versao_processo"`
}

// Operacao describes the commercial operation
type Operacao struct {
	DataHoraSaidaEntrada *time.Time        `json:"data_hora_saida_entrada,omitempty"`
	Tipo                 TipoOperacao      `json:"tipo"`
	Destino              DestinoOperacao   `json:"destino"`
	Natureza             string            `json:"natureza"`
	Consumidor           TipoConsumidor    `json:"consumidor"`
	Presenca             PresencaComprador `json:"presenca"`
	Intermediador        *Intermediador    `json:"intermediador,omitempty"`
}

// Identificador is the party identifier; exactly one wire tag carries it
type Identificador struct {
	Tipo   TipoIdentificador `json:"tipo"`
	Numero string            `json:"numero"`
}

// Endereco is a postal address (enderEmit / enderDest)
type Endereco struct {
	Logradouro      string  `json:"logradouro"`
	Numero          string  `json:"numero"`
	Complemento     *string `json:"complemento,omitempty"`
	Bairro          string  `json:"bairro"`
	CodigoMunicipio int     `json:"codigo_municipio"`
	Municipio       string  `json:"municipio"`
	UF              string  `json:"uf"`
	CEP             string  `json:"cep"` // kept as text, leading zeros matter
	CodigoPais      *int    `json:"codigo_pais,omitempty"`
	Pais            *string `json:"pais,omitempty"`
	Telefone        *string `json:"telefone,omitempty"`
}

// Emitente is the issuer
type Emitente struct {
	Documento           Identificador    `json:"documento"`
	RazaoSocial         string           `json:"razao_social"`
	NomeFantasia        *string          `json:"nome_fantasia,omitempty"`
	Endereco            Endereco         `json:"endereco"`
	InscricaoEstadual   string           `json:"inscricao_estadual"`
	InscricaoEstadualST *string          `json:"inscricao_estadual_st,omitempty"`
	Regime              RegimeTributario `json:"regime"`
}

// Destinatario is the recipient. Name and address are optional at the
// layout level; RequireModel55 enforces them for model 55.
type Destinatario struct {
	Documento         Identificador   `json:"documento"`
	RazaoSocial       *string         `json:"razao_social,omitempty"`
	Endereco          *Endereco       `json:"endereco,omitempty"`
	IndicadorIE       IndicadorIEDest `json:"indicador_ie"`
	InscricaoEstadual *string         `json:"inscricao_estadual,omitempty"`
	Email             *string         `json:"email,omitempty"`
}

// Item is one <det> entry
type Item struct {
	Numero              int     `json:"numero"` // nItem attribute
	Produto             Produto `json:"produto"`
	Imposto             Imposto `json:"imposto"`
	InformacaoAdicional *string `json:"informacao_adicional,omitempty"`
}

// Produto is the commercial side of <prod>
type Produto struct {
	Codigo         string           `json:"codigo"`
	GTIN           *string          `json:"gtin,omitempty"` // nil when the wire carries a "no barcode" sentinel
	Descricao      string           `json:"descricao"`
	NCM            string           `json:"ncm"`
	CNPJFabricante *string          `json:"cnpj_fabricante,omitempty"`
	Unidade        string           `json:"unidade"`
	Quantidade     decimal.Decimal  `json:"quantidade"`
	ValorUnitario  decimal.Decimal  `json:"valor_unitario"`
	ValorTotal     decimal.Decimal  `json:"valor_total"`
	Frete          *decimal.Decimal `json:"frete,omitempty"`
	Seguro         *decimal.Decimal `json:"seguro,omitempty"`
	Desconto       *decimal.Decimal `json:"desconto,omitempty"`
	OutrasDespesas *decimal.Decimal `json:"outras_despesas,omitempty"`
	CompoeTotal    bool             `json:"compoe_total"` // indTot

	Tributacao ProdutoTributacao `json:"tributacao"`
}

// ProdutoTributacao is the fiscal side of <prod>, interleaved on the wire
// with the commercial fields
type ProdutoTributacao struct {
	CEST            *string          `json:"cest,omitempty"`
	EscalaRelevante *EscalaRelevante `json:"escala_relevante,omitempty"`
	BeneficioFiscal *string          `json:"beneficio_fiscal,omitempty"` // cBenef
	ExcecaoTIPI     *string          `json:"excecao_tipi,omitempty"`
	CFOP            string           `json:"cfop"`
	GTIN            *string          `json:"gtin,omitempty"` // cEANTrib
	Unidade         string           `json:"unidade"`
	Quantidade      decimal.Decimal  `json:"quantidade"`
	ValorUnitario   decimal.Decimal  `json:"valor_unitario"`
}

// Imposto groups the taxes of one line
type Imposto struct {
	ValorTotalTributos *decimal.Decimal `json:"valor_total_tributos,omitempty"` // vTotTrib
	ICMS               *ICMS            `json:"icms,omitempty"`
	PIS                *Contribuicao    `json:"pis,omitempty"`
	COFINS             *Contribuicao    `json:"cofins,omitempty"`
}

// ICMS is a tagged union: exactly one member is set
type ICMS struct {
	ICMS00    *ICMS00    `json:"icms00,omitempty"`
	ICMS60    *ICMS60    `json:"icms60,omitempty"`
	ICMSSN102 *ICMSSN102 `json:"icmssn102,omitempty"`
	ICMSSN202 *ICMSSN202 `json:"icmssn202,omitempty"`
}

// Set returns the number of populated members
func (i ICMS) Set() int {
	return count(i.ICMS00 != nil, i.ICMS60 != nil, i.ICMSSN102 != nil, i.ICMSSN202 != nil)
}

// ICMS00 is the fully taxed regime
type ICMS00 struct {
	Origem       OrigemMercadoria `json:"origem"`
	CST          string           `json:"cst"`
	ModalidadeBC ModalidadeBC     `json:"modalidade_bc"`
	BaseCalculo  decimal.Decimal  `json:"base_calculo"`
	Aliquota     decimal.Decimal  `json:"aliquota"`
	Valor        decimal.Decimal  `json:"valor"`
}

// ICMS60 is ICMS previously collected by tax substitution
type ICMS60 struct {
	Origem              OrigemMercadoria `json:"origem"`
	CST                 string           `json:"cst"`
	BaseCalculoRetido   decimal.Decimal  `json:"base_calculo_retido"` // vBCSTRet
	AliquotaSuportada   decimal.Decimal  `json:"aliquota_suportada"`  // pST
	ValorICMSSubstituto *decimal.Decimal `json:"valor_icms_substituto,omitempty"`
	ValorRetido         decimal.Decimal  `json:"valor_retido"` // vICMSSTRet
}

// ICMSSN102 is Simples Nacional without credit
type ICMSSN102 struct {
	Origem OrigemMercadoria `json:"origem"`
	CSOSN  string           `json:"csosn"`
}

// ICMSSN202 is Simples Nacional with tax substitution
type ICMSSN202 struct {
	Origem                OrigemMercadoria `json:"origem"`
	CSOSN                 string           `json:"csosn"`
	ModalidadeBCST        ModalidadeBCST   `json:"modalidade_bc_st"`
	PercentualMVAST       *decimal.Decimal `json:"percentual_mva_st,omitempty"`
	PercentualReducaoBCST *decimal.Decimal `json:"percentual_reducao_bc_st,omitempty"`
	BaseCalculoST         decimal.Decimal  `json:"base_calculo_st"`
	AliquotaST            decimal.Decimal  `json:"aliquota_st"`
	ValorST               decimal.Decimal  `json:"valor_st"`
}

// Contribuicao is the PIS or COFINS tagged union; both families share the
// same shape and differ only in wire tag names
type Contribuicao struct {
	Aliq *ContribuicaoAliq `json:"aliq,omitempty"`
	NT   *ContribuicaoNT   `json:"nt,omitempty"`
	Outr *ContribuicaoOutr `json:"outr,omitempty"`
}

// Set returns the number of populated members
func (c Contribuicao) Set() int {
	return count(c.Aliq != nil, c.NT != nil, c.Outr != nil)
}

// ContribuicaoAliq is taxation by rate
type ContribuicaoAliq struct {
	CST         string          `json:"cst"`
	BaseCalculo decimal.Decimal `json:"base_calculo"`
	Aliquota    decimal.Decimal `json:"aliquota"`
	Valor       decimal.Decimal `json:"valor"`
}

// ContribuicaoNT is the non-taxed regime
type ContribuicaoNT struct {
	CST string `json:"cst"`
}

// ContribuicaoOutr covers the remaining situation codes
type ContribuicaoOutr struct {
	CST         string          `json:"cst"`
	BaseCalculo decimal.Decimal `json:"base_calculo"`
	Aliquota    decimal.Decimal `json:"aliquota"`
	Valor       decimal.Decimal `json:"valor"`
}

// Total is total/ICMSTot
type Total struct {
	BaseCalculo    decimal.Decimal  `json:"base_calculo"`
	ValorICMS      decimal.Decimal  `json:"valor_icms"`
	ICMSDesonerado *decimal.Decimal `json:"icms_desonerado,omitempty"`
	FCP            *decimal.Decimal `json:"fcp,omitempty"`
	BaseCalculoST  *decimal.Decimal `json:"base_calculo_st,omitempty"`
	ValorST        *decimal.Decimal `json:"valor_st,omitempty"`
	FCPST          *decimal.Decimal `json:"fcp_st,omitempty"`
	FCPSTRetido    *decimal.Decimal `json:"fcp_st_retido,omitempty"`
	ValorProdutos  decimal.Decimal  `json:"valor_produtos"`
	Frete          decimal.Decimal  `json:"frete"`
	Seguro         decimal.Decimal  `json:"seguro"`
	Desconto       decimal.Decimal  `json:"desconto"`
	II             *decimal.Decimal `json:"ii,omitempty"`
	IPI            *decimal.Decimal `json:"ipi,omitempty"`
	IPIDevolvido   *decimal.Decimal `json:"ipi_devolvido,omitempty"`
	PIS            decimal.Decimal  `json:"pis"`
	COFINS         decimal.Decimal  `json:"cofins"`
	OutrasDespesas decimal.Decimal  `json:"outras_despesas"`
	ValorNota      decimal.Decimal  `json:"valor_nota"`
	TotalTributos  decimal.Decimal  `json:"total_tributos"` // vTotTrib
}

// Transporte is <transp>
type Transporte struct {
	Modalidade ModalidadeFrete `json:"modalidade"`
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
