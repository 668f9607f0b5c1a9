package model

// Symbolic variants of the enumerated fields. Wire codes live in the
// code tables (internal/codes), never here.

// VersaoLayout is the schema version of the document
type VersaoLayout string

const (
	VersaoLayout400 VersaoLayout = "4.00"
)

// ModeloDocumento is the fiscal document model (mod)
type ModeloDocumento string

const (
	ModeloNFe  ModeloDocumento = "nfe"
	ModeloNFCe ModeloDocumento = "nfce"
)

// FormatoImpressao is the DANFE print format (tpImp)
type FormatoImpressao string

const (
	ImpressaoSemDanfe     FormatoImpressao = "sem_danfe"
	ImpressaoRetrato      FormatoImpressao = "retrato"
	ImpressaoPaisagem     FormatoImpressao = "paisagem"
	ImpressaoSimplificado FormatoImpressao = "simplificado"
	ImpressaoNFCe         FormatoImpressao = "nfce"
	ImpressaoNFCeMensagem FormatoImpressao = "nfce_mensagem_eletronica"
)

// TipoAmbiente is the environment the document was issued in (tpAmb)
type TipoAmbiente string

const (
	AmbienteProducao    TipoAmbiente = "producao"
	AmbienteHomologacao TipoAmbiente = "homologacao"
)

// TipoEmissao is the emission kind (tpEmis)
type TipoEmissao string

const (
	EmissaoNormal              TipoEmissao = "normal"
	EmissaoContingenciaFSIA    TipoEmissao = "contingencia_fs_ia"
	EmissaoContingenciaSCAN    TipoEmissao = "contingencia_scan"
	EmissaoContingenciaEPEC    TipoEmissao = "contingencia_epec"
	EmissaoContingenciaFSDA    TipoEmissao = "contingencia_fs_da"
	EmissaoContingenciaSVCAN   TipoEmissao = "contingencia_svc_an"
	EmissaoContingenciaSVCRS   TipoEmissao = "contingencia_svc_rs"
	EmissaoContingenciaOffline TipoEmissao = "contingencia_offline"
)

// FinalidadeEmissao is the purpose of the document (finNFe)
type FinalidadeEmissao string

const (
	FinalidadeNormal       FinalidadeEmissao = "normal"
	FinalidadeComplementar FinalidadeEmissao = "complementar"
	FinalidadeAjuste       FinalidadeEmissao = "ajuste"
	FinalidadeDevolucao    FinalidadeEmissao = "devolucao"
)

// ProcessoEmissao is the issuing process (procEmi)
type ProcessoEmissao string

const (
	ProcessoAplicativoContribuinte ProcessoEmissao = "aplicativo_contribuinte"
	ProcessoAvulsaFisco            ProcessoEmissao = "avulsa_fisco"
	ProcessoAvulsaSiteFisco        ProcessoEmissao = "avulsa_site_fisco"
	ProcessoAplicativoFisco        ProcessoEmissao = "aplicativo_fisco"
)

// TipoOperacao is the direction of the operation (tpNF)
type TipoOperacao string

const (
	OperacaoEntrada TipoOperacao = "entrada"
	OperacaoSaida   TipoOperacao = "saida"
)

// DestinoOperacao is where the operation ends (idDest)
type DestinoOperacao string

const (
	DestinoInterna       DestinoOperacao = "interna"
	DestinoInterestadual DestinoOperacao = "interestadual"
	DestinoExterior      DestinoOperacao = "exterior"
)

// TipoConsumidor tells whether the buyer is the final consumer (indFinal)
type TipoConsumidor string

const (
	ConsumidorNormal TipoConsumidor = "normal"
	ConsumidorFinal  TipoConsumidor = "final"
)

// PresencaComprador is the buyer presence indicator (indPres)
type PresencaComprador string

const (
	PresencaNaoSeAplica         PresencaComprador = "nao_se_aplica"
	PresencaPresencial          PresencaComprador = "presencial"
	PresencaInternet            PresencaComprador = "internet"
	PresencaTeleatendimento     PresencaComprador = "teleatendimento"
	PresencaEntregaDomicilio    PresencaComprador = "entrega_domicilio"
	PresencaForaEstabelecimento PresencaComprador = "fora_estabelecimento"
	PresencaOutros              PresencaComprador = "outros"
)

// Intermediador tells whether a marketplace took part (indIntermed)
type Intermediador string

const (
	IntermediadorSem       Intermediador = "sem_intermediador"
	IntermediadorTerceiros Intermediador = "plataforma_terceiros"
)

// TipoIdentificador names which tag carries a party identifier
type TipoIdentificador string

const (
	IdentificadorCNPJ        TipoIdentificador = "cnpj"
	IdentificadorCPF         TipoIdentificador = "cpf"
	IdentificadorEstrangeiro TipoIdentificador = "estrangeiro"
)

// IndicadorIEDest is the recipient state-registration indicator (indIEDest)
type IndicadorIEDest string

const (
	IEContribuinte    IndicadorIEDest = "contribuinte"
	IEIsento          IndicadorIEDest = "isento"
	IENaoContribuinte IndicadorIEDest = "nao_contribuinte"
)

// RegimeTributario is the issuer tax regime (CRT)
type RegimeTributario string

const (
	RegimeSimplesNacional        RegimeTributario = "simples_nacional"
	RegimeSimplesNacionalExcesso RegimeTributario = "simples_nacional_excesso"
	RegimeNormal                 RegimeTributario = "normal"
	RegimeMEI                    RegimeTributario = "mei"
)

// EscalaRelevante is the relevant-scale indicator (indEscala)
type EscalaRelevante string

const (
	EscalaRelevanteSim EscalaRelevante = "relevante"
	EscalaRelevanteNao EscalaRelevante = "nao_relevante"
)

// OrigemMercadoria is the goods origin (orig)
type OrigemMercadoria string

const (
	OrigemNacional                         OrigemMercadoria = "nacional"
	OrigemEstrangeiraImportacaoDireta      OrigemMercadoria = "estrangeira_importacao_direta"
	OrigemEstrangeiraMercadoInterno        OrigemMercadoria = "estrangeira_mercado_interno"
	OrigemNacionalImportacaoAcima40        OrigemMercadoria = "nacional_importacao_acima_40"
	OrigemNacionalProcessosBasicos         OrigemMercadoria = "nacional_processos_basicos"
	OrigemNacionalImportacaoAte40          OrigemMercadoria = "nacional_importacao_ate_40"
	OrigemEstrangeiraImportacaoDiretaCamex OrigemMercadoria = "estrangeira_importacao_direta_camex"
	OrigemEstrangeiraMercadoInternoCamex   OrigemMercadoria = "estrangeira_mercado_interno_camex"
	OrigemNacionalImportacaoAcima70        OrigemMercadoria = "nacional_importacao_acima_70"
)

// ModalidadeBC is how the ICMS base is determined (modBC)
type ModalidadeBC string

const (
	BCMargemValorAgregado ModalidadeBC = "margem_valor_agregado"
	BCPauta               ModalidadeBC = "pauta"
	BCPrecoTabeladoMaximo ModalidadeBC = "preco_tabelado_maximo"
	BCValorOperacao       ModalidadeBC = "valor_operacao"
)

// ModalidadeBCST is how the ICMS-ST base is determined (modBCST)
type ModalidadeBCST string

const (
	BCSTPrecoTabelado       ModalidadeBCST = "preco_tabelado"
	BCSTListaNegativa       ModalidadeBCST = "lista_negativa"
	BCSTListaPositiva       ModalidadeBCST = "lista_positiva"
	BCSTListaNeutra         ModalidadeBCST = "lista_neutra"
	BCSTMargemValorAgregado ModalidadeBCST = "margem_valor_agregado"
	BCSTPauta               ModalidadeBCST = "pauta"
	BCSTValorOperacao       ModalidadeBCST = "valor_operacao"
)

// ModalidadeFrete is who pays the freight (modFrete)
type ModalidadeFrete string

const (
	FreteEmitente            ModalidadeFrete = "emitente"
	FreteDestinatario        ModalidadeFrete = "destinatario"
	FreteTerceiros           ModalidadeFrete = "terceiros"
	FreteProprioRemetente    ModalidadeFrete = "proprio_remetente"
	FreteProprioDestinatario ModalidadeFrete = "proprio_destinatario"
	FreteSemFrete            ModalidadeFrete = "sem_frete"
)
