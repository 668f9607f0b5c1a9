package xml_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/nfe-mapper/internal/model"
	xmlparser "github.com/rezonia/nfe-mapper/internal/parser/xml"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func amountPtr(s string) *decimal.Decimal {
	d := amount(s)
	return &d
}

func text(s string) *string { return &s }

func number(v int) *int { return &v }

// builtDocument returns a document assembled in code, not decoded from XML.
// It uses the variants and optionals the fixtures leave out.
func builtDocument() *model.Document {
	saida := time.Date(2024, 3, 5, 18, 30, 15, 0, time.UTC)
	intermediador := model.IntermediadorTerceiros
	escala := model.EscalaRelevanteNao

	return &model.Document{
		Versao:      model.VersaoLayout400,
		ChaveAcesso: "35240312345678000190550020000123451123456780",
		Identificacao: model.Identificacao{
			CodigoUF:                   35,
			Modelo:                     model.ModeloNFe,
			Serie:                      2,
			Numero:                     12345,
			CodigoMunicipioFatoGerador: 3550308,
			FormatoImpressao:           model.ImpressaoPaisagem,
			Ambiente:                   model.AmbienteProducao,
			Chave:                      model.ComposicaoChave{CodigoNumerico: 12345678, DigitoVerificador: 0},
			Emissao: model.Emissao{
				DataHora:       time.Date(2024, 3, 5, 13, 45, 0, 0, time.UTC),
				Tipo:           model.EmissaoContingenciaSVCAN,
				Finalidade:     model.FinalidadeComplementar,
				Processo:       model.ProcessoAplicativoContribuinte,
				VersaoProcesso: "ERP 7.2",
			},
			Operacao: model.Operacao{
				DataHoraSaidaEntrada: &saida,
				Tipo:                 model.OperacaoSaida,
				Destino:              model.DestinoExterior,
				Natureza:             "Venda de mercadoria",
				Consumidor:           model.ConsumidorFinal,
				Presenca:             model.PresencaInternet,
				Intermediador:        &intermediador,
			},
		},
		Emitente: model.Emitente{
			Documento:   model.Identificador{Tipo: model.IdentificadorCPF, Numero: "12345678909"},
			RazaoSocial: "JOAO DA SILVA ME",
			Endereco: model.Endereco{
				Logradouro:      "Rua das Flores",
				Numero:          "S/N",
				Complemento:     text("Sala 2"),
				Bairro:          "Jardim",
				CodigoMunicipio: 3550308,
				Municipio:       "SAO PAULO",
				UF:              "SP",
				CEP:             "01001000",
			},
			InscricaoEstadual:   "ISENTO",
			InscricaoEstadualST: text("123456789"),
			Regime:              model.RegimeSimplesNacional,
		},
		Itens: []model.Item{
			{
				Numero: 1,
				Produto: model.Produto{
					Codigo:         "A-1",
					GTIN:           text("7891234567895"),
					Descricao:      "CANETA AZUL",
					NCM:            "96081000",
					CNPJFabricante: text("12345678000190"),
					Unidade:        "CX",
					Quantidade:     amount("2.5000"),
					ValorUnitario:  amount("12.3456789"),
					ValorTotal:     amount("30.86"),
					Frete:          amountPtr("1.50"),
					Seguro:         amountPtr("0.25"),
					Desconto:       amountPtr("0.61"),
					OutrasDespesas: amountPtr("0.00"),
					CompoeTotal:    true,
					Tributacao: model.ProdutoTributacao{
						CEST:            text("1902500"),
						EscalaRelevante: &escala,
						BeneficioFiscal: text("SP000001"),
						ExcecaoTIPI:     text("01"),
						CFOP:            "7102",
						Unidade:         "UN",
						Quantidade:      amount("25.0000"),
						ValorUnitario:   amount("1.2345"),
					},
				},
				Imposto: model.Imposto{
					ValorTotalTributos: amountPtr("4.12"),
					ICMS: &model.ICMS{ICMSSN102: &model.ICMSSN102{
						Origem: model.OrigemEstrangeiraImportacaoDiretaCamex,
						CSOSN:  "102",
					}},
					PIS: &model.Contribuicao{NT: &model.ContribuicaoNT{CST: "08"}},
					COFINS: &model.Contribuicao{Outr: &model.ContribuicaoOutr{
						CST:         "99",
						BaseCalculo: amount("30.86"),
						Aliquota:    amount("7.6000"),
						Valor:       amount("2.35"),
					}},
				},
				InformacaoAdicional: text("Lote 7"),
			},
			{
				Numero: 2,
				Produto: model.Produto{
					Codigo:        "B-2",
					Descricao:     "BRINDE",
					NCM:           "49119900",
					Unidade:       "UN",
					Quantidade:    amount("1.0000"),
					ValorUnitario: amount("0"),
					ValorTotal:    amount("0.00"),
					CompoeTotal:   false,
					Tributacao: model.ProdutoTributacao{
						CFOP:          "7949",
						GTIN:          text("17891234567892"),
						Unidade:       "UN",
						Quantidade:    amount("1.0000"),
						ValorUnitario: amount("0"),
					},
				},
				Imposto: model.Imposto{
					ICMS: &model.ICMS{ICMSSN202: &model.ICMSSN202{
						Origem:          model.OrigemNacional,
						CSOSN:           "202",
						ModalidadeBCST:  model.BCSTListaNeutra,
						PercentualMVAST: amountPtr("35.00"),
						BaseCalculoST:   amount("0.00"),
						AliquotaST:      amount("18.00"),
						ValorST:         amount("0.00"),
					}},
					PIS: &model.Contribuicao{Outr: &model.ContribuicaoOutr{
						CST:         "49",
						BaseCalculo: amount("0.00"),
						Aliquota:    amount("0.0000"),
						Valor:       amount("0.00"),
					}},
					COFINS: &model.Contribuicao{NT: &model.ContribuicaoNT{CST: "06"}},
				},
			},
			{
				Numero: 3,
				Produto: model.Produto{
					Codigo:        "C-3",
					Descricao:     "SERVICO DE MONTAGEM",
					NCM:           "00",
					Unidade:       "H",
					Quantidade:    amount("2"),
					ValorUnitario: amount("40"),
					ValorTotal:    amount("80.00"),
					CompoeTotal:   true,
					Tributacao: model.ProdutoTributacao{
						CFOP:          "7101",
						Unidade:       "H",
						Quantidade:    amount("2"),
						ValorUnitario: amount("40"),
					},
				},
				Imposto: model.Imposto{
					ICMS: &model.ICMS{ICMS60: &model.ICMS60{
						Origem:              model.OrigemNacionalImportacaoAcima70,
						CST:                 "60",
						BaseCalculoRetido:   amount("80.00"),
						AliquotaSuportada:   amount("18.0000"),
						ValorICMSSubstituto: amountPtr("14.40"),
						ValorRetido:         amount("14.40"),
					}},
				},
			},
		},
		Total: model.Total{
			BaseCalculo:    amount("0.00"),
			ValorICMS:      amount("0.00"),
			ICMSDesonerado: amountPtr("0.00"),
			BaseCalculoST:  amountPtr("0.00"),
			ValorST:        amountPtr("0.00"),
			ValorProdutos:  amount("110.86"),
			Frete:          amount("1.50"),
			Seguro:         amount("0.25"),
			Desconto:       amount("0.61"),
			II:             amountPtr("0.00"),
			PIS:            amount("0.00"),
			COFINS:         amount("2.35"),
			OutrasDespesas: amount("0.00"),
			ValorNota:      amount("112.00"),
			TotalTributos:  amount("4.12"),
		},
		Transporte:             model.Transporte{Modalidade: model.FreteProprioDestinatario},
		InformacaoComplementar: text("Pedido 9981"),
	}
}

func TestEncode_BuiltModelRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *model.Document)
	}{
		{
			name:   "no recipient",
			mutate: func(doc *model.Document) {},
		},
		{
			name: "foreign recipient without name or address",
			mutate: func(doc *model.Document) {
				doc.Destinatario = &model.Destinatario{
					Documento:   model.Identificador{Tipo: model.IdentificadorEstrangeiro, Numero: "AR20123456789"},
					IndicadorIE: model.IENaoContribuinte,
					Email:       text("compras@example.com.ar"),
				}
			},
		},
		{
			name: "recipient with every optional",
			mutate: func(doc *model.Document) {
				doc.Destinatario = &model.Destinatario{
					Documento:   model.Identificador{Tipo: model.IdentificadorCNPJ, Numero: "58716523000119"},
					RazaoSocial: text("CLIENTE LTDA"),
					Endereco: &model.Endereco{
						Logradouro:      "Av. Brasil",
						Numero:          "1000",
						Bairro:          "Centro",
						CodigoMunicipio: 3304557,
						Municipio:       "RIO DE JANEIRO",
						UF:              "RJ",
						CEP:             "20040002",
						CodigoPais:      number(1058),
						Pais:            text("BRASIL"),
						Telefone:        text("2133334444"),
					},
					IndicadorIE:       model.IEContribuinte,
					InscricaoEstadual: text("12345678"),
				}
			},
		},
		{
			name: "optionals absent",
			mutate: func(doc *model.Document) {
				doc.Identificacao.Operacao.DataHoraSaidaEntrada = nil
				doc.Identificacao.Operacao.Intermediador = nil
				doc.Emitente.InscricaoEstadualST = nil
				doc.Emitente.Endereco.Complemento = nil
				item := &doc.Itens[0]
				item.Produto.CNPJFabricante = nil
				item.Produto.Frete = nil
				item.Produto.Seguro = nil
				item.Produto.Desconto = nil
				item.Produto.OutrasDespesas = nil
				item.Produto.Tributacao.CEST = nil
				item.Produto.Tributacao.EscalaRelevante = nil
				item.Produto.Tributacao.BeneficioFiscal = nil
				item.Produto.Tributacao.ExcecaoTIPI = nil
				item.Imposto.ValorTotalTributos = nil
				item.InformacaoAdicional = nil
				doc.Itens[2].Imposto.ICMS.ICMS60.ValorICMSSubstituto = nil
				doc.Total.ICMSDesonerado = nil
				doc.Total.BaseCalculoST = nil
				doc.Total.ValorST = nil
				doc.Total.II = nil
				doc.InformacaoComplementar = nil
			},
		},
		{
			name: "item without taxes",
			mutate: func(doc *model.Document) {
				doc.Itens[2].Imposto = model.Imposto{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := builtDocument()
			tt.mutate(doc)

			out, err := xmlparser.Encode(doc)
			require.NoError(t, err)

			decoded, err := xmlparser.Decode(out)
			require.NoError(t, err)
			assert.Equal(t, doc, decoded)

			again, err := xmlparser.Encode(decoded)
			require.NoError(t, err)
			assert.Equal(t, string(out), string(again))
		})
	}
}

func TestEncode_BuiltModelWireForm(t *testing.T) {
	out, err := xmlparser.Encode(builtDocument())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "<emit><CPF>12345678909</CPF>")
	assert.NotContains(t, s, "<dest>")
	assert.Contains(t, s, "<dhEmi>2024-03-05T13:45:00+00:00</dhEmi>")
	assert.Contains(t, s, "<indIntermed>1</indIntermed>")
	assert.Contains(t, s, "<cEAN>7891234567895</cEAN>")
	assert.Contains(t, s, "<cEANTrib>SEM GTIN</cEANTrib>")
	assert.Contains(t, s, "<vUnCom>12.3456789</vUnCom>")
	assert.Contains(t, s, "<ICMSSN102><orig>6</orig><CSOSN>102</CSOSN></ICMSSN102>")
	assert.Contains(t, s, "<PIS><PISNT><CST>08</CST></PISNT></PIS>")
	assert.Contains(t, s, "<COFINS><COFINSOutr><CST>99</CST><vBC>30.86</vBC><pCOFINS>7.6000</pCOFINS><vCOFINS>2.35</vCOFINS></COFINSOutr></COFINS>")
	assert.Contains(t, s, "<PIS><PISOutr><CST>49</CST>")
	assert.Contains(t, s, "<COFINS><COFINSNT><CST>06</CST></COFINSNT></COFINS>")
	assert.Contains(t, s, "<ICMSSN202><orig>0</orig><CSOSN>202</CSOSN><modBCST>3</modBCST><pMVAST>35.00</pMVAST><vBCST>")

	doc := builtDocument()
	doc.Destinatario = &model.Destinatario{
		Documento:   model.Identificador{Tipo: model.IdentificadorEstrangeiro, Numero: "AR20123456789"},
		IndicadorIE: model.IENaoContribuinte,
	}
	out, err = xmlparser.Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<dest><idEstrangeiro>AR20123456789</idEstrangeiro><indIEDest>9</indIEDest></dest>")
}
