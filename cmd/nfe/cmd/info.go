package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/nfe-mapper/internal/accesskey"
	"github.com/rezonia/nfe-mapper/internal/scalar"
	"github.com/rezonia/nfe-mapper/internal/signature"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show document and access key details",
	Long: `Show the schema version, access key breakdown and a short summary of
an NF-e file. The access key check digit is verified and mismatches between
the key and the document fields are listed as warnings.

Examples:
  nfe info nota.xml
  nfe info nota.xml -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// InfoOutput is the JSON form of the info command
type InfoOutput struct {
	File         string            `json:"file"`
	Versao       string            `json:"versao"`
	Chave        string            `json:"chave"`
	ChaveDetalhe accesskey.Key     `json:"chave_detalhe"`
	DigitoValido bool              `json:"digito_valido"`
	Modelo       string            `json:"modelo"`
	Ambiente     string            `json:"ambiente"`
	Emitente     string            `json:"emitente"`
	Itens        int               `json:"itens"`
	ValorNota    string            `json:"valor_nota"`
	Assinatura   *signature.Report `json:"assinatura,omitempty"`
	Warnings     []string          `json:"warnings,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	res := newPipeline().ProcessXMLBytes(context.Background(), data)
	if res.Error != nil {
		return res.Error
	}
	doc := res.Document
	key, _ := accesskey.Parse(doc.ChaveAcesso) // 44 digits, checked on decode
	report, err := signature.Inspect(data)
	if err != nil {
		return err
	}

	info := InfoOutput{
		File:         args[0],
		Versao:       string(doc.Versao),
		Chave:        doc.ChaveAcesso,
		ChaveDetalhe: key,
		DigitoValido: accesskey.Validate(doc.ChaveAcesso) == nil,
		Modelo:       string(doc.Identificacao.Modelo),
		Ambiente:     string(doc.Identificacao.Ambiente),
		Emitente:     doc.Emitente.RazaoSocial,
		Itens:        len(doc.Itens),
		ValorNota:    scalar.EncodeDecimal(doc.Total.ValorNota),
		Assinatura:   report,
		Warnings:     append(res.Warnings, report.Warnings(doc.ChaveAcesso)...),
	}

	w := cmd.OutOrStdout()
	if outputFormat == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", info.File)
	fmt.Fprintf(tw, "Version:\t%s\n", info.Versao)
	fmt.Fprintf(tw, "Access key:\t%s\n", info.Chave)
	fmt.Fprintf(tw, "  UF:\t%02d\n", key.UF)
	fmt.Fprintf(tw, "  Year/month:\t%s\n", key.AnoMes)
	fmt.Fprintf(tw, "  CNPJ:\t%s\n", key.CNPJ)
	fmt.Fprintf(tw, "  Model:\t%s\n", key.Modelo)
	fmt.Fprintf(tw, "  Series:\t%d\n", key.Serie)
	fmt.Fprintf(tw, "  Number:\t%d\n", key.Numero)
	fmt.Fprintf(tw, "  Emission:\t%s\n", key.TipoEmissao)
	fmt.Fprintf(tw, "  cNF:\t%s\n", key.CodigoNumerico)
	fmt.Fprintf(tw, "  Check digit:\t%d (valid: %t)\n", key.DV, info.DigitoValido)
	fmt.Fprintf(tw, "Model:\t%s\n", info.Modelo)
	fmt.Fprintf(tw, "Environment:\t%s\n", info.Ambiente)
	fmt.Fprintf(tw, "Issuer:\t%s\n", info.Emitente)
	fmt.Fprintf(tw, "Items:\t%d\n", info.Itens)
	fmt.Fprintf(tw, "Total:\t%s\n", info.ValorNota)
	fmt.Fprintf(tw, "Signed:\t%t\n", report.Signed)
	if report.Protocol != nil {
		fmt.Fprintf(tw, "Protocol:\t%s %s (authorised: %t)\n", report.Protocol.CStat, report.Protocol.NProt, report.Protocol.Authorised)
	}
	for _, warn := range info.Warnings {
		fmt.Fprintf(tw, "Warning:\t%s\n", warn)
	}
	return tw.Flush()
}
