package layout

// Ide mirrors <ide> in schema order
type Ide struct {
	CUF         string
	CNF         string
	NatOp       string
	Mod         string
	Serie       string
	NNF         string
	DhEmi       string
	DhSaiEnt    *string
	TpNF        string
	IdDest      string
	CMunFG      string
	TpImp       string
	TpEmis      string
	CDV         string
	TpAmb       string
	FinNFe      string
	IndFinal    string
	IndPres     string
	IndIntermed *string
	ProcEmi     string
	VerProc     string
}

// UnflattenIde reads <ide> fields
func UnflattenIde(f Fields) (Ide, error) {
	r := newReader("ide", f)
	w := Ide{
		CUF:         r.req("cUF"),
		CNF:         r.req("cNF"),
		NatOp:       r.req("natOp"),
		Mod:         r.req("mod"),
		Serie:       r.req("serie"),
		NNF:         r.req("nNF"),
		DhEmi:       r.req("dhEmi"),
		DhSaiEnt:    r.opt("dhSaiEnt"),
		TpNF:        r.req("tpNF"),
		IdDest:      r.req("idDest"),
		CMunFG:      r.req("cMunFG"),
		TpImp:       r.req("tpImp"),
		TpEmis:      r.req("tpEmis"),
		CDV:         r.req("cDV"),
		TpAmb:       r.req("tpAmb"),
		FinNFe:      r.req("finNFe"),
		IndFinal:    r.req("indFinal"),
		IndPres:     r.req("indPres"),
		IndIntermed: r.opt("indIntermed"),
		ProcEmi:     r.req("procEmi"),
		VerProc:     r.req("verProc"),
	}
	return w, r.err
}

// Flatten returns the fields in schema order
func (w Ide) Flatten() Fields {
	var f Fields
	f.Add("cUF", w.CUF)
	f.Add("cNF", w.CNF)
	f.Add("natOp", w.NatOp)
	f.Add("mod", w.Mod)
	f.Add("serie", w.Serie)
	f.Add("nNF", w.NNF)
	f.Add("dhEmi", w.DhEmi)
	f.AddOpt("dhSaiEnt", w.DhSaiEnt)
	f.Add("tpNF", w.TpNF)
	f.Add("idDest", w.IdDest)
	f.Add("cMunFG", w.CMunFG)
	f.Add("tpImp", w.TpImp)
	f.Add("tpEmis", w.TpEmis)
	f.Add("cDV", w.CDV)
	f.Add("tpAmb", w.TpAmb)
	f.Add("finNFe", w.FinNFe)
	f.Add("indFinal", w.IndFinal)
	f.Add("indPres", w.IndPres)
	f.AddOpt("indIntermed", w.IndIntermed)
	f.Add("procEmi", w.ProcEmi)
	f.Add("verProc", w.VerProc)
	return f
}
