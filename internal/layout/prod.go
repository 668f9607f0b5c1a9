package layout

// Prod mirrors <prod> in schema order
type Prod struct {
	CProd    string
	CEAN     *string
	XProd    string
	NCM      string
	CEST     *string
	IndEsc   *string
	CNPJFab  *string
	CBenef   *string
	EXTIPI   *string
	CFOP     string
	UCom     string
	QCom     string
	VUnCom   string
	VProd    string
	CEANTrib *string
	UTrib    string
	QTrib    string
	VUnTrib  string
	VFrete   *string
	VSeg     *string
	VDesc    *string
	VOutro   *string
	IndTot   string
}

// UnflattenProd reads <prod> fields. The barcode tags are mandatory in the
// schema but tolerated as absent on input.
func UnflattenProd(f Fields) (Prod, error) {
	r := newReader("det/prod", f)
	w := Prod{
		CProd:    r.req("cProd"),
		CEAN:     r.opt("cEAN"),
		XProd:    r.req("xProd"),
		NCM:      r.req("NCM"),
		CEST:     r.opt("CEST"),
		IndEsc:   r.opt("indEscala"),
		CNPJFab:  r.opt("CNPJFab"),
		CBenef:   r.opt("cBenef"),
		EXTIPI:   r.opt("EXTIPI"),
		CFOP:     r.req("CFOP"),
		UCom:     r.req("uCom"),
		QCom:     r.req("qCom"),
		VUnCom:   r.req("vUnCom"),
		VProd:    r.req("vProd"),
		CEANTrib: r.opt("cEANTrib"),
		UTrib:    r.req("uTrib"),
		QTrib:    r.req("qTrib"),
		VUnTrib:  r.req("vUnTrib"),
		VFrete:   r.opt("vFrete"),
		VSeg:     r.opt("vSeg"),
		VDesc:    r.opt("vDesc"),
		VOutro:   r.opt("vOutro"),
		IndTot:   r.req("indTot"),
	}
	return w, r.err
}

// Flatten returns the fields in schema order
func (w Prod) Flatten() Fields {
	var f Fields
	f.Add("cProd", w.CProd)
	f.Add("cEAN", optText(w.CEAN))
	f.Add("xProd", w.XProd)
	f.Add("NCM", w.NCM)
	f.AddOpt("CEST", w.CEST)
	f.AddOpt("indEscala", w.IndEsc)
	f.AddOpt("CNPJFab", w.CNPJFab)
	f.AddOpt("cBenef", w.CBenef)
	f.AddOpt("EXTIPI", w.EXTIPI)
	f.Add("CFOP", w.CFOP)
	f.Add("uCom", w.UCom)
	f.Add("qCom", w.QCom)
	f.Add("vUnCom", w.VUnCom)
	f.Add("vProd", w.VProd)
	f.Add("cEANTrib", optText(w.CEANTrib))
	f.Add("uTrib", w.UTrib)
	f.Add("qTrib", w.QTrib)
	f.Add("vUnTrib", w.VUnTrib)
	f.AddOpt("vFrete", w.VFrete)
	f.AddOpt("vSeg", w.VSeg)
	f.AddOpt("vDesc", w.VDesc)
	f.AddOpt("vOutro", w.VOutro)
	f.Add("indTot", w.IndTot)
	return f
}

func optText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
