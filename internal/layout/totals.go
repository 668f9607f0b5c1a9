package layout

// ICMSTot mirrors total/ICMSTot in schema order
type ICMSTot struct {
	VBC        string
	VICMS      string
	VICMSDeson *string
	VFCP       *string
	VBCST      *string
	VST        *string
	VFCPST     *string
	VFCPSTRet  *string
	VProd      string
	VFrete     string
	VSeg       string
	VDesc      string
	VII        *string
	VIPI       *string
	VIPIDevol  *string
	VPIS       string
	VCOFINS    string
	VOutro     string
	VNF        string
	VTotTrib   string
}

// UnflattenICMSTot reads <ICMSTot> fields
func UnflattenICMSTot(f Fields) (ICMSTot, error) {
	r := newReader("total/ICMSTot", f)
	w := ICMSTot{
		VBC:        r.req("vBC"),
		VICMS:      r.req("vICMS"),
		VICMSDeson: r.opt("vICMSDeson"),
		VFCP:       r.opt("vFCP"),
		VBCST:      r.opt("vBCST"),
		VST:        r.opt("vST"),
		VFCPST:     r.opt("vFCPST"),
		VFCPSTRet:  r.opt("vFCPSTRet"),
		VProd:      r.req("vProd"),
		VFrete:     r.req("vFrete"),
		VSeg:       r.req("vSeg"),
		VDesc:      r.req("vDesc"),
		VII:        r.opt("vII"),
		VIPI:       r.opt("vIPI"),
		VIPIDevol:  r.opt("vIPIDevol"),
		VPIS:       r.req("vPIS"),
		VCOFINS:    r.req("vCOFINS"),
		VOutro:     r.req("vOutro"),
		VNF:        r.req("vNF"),
		VTotTrib:   r.req("vTotTrib"),
	}
	return w, r.err
}

// Flatten returns the fields in schema order
func (w ICMSTot) Flatten() Fields {
	var f Fields
	f.Add("vBC", w.VBC)
	f.Add("vICMS", w.VICMS)
	f.AddOpt("vICMSDeson", w.VICMSDeson)
	f.AddOpt("vFCP", w.VFCP)
	f.AddOpt("vBCST", w.VBCST)
	f.AddOpt("vST", w.VST)
	f.AddOpt("vFCPST", w.VFCPST)
	f.AddOpt("vFCPSTRet", w.VFCPSTRet)
	f.Add("vProd", w.VProd)
	f.Add("vFrete", w.VFrete)
	f.Add("vSeg", w.VSeg)
	f.Add("vDesc", w.VDesc)
	f.AddOpt("vII", w.VII)
	f.AddOpt("vIPI", w.VIPI)
	f.AddOpt("vIPIDevol", w.VIPIDevol)
	f.Add("vPIS", w.VPIS)
	f.Add("vCOFINS", w.VCOFINS)
	f.Add("vOutro", w.VOutro)
	f.Add("vNF", w.VNF)
	f.Add("vTotTrib", w.VTotTrib)
	return f
}
