// Package pptx reads, writes and edits PresentationML (.pptx) packages.
package pptx

import "encoding/xml"

// XML namespaces used in PPTX files.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIdList *slideIdListXML `xml:"sldIdLst"`
	SlideSz     *slideSzXML     `xml:"sldSz"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

// slideXML represents a ppt/slides/slide*.xml file structure.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	Bg     *bgXML    `xml:"bg"`
	SpTree spTreeXML `xml:"spTree"`
}

type bgXML struct {
	BgPr *bgPrXML `xml:"bgPr"`
}

type bgPrXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
}

// spTreeXML holds the shapes of a slide. Only shapes and groups carry text.
type spTreeXML struct {
	Sp    []spXML    `xml:"sp"`
	GrpSp []grpSpXML `xml:"grpSp"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr   cNvPrXML   `xml:"cNvPr"`
	CNvSpPr cNvSpPrXML `xml:"cNvSpPr"`
	NvPr    nvPrXML    `xml:"nvPr"`
}

type cNvSpPrXML struct {
	TxBox string `xml:"txBox,attr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"`
}

type phXML struct {
	Type string `xml:"type,attr"`
	Idx  int    `xml:"idx,attr"`
}

type spPrXML struct {
	Xfrm      *xfrmXML      `xml:"xfrm"`
	PrstGeom  *prstGeomXML  `xml:"prstGeom"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Ln        *lnXML        `xml:"ln"`
}

type xfrmXML struct {
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type prstGeomXML struct {
	Prst string `xml:"prst,attr"`
}

type lnXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
	NoFill    *struct{}     `xml:"noFill"`
}

type solidFillXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
}

type srgbClrXML struct {
	Val string `xml:"val,attr"`
}

type txBodyXML struct {
	BodyPr bodyPrXML `xml:"bodyPr"`
	P      []pXML    `xml:"p"`
}

type bodyPrXML struct {
	Wrap   string `xml:"wrap,attr"`
	Anchor string `xml:"anchor,attr"` // t, ctr, b
	LIns   *int64 `xml:"lIns,attr"`
	RIns   *int64 `xml:"rIns,attr"`
	TIns   *int64 `xml:"tIns,attr"`
	BIns   *int64 `xml:"bIns,attr"`
}

// pXML keeps runs and breaks in document order so line breaks land between
// the right runs.
type pXML struct {
	PPr   *pPrXML `xml:"pPr"`
	Items []pItem `xml:",any"`
}

// pItem is one child of a paragraph: a run, a break or a field.
type pItem struct {
	XMLName xml.Name
	RPr     *rPrXML `xml:"rPr"`
	T       string  `xml:"t"`
}

type pPrXML struct {
	Lvl       int           `xml:"lvl,attr"`
	Algn      string        `xml:"algn,attr"` // l, ctr, r, just
	LnSpc     *spacingXML   `xml:"lnSpc"`
	SpcBef    *spacingXML   `xml:"spcBef"`
	SpcAft    *spacingXML   `xml:"spcAft"`
	BuNone    *struct{}     `xml:"buNone"`
	BuChar    *buCharXML    `xml:"buChar"`
	BuAutoNum *buAutoNumXML `xml:"buAutoNum"`
}

type spacingXML struct {
	SpcPct *valXML `xml:"spcPct"`
	SpcPts *valXML `xml:"spcPts"`
}

type valXML struct {
	Val int `xml:"val,attr"`
}

type buCharXML struct {
	Char string `xml:"char,attr"`
}

type buAutoNumXML struct {
	Type string `xml:"type,attr"`
}

type rPrXML struct {
	Sz        int           `xml:"sz,attr"` // hundredths of a point
	B         string        `xml:"b,attr"`
	I         string        `xml:"i,attr"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Latin     *typefaceXML  `xml:"latin"`
}

type typefaceXML struct {
	Typeface string `xml:"typeface,attr"`
}

type grpSpXML struct {
	Sp    []spXML    `xml:"sp"`
	GrpSp []grpSpXML `xml:"grpSp"`
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
	Created  string   `xml:"created"`
}

// appPropertiesXML represents docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Slides      int      `xml:"Slides"`
}

// onOff interprets an ST_OnOff attribute value.
func onOff(v string) bool {
	return v == "1" || v == "true" || v == "on"
}
