package docx

import "encoding/xml"

// Read-side mapping of the WordprocessingML subset the model covers.
// Pointer fields distinguish element absence from an empty value, which is
// what makes the run tri-states round-trip.

type paragraphXML struct {
	XMLName    xml.Name           `xml:"p"`
	Properties *paragraphPropsXML `xml:"pPr"`
	Runs       []runXML           `xml:"r"`
}

type paragraphPropsXML struct {
	Style   *valXML     `xml:"pStyle"`
	Justify *valXML     `xml:"jc"`
	Spacing *spacingXML `xml:"spacing"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}

type spacingXML struct {
	Before   string `xml:"before,attr"` // twentieths of a point
	After    string `xml:"after,attr"`  // twentieths of a point
	Line     string `xml:"line,attr"`   // 240ths of a line when rule is auto
	LineRule string `xml:"lineRule,attr"`
}

type runXML struct {
	XMLName    xml.Name     `xml:"r"`
	Properties *runPropsXML `xml:"rPr"`
	Text       []textXML    `xml:"t"`
}

type runPropsXML struct {
	Bold      *valXML  `xml:"b"`
	Italic    *valXML  `xml:"i"`
	Underline *valXML  `xml:"u"`
	Size      *valXML  `xml:"sz"` // half-points
	Fonts     *fontXML `xml:"rFonts"`
}

type fontXML struct {
	ASCII string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
}

type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"`
	Value   string   `xml:",chardata"`
}

type tableXML struct {
	XMLName    xml.Name      `xml:"tbl"`
	Properties tablePropsXML `xml:"tblPr"`
	Grid       tableGridXML  `xml:"tblGrid"`
	Rows       []tableRowXML `xml:"tr"`
}

type tablePropsXML struct {
	Style *valXML `xml:"tblStyle"`
}

type tableGridXML struct {
	Cols []gridColXML `xml:"gridCol"`
}

type gridColXML struct {
	W string `xml:"w,attr"`
}

type tableRowXML struct {
	XMLName xml.Name       `xml:"tr"`
	Cells   []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	XMLName    xml.Name       `xml:"tc"`
	Properties *cellPropsXML  `xml:"tcPr"`
	Paragraphs []paragraphXML `xml:"p"`
}

type cellPropsXML struct {
	GridSpan *valXML     `xml:"gridSpan"`
	VMerge   *vMergeXML  `xml:"vMerge"`
	Shading  *shadingXML `xml:"shd"`
}

type vMergeXML struct {
	XMLName xml.Name `xml:"vMerge"`
	Val     string   `xml:"val,attr"` // "restart" or empty (continue)
}

type shadingXML struct {
	Val   string `xml:"val,attr"`
	Fill  string `xml:"fill,attr"`
	Color string `xml:"color,attr"`
}

// stylesXML maps word/styles.xml just far enough to translate style IDs to
// display names.
type stylesXML struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []styleXML `xml:"style"`
}

type styleXML struct {
	ID   string  `xml:"styleId,attr"`
	Name *valXML `xml:"name"`
}
