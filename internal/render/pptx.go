// Package render writes an allocation plan out as a self-contained .pptx
// package: one master, one layout, and one slide per plan entry.
package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/deckplan/internal/deck"
)

const emuPerInch = 914400

// WritePptx renders the planned slides into w. Placeholder geometry uses the
// standard 10x7.5in frames; the receiving application restyles content from
// its own template when the deck is repaired into one.
func WritePptx(w io.Writer, entries []deck.AllocationEntry) error {
	zw := zip.NewWriter(w)
	add := func(name, content string) error {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
		return nil
	}

	static := map[string]string{
		"[Content_Types].xml":                          contentTypesXML(len(entries)),
		"_rels/.rels":                                  rootRelsXML,
		"ppt/presentation.xml":                         presentationXML(len(entries)),
		"ppt/_rels/presentation.xml.rels":              presentationRelsXML(len(entries)),
		"ppt/slideMasters/slideMaster1.xml":            masterXML,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": masterRelsXML,
		"ppt/slideLayouts/slideLayout1.xml":            layoutXML,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": layoutRelsXML,
		"ppt/theme/theme1.xml":                         themeXML,
		"docProps/core.xml":                            coreXML(time.Now().UTC()),
	}
	names := make([]string, 0, len(static))
	for name := range static {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := add(name, static[name]); err != nil {
			return err
		}
	}

	for i, e := range entries {
		n := i + 1
		if err := add(fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(e)); err != nil {
			return err
		}
		if err := add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize pptx: %w", err)
	}
	return nil
}

func esc(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

func contentTypesXML(slides int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

func presentationXML(slides int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<p:presentation xmlns:p=%q xmlns:a=%q xmlns:r=%q>`, nsP, nsA, nsR)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, 1+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	b.WriteString(`<p:sldSz cx="9144000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRelsXML(slides int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	fmt.Fprintf(&b, `<Relationship Id="rId1" Type="%s/slideMaster" Target="slideMasters/slideMaster1.xml"/>`, nsR)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s/slide" Target="slides/slide%d.xml"/>`, 1+i, nsR, i)
	}
	fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s/theme" Target="theme/theme1.xml"/>`, slides+2, nsR)
	b.WriteString(`</Relationships>`)
	return b.String()
}

var masterXML = xml.Header + fmt.Sprintf(
	`<p:sldMaster xmlns:p=%q xmlns:a=%q xmlns:r=%q>`+
		`<p:cSld name="Master"><p:spTree>`+
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`+
		`</p:spTree></p:cSld>`+
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`+
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>`+
		`</p:sldMaster>`, nsP, nsA, nsR)

var masterRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	fmt.Sprintf(`<Relationship Id="rId1" Type="%s/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`, nsR) +
	fmt.Sprintf(`<Relationship Id="rId2" Type="%s/theme" Target="../theme/theme1.xml"/>`, nsR) +
	`</Relationships>`

var layoutXML = xml.Header + fmt.Sprintf(
	`<p:sldLayout xmlns:p=%q xmlns:a=%q xmlns:r=%q>`+
		`<p:cSld name="Title and Content"><p:spTree>`+
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`+
		`</p:spTree></p:cSld>`+
		`<p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr>`+
		`</p:sldLayout>`, nsP, nsA, nsR)

var layoutRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	fmt.Sprintf(`<Relationship Id="rId1" Type="%s/slideMaster" Target="../slideMasters/slideMaster1.xml"/>`, nsR) +
	`</Relationships>`

var slideRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	fmt.Sprintf(`<Relationship Id="rId1" Type="%s/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`, nsR) +
	`</Relationships>`

var themeXML = xml.Header + fmt.Sprintf(
	`<a:theme xmlns:a=%q name="Office Theme"><a:themeElements>`+
		`<a:clrScheme name="Office">`+
		`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>`+
		`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>`+
		`<a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>`+
		`<a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>`+
		`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>`+
		`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>`+
		`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>`+
		`</a:clrScheme>`+
		`<a:fontScheme name="Office">`+
		`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>`+
		`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>`+
		`</a:fontScheme>`+
		`<a:fmtScheme name="Office">`+
		`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>`+
		`<a:lnStyleLst><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>`+
		`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>`+
		`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>`+
		`</a:fmtScheme>`+
		`</a:themeElements></a:theme>`, nsA)

func coreXML(now time.Time) string {
	ts := now.Format(time.RFC3339)
	return xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>Generated Deck</dc:title>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + ts + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + ts + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

// Standard frames on a 10x7.5in slide, in EMU.
type frame struct {
	x, y, cx, cy int
}

func frameFor(role deck.Role) frame {
	if role == deck.RoleTitle {
		return frame{
			x:  emuPerInch / 2,
			y:  emuPerInch * 3 / 10,
			cx: 9 * emuPerInch,
			cy: emuPerInch * 5 / 4,
		}
	}
	return frame{
		x:  emuPerInch / 2,
		y:  emuPerInch * 7 / 4,
		cx: 9 * emuPerInch,
		cy: emuPerInch * 19 / 4,
	}
}

func slideXML(e deck.AllocationEntry) string {
	indexes := make([]int, 0, len(e.Content))
	for idx := range e.Content {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	var shapes strings.Builder
	shapeID := 2
	for _, idx := range indexes {
		fc := e.Content[idx]
		writeShape(&shapes, shapeID, idx, fc)
		shapeID++
	}

	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<p:sld xmlns:p=%q xmlns:a=%q xmlns:r=%q>`, nsP, nsA, nsR)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	b.WriteString(shapes.String())
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func writeShape(b *strings.Builder, shapeID, phIdx int, fc deck.FittedContent) {
	name := "Content Placeholder"
	ph := fmt.Sprintf(`<p:ph idx="%d"/>`, phIdx)
	if fc.Role == deck.RoleTitle {
		name = "Title"
		ph = `<p:ph type="title"/>`
	}
	f := frameFor(fc.Role)

	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s %d"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr>%s</p:nvPr></p:nvSpPr>`,
		shapeID, name, shapeID, ph)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm></p:spPr>`,
		f.x, f.y, f.cx, f.cy)

	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	if fc.Format == deck.FormatBullets {
		for _, item := range fc.Items {
			fmt.Fprintf(b, `<a:p><a:pPr lvl="0"/><a:r><a:t>%s</a:t></a:r></a:p>`, esc(item))
		}
		if len(fc.Items) == 0 {
			b.WriteString(`<a:p/>`)
		}
	} else {
		fmt.Fprintf(b, `<a:p><a:r><a:t>%s</a:t></a:r></a:p>`, esc(fc.Text))
	}
	b.WriteString(`</p:txBody></p:sp>`)
}
