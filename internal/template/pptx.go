package template

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// emuPerInch converts OOXML English Metric Units to inches.
const emuPerInch = 914400

// Minimal OPC/DrawingML structures. encoding/xml matches by local name, so
// the p:/a:/r: prefixes in the parts do not need explicit namespaces here,
// except for attributes, which are namespace-qualified in the source.
const relNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

type xmlPresentation struct {
	SldIdLst struct {
		Ids []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldId"`
	} `xml:"sldIdLst"`
}

type xmlRelationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xmlSlidePart struct {
	CSld struct {
		Name   string `xml:"name,attr"`
		SpTree struct {
			Shapes []xmlShape `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type xmlShape struct {
	NvSpPr struct {
		NvPr struct {
			Ph *xmlPh `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	SpPr struct {
		Xfrm *xmlXfrm `xml:"xfrm"`
	} `xml:"spPr"`
}

type xmlPh struct {
	Type string `xml:"type,attr"`
	Idx  string `xml:"idx,attr"`
}

type xmlXfrm struct {
	Off struct {
		X string `xml:"x,attr"`
		Y string `xml:"y,attr"`
	} `xml:"off"`
	Ext struct {
		Cx string `xml:"cx,attr"`
		Cy string `xml:"cy,attr"`
	} `xml:"ext"`
}

type xmlTheme struct {
	Name string `xml:"name,attr"`
}

// pkg wraps the template zip for part lookups.
type pkg struct {
	parts map[string]*zip.File
}

func openPkg(data []byte) (*pkg, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pptx package: %w", err)
	}
	p := &pkg{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.parts[f.Name] = f
	}
	return p, nil
}

func (p *pkg) read(name string) ([]byte, error) {
	f, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("missing part: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *pkg) readXML(name string, v any) error {
	data, err := p.read(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse part %s: %w", name, err)
	}
	return nil
}

// rels loads the relationships part for a given part path.
func (p *pkg) rels(partPath string) (map[string]string, map[string]string, error) {
	relPath := path.Join(path.Dir(partPath), "_rels", path.Base(partPath)+".rels")
	var rels xmlRelationships
	if err := p.readXML(relPath, &rels); err != nil {
		return nil, nil, err
	}
	byID := make(map[string]string, len(rels.Rels))
	byType := make(map[string]string, len(rels.Rels))
	for _, r := range rels.Rels {
		target := resolveTarget(partPath, r.Target)
		byID[r.ID] = target
		byType[r.Type] = target
	}
	return byID, byType, nil
}

// resolveTarget resolves a relationship target ("slides/slide1.xml" or
// "../slideLayouts/slideLayout2.xml") relative to the owning part.
func resolveTarget(partPath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(partPath), target)
}

const (
	relTypeSlide  = relNS + "/slide"
	relTypeLayout = relNS + "/slideLayout"
)

// parsePackage walks a .pptx package and builds the template structure.
func parsePackage(data []byte) (*Structure, error) {
	p, err := openPkg(data)
	if err != nil {
		return nil, err
	}

	const presPath = "ppt/presentation.xml"
	var pres xmlPresentation
	if err := p.readXML(presPath, &pres); err != nil {
		return nil, err
	}
	presRels, _, err := p.rels(presPath)
	if err != nil {
		return nil, err
	}

	st := &Structure{}
	layoutSeen := make(map[string]bool)

	for i, id := range pres.SldIdLst.Ids {
		slidePath, ok := presRels[id.RID]
		if !ok {
			return nil, fmt.Errorf("slide %d: unresolved relationship %s", i, id.RID)
		}
		slide, err := parseSlide(p, slidePath, i)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		st.Slides = append(st.Slides, *slide)
		if slide.LayoutName != "" && !layoutSeen[slide.LayoutName] {
			layoutSeen[slide.LayoutName] = true
			st.Layouts = append(st.Layouts, slide.LayoutName)
		}
	}

	st.TotalSlides = len(st.Slides)
	if theme, err := p.read("ppt/theme/theme1.xml"); err == nil {
		var t xmlTheme
		if xml.Unmarshal(theme, &t) == nil {
			st.MasterName = t.Name
		}
	}
	return st, nil
}

func parseSlide(p *pkg, slidePath string, index int) (*Slide, error) {
	var part xmlSlidePart
	if err := p.readXML(slidePath, &part); err != nil {
		return nil, err
	}

	// The slide's layout supplies its name and any inherited geometry.
	layoutName := ""
	var layoutGeo map[phKey]Geometry
	if _, byType, err := p.rels(slidePath); err == nil {
		if layoutPath, ok := byType[relTypeLayout]; ok {
			var layout xmlSlidePart
			if err := p.readXML(layoutPath, &layout); err == nil {
				layoutName = layout.CSld.Name
				layoutGeo = placeholderGeometry(layout)
			}
		}
	}

	slide := &Slide{
		Index:      index,
		LayoutName: layoutName,
		SlideType:  classifyLayout(layoutName),
	}

	for _, sp := range part.CSld.SpTree.Shapes {
		ph := sp.NvSpPr.NvPr.Ph
		if ph == nil {
			continue
		}
		sem := phSemantic(ph.Type)
		idx := phIndex(ph.Idx)

		geo, ok := shapeGeometry(sp)
		if !ok && layoutGeo != nil {
			geo, ok = layoutGeo[phKey{sem, idx}]
		}
		if !ok {
			geo = defaultGeometry(sem)
		}

		slide.Placeholders = append(slide.Placeholders, Placeholder{
			Index:         idx,
			Semantic:      sem,
			CapacityChars: EstimateCapacity(geo.WidthIn, geo.HeightIn),
			Geometry:      geo,
		})
		switch sem {
		case SemanticTitle:
			slide.HasTitle = true
		case SemanticBody:
			slide.HasBody = true
		}
	}

	return slide, nil
}

type phKey struct {
	sem Semantic
	idx int
}

func placeholderGeometry(part xmlSlidePart) map[phKey]Geometry {
	out := make(map[phKey]Geometry)
	for _, sp := range part.CSld.SpTree.Shapes {
		ph := sp.NvSpPr.NvPr.Ph
		if ph == nil {
			continue
		}
		if geo, ok := shapeGeometry(sp); ok {
			out[phKey{phSemantic(ph.Type), phIndex(ph.Idx)}] = geo
		}
	}
	return out
}

func shapeGeometry(sp xmlShape) (Geometry, bool) {
	xf := sp.SpPr.Xfrm
	if xf == nil {
		return Geometry{}, false
	}
	return Geometry{
		WidthIn:  emuToInches(xf.Ext.Cx),
		HeightIn: emuToInches(xf.Ext.Cy),
		LeftIn:   emuToInches(xf.Off.X),
		TopIn:    emuToInches(xf.Off.Y),
	}, true
}

func emuToInches(s string) float64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return float64(n) / emuPerInch
}

// phSemantic maps a DrawingML placeholder type to its semantic role.
// A <p:ph> with no type attribute is a body placeholder.
func phSemantic(phType string) Semantic {
	switch phType {
	case "title", "ctrTitle":
		return SemanticTitle
	case "body", "obj", "":
		return SemanticBody
	default:
		return SemanticOther
	}
}

func phIndex(idx string) int {
	if idx == "" {
		return 0
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Standard frames on a 10x7.5in slide, used when neither the slide nor its
// layout carries explicit geometry for a placeholder.
func defaultGeometry(sem Semantic) Geometry {
	switch sem {
	case SemanticTitle:
		return Geometry{WidthIn: 9.0, HeightIn: 1.25, LeftIn: 0.5, TopIn: 0.3}
	case SemanticBody:
		return Geometry{WidthIn: 9.0, HeightIn: 4.75, LeftIn: 0.5, TopIn: 1.75}
	default:
		return Geometry{}
	}
}

// classifyLayout derives a slide type from the layout name.
func classifyLayout(layoutName string) string {
	name := strings.ToLower(layoutName)
	switch {
	case strings.Contains(name, "title") && strings.Contains(name, "only"):
		return "title"
	case strings.Contains(name, "section"):
		return "section_header"
	case strings.Contains(name, "two") && strings.Contains(name, "content"):
		return "two_column"
	case strings.Contains(name, "blank"):
		return "blank"
	case strings.Contains(name, "content") || strings.Contains(name, "bullet"):
		return "content"
	default:
		return "content"
	}
}
