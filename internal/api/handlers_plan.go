package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/deckplan/internal/allocate"
	"github.com/dgallion1/deckplan/internal/content"
	"github.com/dgallion1/deckplan/internal/deck"
	"github.com/dgallion1/deckplan/internal/render"
	"github.com/dgallion1/deckplan/internal/template"
)

// planInput is everything a planning request carries after decoding.
type planInput struct {
	requests     []deck.SlideRequest
	templateData []byte
	templateName string
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodePlanRequest(w, r)
	if !ok {
		return
	}
	plan, ok := s.runPlan(w, r, in)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plan)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodePlanRequest(w, r)
	if !ok {
		return
	}
	plan, ok := s.runPlan(w, r, in)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WritePptx(&buf, plan.Entries); err != nil {
		s.log.Error("render failed", "run_id", plan.RunID, "error", err)
		jsonError(w, "failed to render presentation", http.StatusInternalServerError)
		return
	}

	name := strings.TrimSuffix(in.templateName, filepath.Ext(in.templateName)) + "_generated.pptx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("X-Run-Id", plan.RunID)
	w.Write(buf.Bytes())
}

func (s *Server) handleTemplateInspect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	data, name, ok := s.readTemplateFile(w, r)
	if !ok {
		return
	}
	st, err := template.NewAnalyzer(name, s.cache, s.log).AnalyzeBytes(data)
	if err != nil {
		jsonError(w, "analyze template: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(st)
}

// decodePlanRequest parses the multipart planning form: a required template
// file plus slide content, either as an uploaded document ("content") or an
// inline JSON field ("slides").
func (s *Server) decodePlanRequest(w http.ResponseWriter, r *http.Request) (planInput, bool) {
	var in planInput

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return in, false
	}
	defer r.MultipartForm.RemoveAll()

	data, name, ok := s.readTemplateFile(w, r)
	if !ok {
		return in, false
	}
	in.templateData = data
	in.templateName = name

	requests, ok := s.readSlideContent(w, r)
	if !ok {
		return in, false
	}

	requests, err := content.Validate(requests, s.log)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return in, false
	}
	in.requests = requests
	return in, true
}

func (s *Server) readTemplateFile(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	file, header, err := r.FormFile("template")
	if err != nil {
		jsonError(w, "template file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	name := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pptx") {
		jsonError(w, "template must be a .pptx file", http.StatusBadRequest)
		return nil, "", false
	}

	data, ok := s.readLimited(w, file)
	return data, name, ok
}

func (s *Server) readSlideContent(w http.ResponseWriter, r *http.Request) ([]deck.SlideRequest, bool) {
	if file, header, err := r.FormFile("content"); err == nil {
		defer file.Close()
		name := sanitizeFilename(header.Filename)
		p, err := content.ForFile(name)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		data, ok := s.readLimited(w, file)
		if !ok {
			return nil, false
		}
		requests, err := p.Parse(bytes.NewReader(data), name)
		if err != nil {
			jsonError(w, "parse content: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		return requests, true
	}

	if slides := r.FormValue("slides"); slides != "" {
		requests, err := (&content.JSONParser{}).Parse(strings.NewReader(slides), "slides.json")
		if err != nil {
			jsonError(w, "parse slides: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		return requests, true
	}

	jsonError(w, "content file or slides field is required", http.StatusBadRequest)
	return nil, false
}

func (s *Server) readLimited(w http.ResponseWriter, file multipart.File) ([]byte, bool) {
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read upload", http.StatusInternalServerError)
		return nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("upload exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return data, true
}

// runPlan analyzes the template and allocates the requests against it.
func (s *Server) runPlan(w http.ResponseWriter, r *http.Request, in planInput) (*allocate.Plan, bool) {
	st, err := template.NewAnalyzer(in.templateName, s.cache, s.log).AnalyzeBytes(in.templateData)
	if err != nil {
		jsonError(w, "analyze template: "+err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	}

	summarizer := s.summarizer
	if !s.cfg.UseSummarization {
		summarizer = nil
	}
	alloc := allocate.NewAllocator(st, allocate.Config{
		MaxBullets:         s.cfg.MaxBulletsPerSlide,
		MaxBulletLength:    s.cfg.MaxBulletLength,
		UseSummarization:   s.cfg.UseSummarization,
		SummarizeThreshold: s.cfg.SummarizeThreshold,
		Workers:            s.cfg.Workers,
	}, summarizer, s.log)

	plan, err := alloc.Allocate(r.Context(), in.requests)
	if err != nil {
		switch {
		case errors.Is(err, allocate.ErrNoRequests):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, template.ErrNoTemplateSlides):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			s.log.Error("allocation failed", "error", err)
			jsonError(w, "allocation failed", http.StatusInternalServerError)
		}
		return nil, false
	}
	return plan, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
