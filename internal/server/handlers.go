package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/bmpedit/pkg/bitmap/transform"
	"github.com/matzehuels/bmpedit/pkg/bmp"
	"github.com/matzehuels/bmpedit/pkg/errors"
	"github.com/matzehuels/bmpedit/pkg/pipeline"
)

type opInfo struct {
	Name            string `json:"name"`
	Key             string `json:"key"`
	Description     string `json:"description"`
	NeedsEvenWidth  bool   `json:"needs_even_width,omitempty"`
	NeedsEvenHeight bool   `json:"needs_even_height,omitempty"`
}

type headerInfo struct {
	Width       int32  `json:"width"`
	Height      int32  `json:"height"`
	BitCount    uint16 `json:"bit_count"`
	Compression uint32 `json:"compression"`
	FileSize    uint32 `json:"file_size"`
	DataOffset  uint32 `json:"data_offset"`
	ImageSize   uint32 `json:"image_size"`
	Stride      int    `json:"stride"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleTransforms(w http.ResponseWriter, _ *http.Request) {
	ops := transform.All()
	out := make([]opInfo, len(ops))
	for i, o := range ops {
		out[i] = opInfo{
			Name:            o.Name,
			Key:             string(o.Key),
			Description:     o.Description,
			NeedsEvenWidth:  o.NeedsEvenWidth,
			NeedsEvenHeight: o.NeedsEvenHeight,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	h, err := bmp.ReadHeader(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, headerInfo{
		Width:       h.Width,
		Height:      h.Height,
		BitCount:    h.BitCount,
		Compression: h.Compression,
		FileSize:    h.FileSize,
		DataOffset:  h.DataOffset,
		ImageSize:   h.ImageSize,
		Stride:      h.Stride(),
	})
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var ops []string
	for _, v := range q["op"] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				ops = append(ops, name)
			}
		}
	}
	compat := s.cfg.Compat
	if v := q.Get("compat"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "compat=%q is not a boolean", v))
			return
		}
		compat = b
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		InputData: body,
		Ops:       ops,
		Compat:    compat,
		Logger:    s.logger.With("request_id", RequestIDFromContext(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/bmp")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Bytes)))
	if res.CacheInfo.Hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Bytes)
}

// readBody reads the whole request body within the configured limit. On
// failure it has already written the error response.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err == nil {
		return body, true
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
			Code:    string(errors.ErrCodeInvalidInput),
			Message: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
		})
		return nil, false
	}
	s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
	return nil, false
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestIDFromContext(r.Context()), "error", err)
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: errors.UserMessage(err)})
}

func statusFor(err error) int {
	if errors.IsFormat(err) {
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeUnknownTransform, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
