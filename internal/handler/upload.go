package handler

import (
	"net/http"

	"github.com/pkordes/panda-market/internal/httpx"
	"github.com/pkordes/panda-market/internal/upload"
)

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		httpx.Error(w, http.StatusBadRequest, "ValidationError", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "ValidationError", "image file is required")
		return
	}
	defer file.Close()

	url, err := s.uploads.SaveImage(file, header)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{
		"url":          url,
		"originalName": header.Filename,
	})
}
