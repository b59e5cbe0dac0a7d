package web

import (
	"context"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/soulcard/internal/capture"
	"github.com/youruser/soulcard/internal/card"
	apperrors "github.com/youruser/soulcard/internal/errors"
	"github.com/youruser/soulcard/internal/export"
	"github.com/youruser/soulcard/internal/form"
	"github.com/youruser/soulcard/internal/gallery"
)

type handlers struct {
	s *Server
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func presets(c *gin.Context) {
	c.JSON(http.StatusOK, form.Presets)
}

// qrHandler returns a PNG QR code for the "text" query param.
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = "unnamed"
	}
	size := 256
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := card.QRPNG(text, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *handlers) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Card":    h.s.Form.Data(),
		"Presets": form.Presets,
		"Gallery": h.s.Gallery != nil,
	})
}

func (h *handlers) getCard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"card": h.s.Form.Data(), "busy": h.s.Form.Busy()})
}

func (h *handlers) updateCard(c *gin.Context) {
	var u form.Update
	if err := c.BindJSON(&u); err != nil {
		return
	}
	if u.ImageURL != nil {
		if err := card.CheckImageURL(*u.ImageURL); err != nil {
			writeError(c, err)
			return
		}
	}
	d, err := h.s.Form.Apply(u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": d, "busy": h.s.Form.Busy()})
}

// preview renders the current card at scale 1 for the live preview.
func (h *handlers) preview(c *gin.Context) {
	bmp, err := capture.Capture(c.Request.Context(), h.s.Form.Surface(), capture.Options{Scale: 1})
	if err != nil {
		writeError(c, err)
		return
	}
	if bmp == nil {
		writeError(c, apperrors.New(apperrors.ErrCodeCaptureUnavailable, "card is not mounted"))
		return
	}
	b, err := bmp.PNG()
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", b)
}

// export streams the PNG as an attachment. Non-success results are JSON.
func (h *handlers) export(c *gin.Context) {
	var data []byte
	saver := export.SaverFunc(func(_ context.Context, _ string, b []byte) error {
		data = b
		return nil
	})
	res := h.s.Form.Export(c.Request.Context(), saver)
	if !res.OK() {
		c.JSON(resultStatus(res), res)
		return
	}
	c.Header("Content-Disposition", contentDisposition(res.Filename))
	c.Data(http.StatusOK, "image/png", data)
}

// contentDisposition quotes or RFC 2231-encodes filename as needed.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

func (h *handlers) publish(c *gin.Context) {
	res := h.s.Form.Publish(c.Request.Context())
	c.JSON(resultStatus(res), res)
}

func (h *handlers) listAgents(c *gin.Context) {
	if h.s.Gallery == nil {
		writeError(c, apperrors.New(apperrors.ErrCodeConfigMissing, "gallery backend is not configured"))
		return
	}
	recs, err := h.s.Gallery.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(recs), "agents": recs})
}

func (h *handlers) getAgent(c *gin.Context) {
	if h.s.Gallery == nil {
		writeError(c, apperrors.New(apperrors.ErrCodeConfigMissing, "gallery backend is not configured"))
		return
	}
	rec, err := h.s.Gallery.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handlers) galleryPage(c *gin.Context) {
	data := gin.H{"Query": c.Query("q")}
	if h.s.Gallery == nil {
		data["Error"] = "Gallery backend is not configured."
		c.HTML(http.StatusOK, "gallery.html", data)
		return
	}
	recs, err := h.s.Gallery.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		h.s.logger().Error("gallery listing failed", "err", err)
		data["Error"] = apperrors.UserMessage(err)
	}
	data["Agents"] = recs
	c.HTML(http.StatusOK, "gallery.html", data)
}

// filterFromQuery reads q, model, color (repeatable or comma separated) and
// limit.
func filterFromQuery(c *gin.Context) gallery.FilterOptions {
	opt := gallery.FilterOptions{
		FreeWords:   c.Query("q"),
		Models:      splitList(c.QueryArray("model")),
		ThemeColors: splitList(c.QueryArray("color")),
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		opt.Limit = v
	}
	return opt
}

func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func resultStatus(r form.Result) int {
	switch r.Status {
	case form.StatusDone, form.StatusSkipped:
		return http.StatusOK
	case form.StatusBusy:
		return http.StatusConflict
	}
	return errorStatus(r.Err)
}

func errorStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeBusy:
		return http.StatusConflict
	case apperrors.ErrCodeConfigMissing, apperrors.ErrCodeCaptureUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeUploadFailed, apperrors.ErrCodeInsertFailed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{
		"error": apperrors.UserMessage(err),
		"code":  apperrors.GetCode(err),
	})
}
