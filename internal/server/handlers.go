package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

type StegoHandler struct {
	cfg Config
}

func NewStegoHandler(cfg Config) *StegoHandler {
	return &StegoHandler{cfg: cfg}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Steganography API is running",
	})
}

// Validate reports whether the uploaded image can be used as a carrier.
func (h *StegoHandler) Validate(c *gin.Context) {
	file, status, err := h.readImage(c)
	if err != nil {
		c.JSON(status, stego.ValidationResult{Valid: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, stego.ValidateImageFile(file, stego.WithMaxFileSize(h.cfg.MaxUploadBytes)))
}

// Embed hides the "text" field in the uploaded image and streams back the encoded image.
func (h *StegoHandler) Embed(c *gin.Context) {
	file, status, err := h.readImage(c)
	if err != nil {
		c.JSON(status, stego.EmbedResult{Success: false, Error: err.Error()})
		return
	}

	opts, err := embedOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, stego.EmbedResult{Success: false, Error: err.Error()})
		return
	}
	text := c.PostForm("text")

	validateOpts := []stego.ValidateOption{stego.WithMaxFileSize(h.cfg.MaxUploadBytes)}
	if !opts.Compress {
		validateOpts = append(validateOpts, stego.WithMessage(len(text), opts.Password != ""))
	}
	if verdict := stego.ValidateImageFile(file, validateOpts...); !verdict.Valid {
		c.JSON(http.StatusUnprocessableEntity, stego.EmbedResult{Success: false, Error: verdict.Error})
		return
	}

	result := stego.EmbedTextInImageContext(c.Request.Context(), file, text, opts)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	contentType := "image/png"
	if opts.Format == stego.FormatBMP {
		contentType = "image/bmp"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.SteganographyFileName}))
	c.Data(http.StatusOK, contentType, result.Data)
}

// Extract recovers the text hidden in the uploaded image.
func (h *StegoHandler) Extract(c *gin.Context) {
	file, status, err := h.readImage(c)
	if err != nil {
		c.JSON(status, stego.ExtractResult{Success: false, Error: err.Error()})
		return
	}

	result := stego.ExtractTextFromImageContext(c.Request.Context(), file, stego.ExtractOptions{
		Password: c.PostForm("password"),
	})
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// readImage loads the "image" form file. The returned status is meaningful only with an error.
func (h *StegoHandler) readImage(c *gin.Context) (stego.ImageFile, int, error) {
	header, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return stego.ImageFile{}, http.StatusRequestEntityTooLarge, h.tooLarge()
		}
		return stego.ImageFile{}, http.StatusBadRequest, errors.New("image file is required")
	}
	if header.Size > h.cfg.MaxUploadBytes {
		return stego.ImageFile{}, http.StatusRequestEntityTooLarge, h.tooLarge()
	}

	f, err := header.Open()
	if err != nil {
		return stego.ImageFile{}, http.StatusBadRequest, errors.New("failed to read image file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.cfg.MaxUploadBytes+1))
	if err != nil {
		return stego.ImageFile{}, http.StatusBadRequest, errors.New("failed to read image file")
	}
	if int64(len(data)) > h.cfg.MaxUploadBytes {
		return stego.ImageFile{}, http.StatusRequestEntityTooLarge, h.tooLarge()
	}

	return stego.ImageFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, http.StatusOK, nil
}

func (h *StegoHandler) tooLarge() error {
	return fmt.Errorf("the file is too large; the maximum is %s", humanize.IBytes(uint64(h.cfg.MaxUploadBytes)))
}

func embedOptions(c *gin.Context) (stego.EmbedOptions, error) {
	opts := stego.EmbedOptions{
		Password: c.PostForm("password"),
		Format:   c.PostForm("format"),
	}

	if v := c.PostForm("quality"); v != "" {
		quality, err := strconv.Atoi(v)
		if err != nil || quality < 1 || quality > 100 {
			return opts, errors.New("quality must be between 1 and 100")
		}
		opts.Quality = quality
	}

	for field, dst := range map[string]*bool{
		"alpha":    &opts.IncludeAlpha,
		"compress": &opts.Compress,
		"ecc":      &opts.ErrorCorrection,
		"matching": &opts.Matching,
	} {
		v := c.PostForm(field)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%s must be true or false", field)
		}
		*dst = b
	}

	return opts, nil
}
