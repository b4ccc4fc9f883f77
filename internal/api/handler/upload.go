package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/apiErrors"
)

const (
	uploadField = "files"
	// memória usada pelo parser multipart antes de gravar partes em disco
	multipartMemory = 32 << 20
)

var allowedExtensions = map[string]bool{".csv": true, ".xlsx": true, ".xls": true}

var (
	errNoFiles          = errors.New("nenhum arquivo enviado")
	errUnsupportedFile  = errors.New("extensão de arquivo não suportada")
	errUploadTooLarge   = errors.New("upload acima do limite")
	errInvalidMultipart = errors.New("formulário multipart inválido")
)

// UploadLimits configura a validação dos uploads
type UploadLimits struct {
	MaxBytes int64
}

// LimitUpload limita o tamanho do corpo da requisição
func LimitUpload(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 {
				if r.ContentLength > maxBytes {
					writeUploadError(w, errUploadTooLarge)
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// readUploadedFiles lê os arquivos do campo multipart na ordem de envio
func readUploadedFiles(r *http.Request) ([]domain.UploadedFile, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errUploadTooLarge
		}
		return nil, fmt.Errorf("%w: %v", errInvalidMultipart, err)
	}

	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		return nil, errNoFiles
	}

	files := make([]domain.UploadedFile, 0, len(headers))
	for _, header := range headers {
		name := filepath.Base(header.Filename)
		if !allowedExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil, fmt.Errorf("%w: %s", errUnsupportedFile, name)
		}

		content, err := readPart(header)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler arquivo %s: %w", name, err)
		}

		files = append(files, domain.UploadedFile{Filename: name, Content: content})
	}

	return files, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// writeUploadError traduz erros de upload para a resposta padronizada
func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUploadTooLarge):
		apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "El archivo supera el tamano maximo permitido", nil)
	case errors.Is(err, errNoFiles):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "No se recibieron archivos", nil)
	case errors.Is(err, errUnsupportedFile):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato no soportado. Use CSV, XLSX o XLS", map[string]string{
			"error": err.Error(),
		})
	default:
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Solicitud invalida", map[string]string{
			"error": err.Error(),
		})
	}
}
