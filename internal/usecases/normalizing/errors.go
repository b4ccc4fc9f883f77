package normalizing

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmptyFile      = errors.New("el archivo está vacío")
	ErrNoSheets       = errors.New("el archivo Excel no tiene hojas")
	ErrMissingHeaders = errors.New("no se encontró una fila de encabezados")
)

// FileError indica que um arquivo não pôde ser lido e foi excluído da execução
type FileError struct {
	Filename string
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Err.Error())
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func NewFileError(filename string, err error) *FileError {
	return &FileError{Filename: filename, Err: err}
}
