package reporting

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFilesProcessed é o único erro que interrompe uma execução inteira
	ErrNoFilesProcessed = errors.New("no se pudo procesar ningun archivo")

	ErrHistoryRead  = errors.New("error reading run history")
	ErrHistoryWrite = errors.New("error saving run history")
)

// HistoryError é um erro de armazenamento do histórico com o contexto da campanha
type HistoryError struct {
	Err        error
	CampaignID string
	Cause      error
}

func (e *HistoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (campaign %s): %s", e.Err.Error(), e.CampaignID, e.Cause.Error())
	}
	return fmt.Sprintf("%s (campaign %s)", e.Err.Error(), e.CampaignID)
}

// Unwrap retorna o erro base, permitindo errors.Is com ErrHistoryRead/ErrHistoryWrite
func (e *HistoryError) Unwrap() error {
	return e.Err
}

func NewHistoryError(err error, campaignID string, cause error) *HistoryError {
	return &HistoryError{Err: err, CampaignID: campaignID, Cause: cause}
}
