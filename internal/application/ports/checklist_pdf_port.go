package ports

import (
	"context"

	"github.com/jhoicas/wedding-api/internal/application/dto"
)

// ChecklistPDFGenerator define el puerto de salida para renderizar la lista de preparativos.
// La aplicación arma el documento; el adaptador solo lo dibuja.
type ChecklistPDFGenerator interface {
	GenerateChecklist(ctx context.Context, doc dto.ChecklistDocument) ([]byte, error)
}
