package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-conversions/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-conversions/internal/usecase"
)

// Exportações de planilha grandes chegam perto de 50MB.
const maxImportBodyBytes = 50 << 20

type ImportLeadsExecutor interface {
	Execute(ctx context.Context, rows []usecase.ImportLeadInput) (*usecase.ImportLeadsOutput, error)
}

type ImportHandler struct {
	ImportLeadsUC ImportLeadsExecutor
}

func NewImportHandler(uc ImportLeadsExecutor) *ImportHandler {
	return &ImportHandler{ImportLeadsUC: uc}
}

type importResponse struct {
	Success bool `json:"success"`
	*usecase.ImportLeadsOutput
}

func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBodyBytes)

	// Primeiro só garante que é um array; as linhas são lidas depois
	// para que linha inválida derrube o lote (500) e não vire 400.
	var rawRows []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&rawRows); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORMAT", "Formato inválido.")
		return
	}

	rows := make([]usecase.ImportLeadInput, len(rawRows))
	for i, raw := range rawRows {
		if err := json.Unmarshal(raw, &rows[i]); err != nil {
			log.Printf("❌ Erro ao importar leads: linha %d: %v", i, err)
			writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeInvalidRow, fmt.Sprintf("Linha %d inválida.", i))
			return
		}
	}

	output, err := h.ImportLeadsUC.Execute(r.Context(), rows)
	if err != nil {
		log.Printf("❌ Erro ao importar leads: %v", err)
		code := usecase.ErrorCode(err)
		if code == "" {
			code = "INTERNAL_ERROR"
		}
		writeErrorResponse(w, http.StatusInternalServerError, code, "Erro interno do servidor.")
		return
	}

	middleware.RecordLeadsImported(output.Imported)
	writeJSON(w, http.StatusCreated, importResponse{Success: true, ImportLeadsOutput: output})
}
