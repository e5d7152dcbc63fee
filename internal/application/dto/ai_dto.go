package dto

// AISummaryRequest POST /api/ai/summary. Provider vacío = el configurado.
type AISummaryRequest struct {
	Provider string             `json:"provider"`
	Filter   SalesFilterRequest `json:"filter"`
}

// AISummaryResponse texto generado (Markdown) y el contexto usado.
type AISummaryResponse struct {
	Provider string `json:"provider"`
	Context  string `json:"context"`
	Records  int    `json:"records"`
	Summary  string `json:"summary"`
}
