package dto

// ImportFileResult resultado de un archivo dentro de un lote.
type ImportFileResult struct {
	File      string         `json:"file"`
	Kind      string         `json:"kind"` // sales | customers
	ImportID  string         `json:"import_id"`
	Period    string         `json:"period,omitempty"`
	Records   int            `json:"records"`
	Customers int            `json:"customers"`
	Skipped   map[string]int `json:"skipped,omitempty"`
	OK        bool           `json:"ok"`
	Error     string         `json:"error,omitempty"`
}

// ImportResponse resultado del lote completo.
type ImportResponse struct {
	Files     []ImportFileResult `json:"files"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}
