package dto

// SettingDTO clave/valor; Masked indica que Value fue ocultado.
type SettingDTO struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Masked bool   `json:"masked"`
}

// SaveSettingRequest PUT /api/settings/:key.
type SaveSettingRequest struct {
	Value string `json:"value"`
}
