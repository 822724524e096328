package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
// When Preset is set the class flags are ignored and Length, if positive,
// overrides the preset length.
type GenerateRequest struct {
	Preset       string `json:"preset"`
	Length       int    `json:"length"`
	Uppercase    *bool  `json:"uppercase"`
	Lowercase    *bool  `json:"lowercase"`
	Numbers      *bool  `json:"numbers"`
	Symbols      *bool  `json:"symbols"`
	SymbolWeight int    `json:"symbol_weight"`
	Count        int    `json:"count,omitempty"`
}

// CustomGenerateRequest represents a request to draw from a caller supplied charset.
type CustomGenerateRequest struct {
	Charset string `json:"charset"`
	Length  int    `json:"length"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password    string  `json:"password"`
	Length      int     `json:"length"`
	Strength    string  `json:"strength"`
	EntropyBits float64 `json:"entropy_bits"`
}

// BulkGenerateResponse wraps several generated passwords.
type BulkGenerateResponse struct {
	Passwords []GenerateResponse `json:"passwords"`
}

// StrengthRequest represents a password strength check request.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse reports the entropy-based rating and a zxcvbn second opinion.
type StrengthResponse struct {
	Strength    string   `json:"strength"`
	EntropyBits float64  `json:"entropy_bits"`
	PoolSize    int      `json:"pool_size"`
	Length      int      `json:"length"`
	Classes     []string `json:"classes"`
	ZxcvbnScore int      `json:"zxcvbn_score"`
}

// PresetResponse describes one built-in preset.
type PresetResponse struct {
	Name         string   `json:"name"`
	Length       int      `json:"length"`
	Classes      []string `json:"classes"`
	SymbolWeight int      `json:"symbol_weight"`
}

// ExportRequest carries the passwords a client wants serialized.
type ExportRequest struct {
	Passwords []string `json:"passwords"`
}
