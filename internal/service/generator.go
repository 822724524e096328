package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/model"
)

const (
	defaultLength    = 16
	defaultMaxLength = 1024
	defaultMaxBulk   = 100
)

var (
	ErrLengthTooLong = errors.New("password length exceeds the configured maximum")
	ErrInvalidCount  = errors.New("count must be between 1 and the configured maximum")
)

// Recorder stores metadata about a generated password.
type Recorder interface {
	Record(ctx context.Context, rec model.GenerationRecord) error
}

// Observer receives one call per generated password.
type Observer interface {
	ObserveGeneration(source, strength string, entropyBits float64)
}

// GeneratorConfig configures a GeneratorService. Zero values select defaults.
type GeneratorConfig struct {
	Source    string
	MaxLength int
	MaxBulk   int
	Recorder  Recorder
	Observer  Observer
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	cfg GeneratorConfig
	gen *crypto.Generator
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(cfg GeneratorConfig) *GeneratorService {
	if cfg.Source == "" {
		cfg.Source = model.SourceAPI
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = defaultMaxLength
	}
	if cfg.MaxBulk <= 0 {
		cfg.MaxBulk = defaultMaxBulk
	}
	return &GeneratorService{cfg: cfg, gen: crypto.NewGenerator(nil)}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	in := policyInput(req)
	if in.Length > s.cfg.MaxLength {
		return model.GenerateResponse{}, ErrLengthTooLong
	}

	password, err := s.gen.Generate(in)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return s.finish(ctx, in.Preset, password), nil
}

// GenerateBulk produces req.Count passwords from the same policy.
func (s *GeneratorService) GenerateBulk(ctx context.Context, req model.GenerateRequest) (model.BulkGenerateResponse, error) {
	if req.Count < 1 || req.Count > s.cfg.MaxBulk {
		return model.BulkGenerateResponse{}, ErrInvalidCount
	}

	in := policyInput(req)
	if in.Length > s.cfg.MaxLength {
		return model.BulkGenerateResponse{}, ErrLengthTooLong
	}

	// Resolve once; every password shares the policy.
	policy, err := crypto.Resolve(in)
	if err != nil {
		return model.BulkGenerateResponse{}, err
	}

	resp := model.BulkGenerateResponse{Passwords: make([]model.GenerateResponse, 0, req.Count)}
	for i := 0; i < req.Count; i++ {
		password, err := s.gen.Synthesize(policy)
		if err != nil {
			return model.BulkGenerateResponse{}, err
		}
		resp.Passwords = append(resp.Passwords, s.finish(ctx, in.Preset, password))
	}

	return resp, nil
}

// GenerateCustom draws a password from a caller supplied charset.
func (s *GeneratorService) GenerateCustom(ctx context.Context, req model.CustomGenerateRequest) (model.GenerateResponse, error) {
	length := req.Length
	if length == 0 {
		length = defaultLength
	}
	if length > s.cfg.MaxLength {
		return model.GenerateResponse{}, ErrLengthTooLong
	}

	password, err := s.gen.FromCharset(req.Charset, length)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return s.finish(ctx, "custom", password), nil
}

// CheckStrength analyzes an arbitrary password.
func (s *GeneratorService) CheckStrength(req model.StrengthRequest) model.StrengthResponse {
	a := crypto.Inspect(req.Password)
	return model.StrengthResponse{
		Strength:    string(a.Rating),
		EntropyBits: a.EntropyBits,
		PoolSize:    a.PoolSize,
		Length:      a.Length,
		Classes:     a.Classes.Names(),
		ZxcvbnScore: crypto.ZxcvbnScore(req.Password),
	}
}

// Presets lists the built-in presets.
func (s *GeneratorService) Presets() []model.PresetResponse {
	presets := crypto.Presets()
	out := make([]model.PresetResponse, len(presets))
	for i, p := range presets {
		out[i] = model.PresetResponse{
			Name:         p.Name,
			Length:       p.Length,
			Classes:      p.Classes.Names(),
			SymbolWeight: p.SymbolWeight,
		}
	}
	return out
}

// IsValidationError reports whether err was caused by bad caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrInvalidPolicy) ||
		errors.Is(err, ErrLengthTooLong) ||
		errors.Is(err, ErrInvalidCount)
}

// finish classifies the password, reports it to the observer and recorder,
// and builds the response.
func (s *GeneratorService) finish(ctx context.Context, preset, password string) model.GenerateResponse {
	a := crypto.Inspect(password)

	if s.cfg.Observer != nil {
		s.cfg.Observer.ObserveGeneration(s.cfg.Source, string(a.Rating), a.EntropyBits)
	}
	if s.cfg.Recorder != nil {
		rec := model.GenerationRecord{
			Source:      s.cfg.Source,
			Preset:      preset,
			Length:      a.Length,
			Classes:     a.Classes.String(),
			Strength:    string(a.Rating),
			EntropyBits: a.EntropyBits,
		}
		if err := s.cfg.Recorder.Record(ctx, rec); err != nil {
			slog.Warn("recording generation failed", "error", err)
		}
	}

	return model.GenerateResponse{
		Password:    password,
		Length:      a.Length,
		Strength:    string(a.Rating),
		EntropyBits: a.EntropyBits,
	}
}

// policyInput maps a request onto a policy input.
// Missing class flags default to true and a missing length to 16.
func policyInput(req model.GenerateRequest) crypto.PolicyInput {
	if req.Preset != "" {
		return crypto.PolicyInput{
			Preset:       req.Preset,
			Length:       req.Length,
			SymbolWeight: req.SymbolWeight,
		}
	}

	var classes crypto.ClassSet
	if boolOrDefault(req.Uppercase, true) {
		classes = classes.With(crypto.Uppercase)
	}
	if boolOrDefault(req.Lowercase, true) {
		classes = classes.With(crypto.Lowercase)
	}
	if boolOrDefault(req.Numbers, true) {
		classes = classes.With(crypto.Digit)
	}
	if boolOrDefault(req.Symbols, true) {
		classes = classes.With(crypto.Symbol)
	}

	length := req.Length
	if length == 0 {
		length = defaultLength
	}

	return crypto.PolicyInput{
		Classes:      classes,
		Length:       length,
		SymbolWeight: req.SymbolWeight,
	}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
