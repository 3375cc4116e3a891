package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForming() FormingConfig {
	return FormingConfig{
		TargetTeamSize:  5,
		TargetTzSpan:    3,
		MaxTzSpan:       4,
		TargetExpRadius: 1.5,
		SwapSearchDepth: 3,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		FormsAPIBaseURL:      "https://forms.example.com",
		QualifierFormSlug:    "cj-qualifier",
		ConfirmationFormSlug: "cj-confirmation",
		CSVDir:               "data",
		ReportPath:           "report.xlsx",
		Forming:              validForming(),
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{
		FormsAPIBaseURL:   "https://forms.example.com",
		QualifierFormSlug: "cj-qualifier",
		// Missing ConfirmationFormSlug
		CSVDir:  "data",
		Forming: validForming(),
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ConfirmationFormSlug")
}

func TestValidate_InvalidURL(t *testing.T) {
	cfg := &Config{
		FormsAPIBaseURL:      "not a url",
		QualifierFormSlug:    "cj-qualifier",
		ConfirmationFormSlug: "cj-confirmation",
		CSVDir:               "data",
		Forming:              validForming(),
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_MaxSpanBelowTargetSpan(t *testing.T) {
	forming := validForming()
	forming.MaxTzSpan = 2

	cfg := &Config{
		FormsAPIBaseURL:      "https://forms.example.com",
		QualifierFormSlug:    "cj-qualifier",
		ConfirmationFormSlug: "cj-confirmation",
		CSVDir:               "data",
		Forming:              forming,
	}

	err := Validate(cfg)
	assert.ErrorContains(t, err, "maxTzSpan")
}

func TestValidate_SwapDepthOutOfRange(t *testing.T) {
	forming := validForming()
	forming.SwapSearchDepth = 9

	cfg := &Config{
		FormsAPIBaseURL:      "https://forms.example.com",
		QualifierFormSlug:    "cj-qualifier",
		ConfirmationFormSlug: "cj-confirmation",
		CSVDir:               "data",
		Forming:              forming,
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestLoadFromPath(t *testing.T) {
	content := `formsAPIBaseURL: https://forms.example.com
qualifierFormSlug: cj-qualifier
confirmationFormSlug: cj-confirmation
csvDir: data
reportPath: report.xlsx
teamForming:
  targetTeamSize: 5
  targetTzSpan: 3
  maxTzSpan: 4
  targetExpRadius: 1.5
  swapSearchDepth: 3
`
	path := filepath.Join(t.TempDir(), "team_forming.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://forms.example.com", cfg.FormsAPIBaseURL)
	assert.Equal(t, "cj-qualifier", cfg.QualifierFormSlug)
	assert.Equal(t, "data", cfg.CSVDir)
	assert.Equal(t, 5, cfg.Forming.TargetTeamSize)
	assert.Equal(t, 3.0, cfg.Forming.TargetTzSpan)

	params := cfg.FormingParams()
	assert.Equal(t, 5, params.TargetTeamSize)
	assert.Equal(t, 4.0, params.MaxTzSpan)
	assert.Equal(t, 1.5, params.TargetExpRadius)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team_forming.yaml")
	require.NoError(t, os.WriteFile(path, []byte("formsAPIBaseURL: [unclosed"), 0o644))

	_, err := LoadFromPath(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}
