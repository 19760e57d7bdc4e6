package diagnostic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Code:        CodeUnknownMarkerOption,
		Message:     `unknown pii tag option "sensitve"`,
		Type:        "example.com/app/events.UserRegistered",
		FieldPath:   "$.email",
		Suggestions: []string{"sensitive"},
	}

	assert.Equal(t,
		`[example.com/app/events.UserRegistered] $.email: [unknown_marker_option] unknown pii tag option "sensitve" (did you mean sensitive?)`,
		d.String())

	assert.Equal(t, "no packages to scan", Diagnostic{Message: "no packages to scan"}.String())
}

func TestDiagnostics_Severities(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddInfo(CodeIgnoredType, "ignored", "T", "$.a")
	d.AddWarning(CodeNestedSubjectID, "nested", "T", "$.b.id")
	d.AddWarningWithSuggestions(CodeUnknownMarkerOption, "unknown", "T", "$.c", []string{"sensitive"})

	assert.True(t, d.IsValid())
	assert.Len(t, d.Warnings, 2)
	assert.Len(t, d.Infos, 1)
	assert.Equal(t, DiagnosticWarning, d.Warnings[1].Severity)

	d.AddError(CodeNoPackages, "no packages", "", "packages")
	d.AddErrorWithSuggestions(CodeInvalidFormat, "bad format", "", "format", []string{"json"})

	assert.False(t, d.IsValid())
	require.Error(t, d.Error())
	assert.Equal(t,
		"packages: [no_packages] no packages; format: [invalid_format] bad format (did you mean json?)",
		d.Error().Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddWarning("w1", "first", "", "")
	b.AddWarning("w2", "second", "", "")
	b.AddError("e1", "error", "", "")

	a.Merge(b)

	assert.Equal(t, "w1", a.Warnings[0].Code)
	assert.Equal(t, "w2", a.Warnings[1].Code)
	assert.Len(t, a.Errors, 1)
}

func TestDiagnostics_Report(t *testing.T) {
	var d Diagnostics

	d.AddInfo("i", "note", "", "")
	d.AddWarning("w", "careful", "", "")
	d.AddError("e", "broken", "", "")

	var buf bytes.Buffer
	require.NoError(t, d.Report(&buf, false))
	assert.Equal(t, "warning: [w] careful\n", buf.String())

	buf.Reset()
	require.NoError(t, d.Report(&buf, true))
	assert.Equal(t, "warning: [w] careful\ninfo: [i] note\n", buf.String())
	assert.EqualError(t, d.Error(), "[e] broken")
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(7).String())
}
