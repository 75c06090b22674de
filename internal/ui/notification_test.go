package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSessionUser(t *testing.T) {
	// GIVEN
	output := "root     tty1         2024-05-01 08:12\ngrower   :0           2024-05-01 08:15 (:0)\n"

	// WHEN
	result := findSessionUser(output, ":0")

	// THEN
	assert.Equal(t, "grower", result)
}

func TestFindSessionUser_NoSession(t *testing.T) {
	// GIVEN
	output := "root     tty1         2024-05-01 08:12\n\n"

	// WHEN
	result := findSessionUser(output, ":1")

	// THEN
	assert.Empty(t, result)
}

func TestSeverity_Mapping(t *testing.T) {
	assert.Equal(t, "low", SeverityInfo.urgency())
	assert.Equal(t, "dialog-information", SeverityInfo.icon())
	assert.Equal(t, "normal", SeverityWarning.urgency())
	assert.Equal(t, "dialog-warning", SeverityWarning.icon())
	assert.Equal(t, "critical", SeverityError.urgency())
	assert.Equal(t, "dialog-error", SeverityError.icon())
}
