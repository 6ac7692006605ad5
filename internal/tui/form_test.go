package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eglise/parish/internal/registry"
)

func TestForm_SubmitCoercesNumbers(t *testing.T) {
	m := newFormModel(registry.Wards, nil)
	m.inputs[0].text.SetValue("North Ward")
	m.inputs[1].text.SetValue("5")
	m.inputs[2].text.SetValue("Hilltop")

	m, cmd := m.submit()
	require.NotNil(t, cmd)

	msg, ok := cmd().(formSubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "North Ward", msg.values["ward_name"])
	assert.Equal(t, int64(5), msg.values["ward_number"])
}

func TestForm_SubmitRejectsMissingRequired(t *testing.T) {
	m := newFormModel(registry.Wards, nil)
	m.inputs[1].text.SetValue("5")

	m, cmd := m.submit()

	assert.Nil(t, cmd)
	assert.Contains(t, m.errMsg, "Ward Name")
}

func TestForm_SubmitRejectsBadNumber(t *testing.T) {
	m := newFormModel(registry.Wards, nil)
	m.inputs[0].text.SetValue("North")
	m.inputs[1].text.SetValue("five")

	m, cmd := m.submit()

	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.errMsg)
}

func TestForm_EditSeedsExistingValues(t *testing.T) {
	item := registry.Item{
		"id":          float64(3),
		"family_name": "Kurian",
		"origin":      "",
		"history":     "settled 1952",
	}
	m := newFormModel(registry.Families, item)

	assert.Equal(t, "Kurian", m.inputs[0].value())
	assert.Equal(t, "", m.inputs[1].value())
	assert.Equal(t, "settled 1952", m.inputs[2].value())
}

func TestForm_EnterOnLastFieldSubmits(t *testing.T) {
	m := newFormModel(registry.Grades, nil) // single text field
	m.inputs[0].text.SetValue("Grade I")

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(formSubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "Grade I", msg.values["name"])
}

func TestForm_EscCancels(t *testing.T) {
	m := newFormModel(registry.Wards, nil)

	_, cmd := m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)

	_, ok := cmd().(formCancelMsg)
	assert.True(t, ok)
}

func TestForm_SavingBlocksInput(t *testing.T) {
	m := newFormModel(registry.Wards, nil)
	m.inputs[0].text.SetValue("North")
	m.saving = true

	_, cmd := m.Update(keyMsg("esc"))
	assert.Nil(t, cmd, "esc must not cancel while a save is in flight")
}
