package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "年次アンケート.csv", exportFilename("年次アンケート"))
	assert.Equal(t, "a_b_c.csv", exportFilename(`a"b/c`))
	assert.Equal(t, "submissions.csv", exportFilename("   "))
}

func TestParticipantIDFromComposite(t *testing.T) {
	assert.Equal(t, "EMP001", participantIDFromComposite("camp-a_EMP001", "camp-a"))
	assert.Equal(t, "EMP_001", participantIDFromComposite("camp-a_EMP_001", "camp-a"))
}
