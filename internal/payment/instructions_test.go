package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionsFor(t *testing.T) {
	steps := InstructionsFor(MethodPixCopyPaste, "R$ 40,99", "00020126...6304ABCD")

	assert.Len(t, steps, 5)
	assert.Contains(t, steps[2], "00020126...6304ABCD")
	assert.Contains(t, steps[3], "R$ 40,99")
}

func TestInstructionsForUnknownMethod(t *testing.T) {
	assert.Nil(t, InstructionsFor("BOLETO", "R$ 1,00", "x"))
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"PAID":            StatusApproved,
		"approved":        StatusApproved,
		"concluded":       StatusApproved,
		"in_process":      StatusProcessing,
		"pending":         StatusPending,
		"created":         StatusPending,
		"expired":         StatusRejected,
		"REJECTED":        StatusRejected,
		"canceled":        StatusCancelled,
		"removed_by_user": StatusCancelled,
		"whatever":        StatusPending,
	}

	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), raw)
	}
}
