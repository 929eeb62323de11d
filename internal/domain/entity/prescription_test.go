package entity

import (
	"regexp"
	"testing"
	"time"

	"medisafe/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrescriptionNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^RX[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := NewPrescriptionNumber()
		assert.Regexp(t, pattern, n)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestPrescriptionSignFreezesContent(t *testing.T) {
	p := &Prescription{Status: PrescriptionDraft, Medicines: Medicines{{Name: "Amoxicillin"}}}

	assert.True(t, apperror.Is(p.Sign("  ", time.Now()), apperror.KindValidation))

	now := time.Now()
	require.NoError(t, p.Sign("data:image/png;base64,AAA", now))
	assert.Equal(t, PrescriptionSigned, p.Status)
	assert.Equal(t, now, *p.SignatureDate)

	err := p.ApplyEdit(PrescriptionEdit{Medicines: Medicines{{Name: "Ibuprofen"}}})
	assert.ErrorIs(t, err, ErrPrescriptionLocked)
	assert.Equal(t, "Amoxicillin", p.Medicines[0].Name)

	assert.Error(t, p.Sign("again", now))
}

func TestPrescriptionStatusFlow(t *testing.T) {
	p := &Prescription{Status: PrescriptionDraft}
	assert.Error(t, p.MarkPrinted())

	require.NoError(t, p.Sign("sig", time.Now()))
	require.NoError(t, p.MarkPrinted())
	assert.Equal(t, PrescriptionPrinted, p.Status)
	assert.Error(t, p.Cancel())

	draft := &Prescription{Status: PrescriptionDraft}
	require.NoError(t, draft.Cancel())
	assert.Equal(t, PrescriptionCancelled, draft.Status)
}

func TestMedicinesValueScan(t *testing.T) {
	in := Medicines{{Name: "Paracetamol", Dosage: "500mg", Frequency: "3x daily", Duration: "5 days"}}
	v, err := in.Value()
	require.NoError(t, err)

	var out Medicines
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	var empty Medicines
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
