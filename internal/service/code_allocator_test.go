package service

import (
	"context"
	"errors"
	"testing"

	"medisafe/internal/domain/repository/mocks"
	"medisafe/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAllocator(numbers ...string) (*codeAllocator, *mocks.SequenceRepository, *mocks.PrescriptionRepository) {
	sequenceRepo := &mocks.SequenceRepository{}
	prescriptionRepo := &mocks.PrescriptionRepository{}
	a := NewCodeAllocator(newTestLogger(), sequenceRepo, prescriptionRepo).(*codeAllocator)

	i := 0
	a.generate = func() string {
		n := numbers[i%len(numbers)]
		i++
		return n
	}
	return a, sequenceRepo, prescriptionRepo
}

func TestNextSessionCodeUsesSequence(t *testing.T) {
	a, sequenceRepo, _ := newTestAllocator("RX00000000")
	sequenceRepo.On("Next", mock.Anything, mock.Anything, liveSessionCodeSequence).Return(int64(7), nil).Once()

	code, err := a.NextSessionCode(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "LAP007", code)
	sequenceRepo.AssertExpectations(t)
}

func TestNextPrescriptionNumberRetriesOnCollision(t *testing.T) {
	a, _, prescriptionRepo := newTestAllocator("RXAAAAAAAA", "RXBBBBBBBB")
	prescriptionRepo.On("ExistsByNumber", mock.Anything, mock.Anything, "RXAAAAAAAA").Return(true, nil).Once()
	prescriptionRepo.On("ExistsByNumber", mock.Anything, mock.Anything, "RXBBBBBBBB").Return(false, nil).Once()

	number, err := a.NextPrescriptionNumber(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "RXBBBBBBBB", number)
	prescriptionRepo.AssertExpectations(t)
}

func TestNextPrescriptionNumberGivesUpAfterFiveAttempts(t *testing.T) {
	a, _, prescriptionRepo := newTestAllocator("RXAAAAAAAA")
	prescriptionRepo.On("ExistsByNumber", mock.Anything, mock.Anything, "RXAAAAAAAA").Return(true, nil).Times(prescriptionNumberAttempts)

	_, err := a.NextPrescriptionNumber(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInternal))
	prescriptionRepo.AssertExpectations(t)
}

func TestNextPrescriptionNumberPropagatesLookupFailure(t *testing.T) {
	a, _, prescriptionRepo := newTestAllocator("RXAAAAAAAA")
	prescriptionRepo.On("ExistsByNumber", mock.Anything, mock.Anything, "RXAAAAAAAA").Return(false, errors.New("connection reset")).Once()

	_, err := a.NextPrescriptionNumber(context.Background(), nil)

	assert.EqualError(t, err, "connection reset")
}
