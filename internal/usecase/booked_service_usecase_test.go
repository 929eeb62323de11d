package usecase

import (
	"context"
	"testing"
	"time"

	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
	"medisafe/internal/domain/repository/mocks"
	"medisafe/internal/infrastructure/database/dbtest"
	servicemocks "medisafe/internal/service/mocks"
	"medisafe/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookedServiceFixture struct {
	tx          *dbtest.Transactor
	bookingRepo *mocks.BookedServiceRepository
	serviceRepo *mocks.MedicalServiceRepository
	usecase     *bookedServiceUsecase
}

func newBookedServiceFixture() *bookedServiceFixture {
	f := &bookedServiceFixture{
		tx:          &dbtest.Transactor{},
		bookingRepo: &mocks.BookedServiceRepository{},
		serviceRepo: &mocks.MedicalServiceRepository{},
	}
	audit := (&servicemocks.AuditService{}).Permissive()
	f.usecase = NewBookedServiceUsecase(f.tx, newTestLogger(), f.bookingRepo, f.serviceRepo, audit).(*bookedServiceUsecase)
	f.usecase.now = fixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	return f
}

func TestBookSnapshotsCatalogPrice(t *testing.T) {
	f := newBookedServiceFixture()
	patientID := uuid.New()
	catalog := &entity.MedicalService{ID: uuid.New(), Name: "X-Ray", Price: decimal.RequireFromString("850.00"), IsActive: true}
	serviceID := catalog.ID.String()

	f.serviceRepo.On("FindByID", mock.Anything, mock.Anything, catalog.ID).Return(catalog, nil).Once()
	f.bookingRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(b *entity.BookedService) bool {
		return b.UserID == patientID &&
			*b.ServiceID == catalog.ID &&
			b.ServiceName == "X-Ray" &&
			b.Price.Valid && b.Price.Decimal.Equal(decimal.RequireFromString("850")) &&
			b.Status == entity.BookedServicePending
	})).Return(nil).Once()

	resp, err := f.usecase.Book(context.Background(), patientPrincipal(patientID), &dto.BookServiceRequest{
		ServiceID:   &serviceID,
		ServiceName: "ignored",
		BookingDate: "2025-03-11",
		BookingTime: "10:30",
	})

	require.NoError(t, err)
	assert.Equal(t, "X-Ray", resp.ServiceName)
	f.bookingRepo.AssertExpectations(t)
}

func TestBookFreeNamedServiceHasNoPrice(t *testing.T) {
	f := newBookedServiceFixture()
	f.bookingRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(b *entity.BookedService) bool {
		return b.ServiceID == nil && b.ServiceName == "Home visit" && !b.Price.Valid
	})).Return(nil).Once()

	_, err := f.usecase.Book(context.Background(), patientPrincipal(uuid.New()), &dto.BookServiceRequest{
		ServiceName: " Home visit ",
		BookingDate: "2025-03-10",
		BookingTime: "09:30",
	})

	require.NoError(t, err)
	f.bookingRepo.AssertExpectations(t)
}

func TestBookRejectsInvalidRequests(t *testing.T) {
	inactive := &entity.MedicalService{ID: uuid.New(), Name: "Old", IsActive: false}
	inactiveID := inactive.ID.String()

	tests := []struct {
		name string
		req  dto.BookServiceRequest
		want error
	}{
		{"past", dto.BookServiceRequest{ServiceName: "ECG", BookingDate: "2025-03-10", BookingTime: "08:59"}, ErrBookingInPast},
		{"now", dto.BookServiceRequest{ServiceName: "ECG", BookingDate: "2025-03-10", BookingTime: "09:00"}, ErrBookingInPast},
		{"no service", dto.BookServiceRequest{BookingDate: "2025-03-11", BookingTime: "10:00"}, ErrServiceRequired},
		{"bad date", dto.BookServiceRequest{ServiceName: "ECG", BookingDate: "11/03/2025", BookingTime: "10:00"}, ErrInvalidDateFormat},
		{"inactive service", dto.BookServiceRequest{ServiceID: &inactiveID, BookingDate: "2025-03-11", BookingTime: "10:00"}, ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookedServiceFixture()
			f.serviceRepo.On("FindByID", mock.Anything, mock.Anything, inactive.ID).Return(inactive, nil).Maybe()

			_, err := f.usecase.Book(context.Background(), patientPrincipal(uuid.New()), &tt.req)

			assert.ErrorIs(t, err, tt.want)
			f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCancelBooking(t *testing.T) {
	owner := uuid.New()

	t.Run("owner cancels pending", func(t *testing.T) {
		f := newBookedServiceFixture()
		booking := &entity.BookedService{ID: uuid.New(), UserID: owner, ServiceName: "ECG", Status: entity.BookedServicePending}
		f.bookingRepo.On("FindByID", mock.Anything, mock.Anything, booking.ID).Return(booking, nil).Once()
		f.bookingRepo.On("Update", mock.Anything, mock.Anything, booking).Return(nil).Once()

		resp, err := f.usecase.Cancel(context.Background(), patientPrincipal(owner), booking.ID)

		require.NoError(t, err)
		assert.Equal(t, "Cancelled", resp.Status)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		f := newBookedServiceFixture()
		booking := &entity.BookedService{ID: uuid.New(), UserID: owner, Status: entity.BookedServiceCompleted}
		f.bookingRepo.On("FindByID", mock.Anything, mock.Anything, booking.ID).Return(booking, nil).Once()

		_, err := f.usecase.Cancel(context.Background(), patientPrincipal(owner), booking.ID)

		assert.ErrorIs(t, err, ErrBookingNotCancelled)
		assert.Equal(t, 1, f.tx.Rollbacks)
	})

	t.Run("stranger sees not found", func(t *testing.T) {
		f := newBookedServiceFixture()
		booking := &entity.BookedService{ID: uuid.New(), UserID: owner, Status: entity.BookedServicePending}
		f.bookingRepo.On("FindByID", mock.Anything, mock.Anything, booking.ID).Return(booking, nil).Once()

		_, err := f.usecase.Cancel(context.Background(), patientPrincipal(uuid.New()), booking.ID)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	f := newBookedServiceFixture()
	booking := &entity.BookedService{ID: uuid.New(), UserID: uuid.New(), Status: entity.BookedServicePending}
	f.bookingRepo.On("FindByID", mock.Anything, mock.Anything, booking.ID).Return(booking, nil)
	f.bookingRepo.On("Update", mock.Anything, mock.Anything, booking).Return(nil)

	_, err := f.usecase.UpdateStatus(context.Background(), adminPrincipal(), booking.ID, &dto.UpdateBookedServiceStatusRequest{Status: "Completed"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = f.usecase.UpdateStatus(context.Background(), adminPrincipal(), booking.ID, &dto.UpdateBookedServiceStatusRequest{Status: "Confirmed"})
	require.NoError(t, err)
	resp, err := f.usecase.UpdateStatus(context.Background(), adminPrincipal(), booking.ID, &dto.UpdateBookedServiceStatusRequest{Status: "Completed"})
	require.NoError(t, err)
	assert.Equal(t, "Completed", resp.Status)
}

func TestListAllRejectsUnknownStatus(t *testing.T) {
	f := newBookedServiceFixture()

	_, err := f.usecase.ListAll(context.Background(), "Lost")

	assert.ErrorIs(t, err, ErrInvalidBookingState)
}

func TestMedicalServiceCatalog(t *testing.T) {
	newUsecase := func() (MedicalServiceUsecase, *mocks.MedicalServiceRepository) {
		repo := &mocks.MedicalServiceRepository{}
		return NewMedicalServiceUsecase(&dbtest.Transactor{}, newTestLogger(), repo, (&servicemocks.AuditService{}).Permissive()), repo
	}

	t.Run("create rounds price", func(t *testing.T) {
		uc, repo := newUsecase()
		repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *entity.MedicalService) bool {
			return s.Name == "CBC" && s.Price.Equal(decimal.RequireFromString("120.46")) && s.IsActive
		})).Return(nil).Once()

		resp, err := uc.Create(context.Background(), adminPrincipal(), &dto.CreateMedicalServiceRequest{
			Name: " CBC ", Price: decimal.RequireFromString("120.455"),
		})

		require.NoError(t, err)
		assert.Equal(t, "120.46", resp.Price.StringFixed(2))
	})

	t.Run("negative price", func(t *testing.T) {
		uc, _ := newUsecase()

		_, err := uc.Create(context.Background(), adminPrincipal(), &dto.CreateMedicalServiceRequest{
			Name: "CBC", Price: decimal.NewFromInt(-1),
		})

		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("duplicate name", func(t *testing.T) {
		uc, repo := newUsecase()
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_medical_services_name"}).Once()

		_, err := uc.Create(context.Background(), adminPrincipal(), &dto.CreateMedicalServiceRequest{Name: "CBC", Price: decimal.NewFromInt(100)})

		assert.ErrorIs(t, err, ErrServiceNameTaken)
	})

	t.Run("list pages with defaults", func(t *testing.T) {
		uc, repo := newUsecase()
		repo.On("FindAll", mock.Anything, mock.Anything, true, 10, 0).
			Return([]entity.MedicalService{{ID: uuid.New(), Name: "CBC"}}, int64(1), nil).Once()

		resp, err := uc.GetAll(context.Background(), true, 0, 0)

		require.NoError(t, err)
		assert.Len(t, resp.Services, 1)
		assert.EqualValues(t, 1, resp.Total)
	})
}
