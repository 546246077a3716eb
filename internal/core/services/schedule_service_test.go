package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/core/services"
)

type ScheduleServiceTestSuite struct {
	suite.Suite
	mockInstallmentRepo *MockInstallmentRepository
	service             portssvc.ScheduleSvcFacade
	actorID             string
}

func (suite *ScheduleServiceTestSuite) SetupTest() {
	suite.mockInstallmentRepo = new(MockInstallmentRepository)
	suite.service = services.NewScheduleService(suite.mockInstallmentRepo)
	suite.actorID = uuid.NewString()
}

func (suite *ScheduleServiceTestSuite) TestGenerateSchedule_ColumnsSumToLoanTotals() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID:       uuid.NewString(),
		Principal:    decimal.NewFromInt(10000),
		InterestRate: decimal.RequireFromString("0.40"),
		TermWeeks:    14,
		Status:       domain.LoanPending,
	}

	suite.mockInstallmentRepo.On("FindInstallmentsByLoanID", ctx, loan.LoanID).Return([]domain.Installment{}, nil).Once()
	suite.mockInstallmentRepo.On("SaveInstallments", ctx, mock.Anything).Return(nil).Once()

	installments, err := suite.service.GenerateSchedule(ctx, loan, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(installments, 14)

	capitalSum := decimal.Zero
	interestSum := decimal.Zero
	for i, inst := range installments {
		suite.Equal(i+1, inst.WeekNumber)
		suite.Equal(loan.LoanID, inst.LoanID)
		suite.Equal(domain.InstallmentPending, inst.Status)
		suite.True(inst.AmountDue.Equal(inst.CapitalPortion.Add(inst.InterestPortion)))
		capitalSum = capitalSum.Add(inst.CapitalPortion)
		interestSum = interestSum.Add(inst.InterestPortion)
	}
	suite.True(capitalSum.Equal(loan.Principal))
	// Flat-rate interest: 10000 * 0.40 = 4000 across the term.
	suite.True(interestSum.Equal(decimal.NewFromInt(4000)))
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestGenerateSchedule_LastWeekAbsorbsResidue() {
	ctx := context.Background()
	// 1000 over 3 weeks does not divide evenly at two decimals.
	loan := &domain.Loan{
		LoanID:       uuid.NewString(),
		Principal:    decimal.NewFromInt(1000),
		InterestRate: decimal.RequireFromString("0.10"),
		TermWeeks:    3,
		Status:       domain.LoanPending,
	}

	suite.mockInstallmentRepo.On("FindInstallmentsByLoanID", ctx, loan.LoanID).Return([]domain.Installment{}, nil).Once()
	suite.mockInstallmentRepo.On("SaveInstallments", ctx, mock.Anything).Return(nil).Once()

	installments, err := suite.service.GenerateSchedule(ctx, loan, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(installments, 3)
	suite.True(installments[0].CapitalPortion.Equal(decimal.RequireFromString("333.33")))
	suite.True(installments[1].CapitalPortion.Equal(decimal.RequireFromString("333.33")))
	suite.True(installments[2].CapitalPortion.Equal(decimal.RequireFromString("333.34")))
	suite.True(installments[0].InterestPortion.Equal(decimal.RequireFromString("33.33")))
	suite.True(installments[2].InterestPortion.Equal(decimal.RequireFromString("33.34")))
}

func (suite *ScheduleServiceTestSuite) TestGenerateSchedule_DueDatesAreWeeklyFromCreation() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID:       uuid.NewString(),
		Principal:    decimal.NewFromInt(1000),
		InterestRate: decimal.RequireFromString("0.10"),
		TermWeeks:    4,
		Status:       domain.LoanPending,
	}

	suite.mockInstallmentRepo.On("FindInstallmentsByLoanID", ctx, loan.LoanID).Return([]domain.Installment{}, nil).Once()
	suite.mockInstallmentRepo.On("SaveInstallments", ctx, mock.Anything).Return(nil).Once()

	installments, err := suite.service.GenerateSchedule(ctx, loan, suite.actorID)

	suite.Require().NoError(err)
	for i := 1; i < len(installments); i++ {
		gap := installments[i].DueDate.Sub(installments[i-1].DueDate)
		suite.Equal(7*24*time.Hour, gap)
	}
}

func (suite *ScheduleServiceTestSuite) TestGenerateSchedule_RejectsExistingSchedule() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID:       uuid.NewString(),
		Principal:    decimal.NewFromInt(1000),
		InterestRate: decimal.RequireFromString("0.10"),
		TermWeeks:    4,
	}

	existing := []domain.Installment{{InstallmentID: uuid.NewString(), LoanID: loan.LoanID, WeekNumber: 1}}
	suite.mockInstallmentRepo.On("FindInstallmentsByLoanID", ctx, loan.LoanID).Return(existing, nil).Once()

	_, err := suite.service.GenerateSchedule(ctx, loan, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "SaveInstallments")
}

func (suite *ScheduleServiceTestSuite) TestGenerateSchedule_RejectsInvalidTerms() {
	ctx := context.Background()

	_, err := suite.service.GenerateSchedule(ctx, &domain.Loan{
		LoanID:    uuid.NewString(),
		Principal: decimal.NewFromInt(1000),
		TermWeeks: 0,
	}, suite.actorID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.GenerateSchedule(ctx, &domain.Loan{
		LoanID:    uuid.NewString(),
		Principal: decimal.Zero,
		TermWeeks: 10,
	}, suite.actorID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "FindInstallmentsByLoanID")
}

func (suite *ScheduleServiceTestSuite) TestGetScheduleByLoanID() {
	ctx := context.Background()
	loanID := uuid.NewString()
	stored := []domain.Installment{
		{InstallmentID: uuid.NewString(), LoanID: loanID, WeekNumber: 1},
		{InstallmentID: uuid.NewString(), LoanID: loanID, WeekNumber: 2},
	}

	suite.mockInstallmentRepo.On("FindInstallmentsByLoanID", ctx, loanID).Return(stored, nil).Once()

	installments, err := suite.service.GetScheduleByLoanID(ctx, loanID, time.Now())

	suite.Require().NoError(err)
	suite.Equal(stored, installments)
}

func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
