package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/core/services"
	"github.com/prestadero/lending-backend/internal/dto"
)

type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo        *MockLoanRepository
	mockInstallmentRepo *MockInstallmentRepository
	service             portssvc.LoanSvcFacade
	actorID             string
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockInstallmentRepo = new(MockInstallmentRepository)
	scheduleSvc := services.NewScheduleService(suite.mockInstallmentRepo)
	suite.service = services.NewLoanService(suite.mockLoanRepo, scheduleSvc)
	suite.actorID = uuid.NewString()
}

func (suite *LoanServiceTestSuite) TestCreateLoan() {
	ctx := context.Background()
	req := dto.CreateLoanRequest{
		CustomerName: "Jorge Ruiz",
		Principal:    decimal.NewFromInt(5000),
		InterestRate: decimal.RequireFromString("0.40"),
		TermWeeks:    14,
		LoanType:     "efectivo",
	}

	suite.mockLoanRepo.On("SaveLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanPending && l.CustomerName == "Jorge Ruiz" && l.CreatedBy == suite.actorID
	})).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.NotEmpty(loan.LoanID)
	suite.Equal(domain.LoanPending, loan.Status)
	suite.Equal(domain.LoanTypeCash, loan.LoanType)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_RejectsInvalidTerms() {
	ctx := context.Background()

	_, err := suite.service.CreateLoan(ctx, dto.CreateLoanRequest{
		Principal: decimal.Zero,
		TermWeeks: 14,
	}, suite.actorID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateLoan(ctx, dto.CreateLoanRequest{
		Principal:    decimal.NewFromInt(1000),
		InterestRate: decimal.RequireFromString("-0.10"),
		TermWeeks:    14,
	}, suite.actorID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan")
}

func (suite *LoanServiceTestSuite) TestActivateLoan_GeneratesScheduleAndDelivers() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID:       uuid.NewString(),
		Principal:    decimal.NewFromInt(1400),
		InterestRate: decimal.RequireFromString("0.40"),
		TermWeeks:    14,
		Status:       domain.LoanPending,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockInstallmentRepo.On("FindInstallmentsByLoanID", ctx, loan.LoanID).Return([]domain.Installment{}, nil).Once()
	suite.mockInstallmentRepo.On("SaveInstallments", ctx, mock.MatchedBy(func(installments []domain.Installment) bool {
		return len(installments) == 14
	})).Return(nil).Once()
	suite.mockLoanRepo.On("UpdateLoanStatus", ctx, loan.LoanID, domain.LoanDelivered, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	activated, err := suite.service.ActivateLoan(ctx, loan.LoanID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanDelivered, activated.Status)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestActivateLoan_RejectsDeliveredLoan() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID: uuid.NewString(),
		Status: domain.LoanDelivered,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	_, err := suite.service.ActivateLoan(ctx, loan.LoanID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "SaveInstallments")
}

func (suite *LoanServiceTestSuite) TestActivateLoan_UnknownLoan() {
	ctx := context.Background()
	loanID := uuid.NewString()

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(nil, apperrors.NewNotFoundError("loan not found")).Once()

	_, err := suite.service.ActivateLoan(ctx, loanID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
