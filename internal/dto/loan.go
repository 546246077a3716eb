package dto

import (
	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest is the body of the loan creation operation.
type CreateLoanRequest struct {
	CustomerName string          `json:"customerName" binding:"required"`
	Principal    decimal.Decimal `json:"principal" binding:"required"`
	InterestRate decimal.Decimal `json:"interestRate" binding:"required"`
	TermWeeks    int             `json:"termWeeks" binding:"required,gt=0"`
	LoanType     string          `json:"loanType" binding:"required,oneof=efectivo producto"`
	StoreID      *string         `json:"storeID,omitempty"`
}

// LoanResponse is the API shape of a loan.
type LoanResponse struct {
	LoanID       string          `json:"loanID"`
	CustomerName string          `json:"customerName"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermWeeks    int             `json:"termWeeks"`
	LoanType     string          `json:"loanType"`
	Status       string          `json:"status"`
	StoreID      *string         `json:"storeID,omitempty"`
}

// ToLoanResponse converts a domain Loan to its API shape.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:       l.LoanID,
		CustomerName: l.CustomerName,
		Principal:    l.Principal,
		InterestRate: l.InterestRate,
		TermWeeks:    l.TermWeeks,
		LoanType:     string(l.LoanType),
		Status:       string(l.Status),
		StoreID:      l.StoreID,
	}
}
