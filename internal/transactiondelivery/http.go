// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/pkg/errorspkg"
	"github.com/o-lebedeva/tx-bank/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type responseTransactions struct {
	Data dataTransactions `json:"data,omitempty"`
}

// List handles http request to list all transactions.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	transactions, err := h.service.List(ctx)
	if err != nil {
		if err == domain.ErrNoTransactions {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseTransactions{
		Data: dataTransactions{transactions},
	}

	gctx.JSON(http.StatusOK, res)
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Get handles http request to get a transaction by id.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidID))

		return
	}

	transaction, err := h.service.Get(ctx, req.ID)
	if err != nil {
		switch err {
		case domain.ErrInvalidID:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrTransactionNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{transaction},
	}

	gctx.JSON(http.StatusOK, res)
}

type createRequest struct {
	AccountID int32  `json:"account_id" binding:"required,min=1"`
	Amount    string `json:"amount" binding:"required"`
}

type dataTxResult struct {
	Transaction domain.Transaction `json:"transaction"`
	Account     domain.Account     `json:"account"`
}

type responseTxResult struct {
	Data dataTxResult `json:"data,omitempty"`
}

// Create handles http request to create a transaction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	arg := domain.CreateTransactionParams{
		AccountID: req.AccountID,
		Amount:    req.Amount,
	}

	result, err := h.service.Create(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrInvalidTransaction,
			domain.ErrInvalidAmount,
			domain.ErrAccountNotExists,
			domain.ErrInsufficientFunds:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseTxResult{
		Data: dataTxResult{
			Transaction: result.Transaction,
			Account:     result.Account,
		},
	}

	gctx.JSON(http.StatusCreated, res)
}
