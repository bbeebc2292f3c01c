// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/internal/middleware"
	"github.com/o-lebedeva/tx-bank/pkg/errorspkg"
	"github.com/o-lebedeva/tx-bank/pkg/tokenpkg"
	"github.com/o-lebedeva/tx-bank/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, owner string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type accountResponse struct {
	Data accountData `json:"data,omitempty"`
}

// Create handles http request to open an account for the authorized user.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, err := h.service.Create(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrOwnerNotFound {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, accountResponse{Data: accountData{account}})
}

type getRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get an account by id.
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

	account, err := h.service.Get(ctx, req.ID)
	if err != nil {
		switch err {
		case domain.ErrInvalidID:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}
