package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/middlewares"
	"github.com/mmdatafocus/recon_backend/models"
	"github.com/mmdatafocus/recon_backend/models/exports"
	"github.com/mmdatafocus/recon_backend/utils"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetPasswordRequest struct {
	UserID   int    `json:"userId"`
	Password string `json:"password" binding:"required"`
}

type reportUploadRequest struct {
	Reports []*models.NewReport `json:"reports" binding:"required,dive"`
}

type invoiceUploadRequest struct {
	InvoiceReports []*models.NewInvoiceReport `json:"invoiceReports" binding:"required,dive"`
}

type deliveryUploadRequest struct {
	DeliveryReports []*models.NewDeliveryReport `json:"deliveryReports" binding:"required,dive"`
}

type billingExportRequest struct {
	Billings []string `json:"billings" binding:"required"`
	Type     string   `json:"type" binding:"required,oneof=DIT DITT"`
}

// bindJSON binds the request body and writes the 400 response itself when the
// payload is malformed or fails validation.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fieldErrors := utils.ProcessValidationErrors(err); fieldErrors != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return false
	}
	return true
}

// respondError maps model-layer failures onto HTTP statuses. Anything not
// recognized as a client fault is logged and answered as a 500.
func respondError(c *gin.Context, funcName string, err error) {
	var badRequest *utils.BadRequestError
	switch {
	case errors.As(err, &badRequest):
		c.JSON(http.StatusBadRequest, gin.H{"detail": badRequest.Detail})
	case errors.Is(err, utils.ErrBillingNotFound),
		errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	default:
		config.LogError(config.GetLogger(), "handlers.go", funcName, "unhandled error", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

func loginHandler(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := models.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid username or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func createUserHandler(c *gin.Context) {
	var req models.NewUser
	if !bindJSON(c, &req) {
		return
	}

	user, err := models.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "createUserHandler", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func resetPasswordHandler(c *gin.Context) {
	claim := middlewares.CtxValue(c.Request.Context())
	if claim == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	// Operators may only reset their own password.
	targetID := claim.ID
	if req.UserID != 0 && req.UserID != claim.ID {
		if claim.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		targetID = req.UserID
	}

	if err := models.ResetPassword(c.Request.Context(), targetID, req.Password); err != nil {
		respondError(c, "resetPasswordHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Reset password success"})
}

func createReportsHandler(c *gin.Context) {
	var req reportUploadRequest
	if !bindJSON(c, &req) {
		return
	}

	loc := config.DisplayLocation()
	if err := models.CreateReports(c.Request.Context(), loc, req.Reports); err != nil {
		respondError(c, "createReportsHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "Create report success"})
}

func mergeInvoicesHandler(c *gin.Context) {
	var req invoiceUploadRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := models.MergeInvoiceReports(c.Request.Context(), req.InvoiceReports); err != nil {
		respondError(c, "mergeInvoicesHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "Merge data success"})
}

func createDeliveryReportsHandler(c *gin.Context) {
	var req deliveryUploadRequest
	if !bindJSON(c, &req) {
		return
	}

	loc := config.DisplayLocation()
	if err := models.CreateDeliveryReports(c.Request.Context(), loc, req.DeliveryReports); err != nil {
		respondError(c, "createDeliveryReportsHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "Create delivery report success"})
}

func mergeDeliveryReportsHandler(c *gin.Context) {
	if err := models.MergeDeliveryReports(c.Request.Context()); err != nil {
		respondError(c, "mergeDeliveryReportsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Merge data success"})
}

func listReportsHandler(c *gin.Context) {
	loc := config.DisplayLocation()
	limit, offset := utils.ParsePagination(c.Query("limit"), c.Query("offset"))

	reports, count, err := models.ListReports(c.Request.Context(), loc, c.Query("monthly"), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, "listReportsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": count})
}

func exportReportsHandler(c *gin.Context) {
	loc := config.DisplayLocation()
	err := exports.ExportReports(c.Request.Context(), c.Writer, loc, c.Query("monthly"), c.Query("status"))
	if err != nil {
		respondError(c, "exportReportsHandler", err)
	}
}

func listDeliveryReportsHandler(c *gin.Context) {
	loc := config.DisplayLocation()
	limit, offset := utils.ParsePagination(c.Query("limit"), c.Query("offset"))

	deliveries, count, err := models.ListDeliveryReports(c.Request.Context(), loc, c.Query("dateStart"), c.Query("dateEnd"), limit, offset)
	if err != nil {
		respondError(c, "listDeliveryReportsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deliveryReports": deliveries, "count": count})
}

func exportDeliveryReportsHandler(c *gin.Context) {
	loc := config.DisplayLocation()
	err := exports.ExportDeliveryReports(c.Request.Context(), c.Writer, loc, c.Query("dateStart"), c.Query("dateEnd"))
	if err != nil {
		respondError(c, "exportDeliveryReportsHandler", err)
	}
}

func listBillingHandler(c *gin.Context) {
	loc := config.DisplayLocation()
	billings, err := models.ListBilling(c.Request.Context(), loc,
		c.Query("startDate"), c.Query("endDate"), c.Query("status"), c.Query("plantCode"))
	if err != nil {
		respondError(c, "listBillingHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"billings": billings})
}

func exportBillingHandler(c *gin.Context) {
	var req billingExportRequest
	if !bindJSON(c, &req) {
		return
	}

	loc := config.DisplayLocation()
	err := exports.ExportBilling(c.Request.Context(), c.Writer, loc, req.Billings, req.Type)
	if err != nil {
		respondError(c, "exportBillingHandler", err)
	}
}

func exportBillingTextHandler(c *gin.Context) {
	var req billingExportRequest
	if !bindJSON(c, &req) {
		return
	}

	loc := config.DisplayLocation()
	err := exports.ExportBillingText(c.Request.Context(), c.Writer, loc, req.Billings, req.Type)
	if err != nil {
		respondError(c, "exportBillingTextHandler", err)
	}
}
