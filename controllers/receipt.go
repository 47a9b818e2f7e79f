package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"optimasfibre-web/models"
	"optimasfibre-web/services"
	"optimasfibre-web/utils"

	"github.com/gin-gonic/gin"
)

// ReceiptInput defines the expected JSON structure for a receipt. With
// fromInvoiceId set, customer, items and tax are copied from that invoice
// and only the payment fields are read from the request. A missing
// amountPaid means the total was paid in full.
type ReceiptInput struct {
	FromInvoiceID   string            `json:"fromInvoiceId"`
	InvoiceNumber   string            `json:"invoiceNumber"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerAddress string            `json:"customerAddress"`
	PaymentDate     string            `json:"paymentDate"`
	Items           []models.LineItem `json:"items"`
	Tax             models.Amount     `json:"tax"`
	AmountPaid      *models.Amount    `json:"amountPaid"`
	PaymentMethod   string            `json:"paymentMethod" binding:"required"`
	Notes           string            `json:"notes"`
}

type ReceiptController struct {
	AdminBase
	API *services.APIClient
	Now func() time.Time
}

func (rc *ReceiptController) buildReceipt(c *gin.Context, in ReceiptInput) (models.Receipt, error) {
	r := models.Receipt{
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		Customer: models.Customer{
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
			CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
			CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		},
		PaymentDate:   in.PaymentDate,
		Items:         in.Items,
		Tax:           in.Tax,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Notes:         in.Notes,
	}

	if in.FromInvoiceID != "" {
		inv, err := rc.API.GetInvoice(c.Request.Context(), token(c), in.FromInvoiceID)
		if err != nil {
			return models.Receipt{}, err
		}
		r.InvoiceNumber = inv.InvoiceNumber
		r.Customer = inv.Customer
		r.Items = inv.Items
		r.Tax = inv.Tax
	}

	if r.CustomerName == "" {
		return models.Receipt{}, &services.ValidationError{Field: "customerName", Message: "Customer name is required"}
	}
	if len(r.Items) == 0 {
		return models.Receipt{}, &services.ValidationError{Field: "items", Message: "Add at least one item"}
	}
	if err := validateItems(r.Items); err != nil {
		return models.Receipt{}, err
	}
	if r.PaymentDate == "" {
		r.PaymentDate = rc.now().Format("2006-01-02")
	} else if _, err := utils.ParseDate(r.PaymentDate); err != nil {
		return models.Receipt{}, &services.ValidationError{Field: "paymentDate", Message: "Payment date is not a valid date"}
	}
	if r.Tax.IsNegative() {
		return models.Receipt{}, &services.ValidationError{Field: "tax", Message: "Tax cannot be negative"}
	}
	if in.AmountPaid != nil && in.AmountPaid.IsNegative() {
		return models.Receipt{}, &services.ValidationError{Field: "amountPaid", Message: "Amount paid cannot be negative"}
	}

	services.ApplyReceiptTotals(&r, in.AmountPaid)
	return r, nil
}

// GetReceipts returns receipts matching ?q=.
func (rc *ReceiptController) GetReceipts(c *gin.Context) {
	receipts, err := rc.API.ListReceipts(c.Request.Context(), token(c))
	if err != nil {
		rc.handleError(c, err, "Failed to retrieve receipts")
		return
	}
	receipts = services.NumberReceipts(receipts)
	c.JSON(http.StatusOK, gin.H{
		"receipts": services.FilterReceipts(receipts, c.Query("q")),
		"count":    len(receipts),
	})
}

func (rc *ReceiptController) ExportReceiptList(c *gin.Context) {
	receipts, err := rc.API.ListReceipts(c.Request.Context(), token(c))
	if err != nil {
		rc.handleError(c, err, "Failed to retrieve receipts")
		return
	}
	receipts = services.FilterReceipts(services.NumberReceipts(receipts), c.Query("q"))

	data, err := services.ReceiptsWorkbook(receipts)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build spreadsheet")
		return
	}
	filename := fmt.Sprintf("receipts-%s.xlsx", rc.now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (rc *ReceiptController) GetReceipt(c *gin.Context) {
	r, err := rc.API.GetReceipt(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		rc.handleError(c, err, "Failed to retrieve receipt")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rc *ReceiptController) CreateReceipt(c *gin.Context) {
	var input ReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	r, err := rc.buildReceipt(c, input)
	if err != nil {
		rc.handleError(c, err, "Invalid receipt")
		return
	}

	created, err := rc.API.CreateReceipt(c.Request.Context(), token(c), &r)
	if err != nil {
		rc.handleError(c, err, "Failed to create receipt")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (rc *ReceiptController) UpdateReceipt(c *gin.Context) {
	var input ReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	r, err := rc.buildReceipt(c, input)
	if err != nil {
		rc.handleError(c, err, "Invalid receipt")
		return
	}

	updated, err := rc.API.UpdateReceipt(c.Request.Context(), token(c), c.Param("id"), &r)
	if err != nil {
		rc.handleError(c, err, "Failed to update receipt")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (rc *ReceiptController) DeleteReceipt(c *gin.Context) {
	if err := rc.API.DeleteReceipt(c.Request.Context(), token(c), c.Param("id")); err != nil {
		rc.handleError(c, err, "Failed to delete receipt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Receipt deleted successfully"})
}

func (rc *ReceiptController) SendReceipt(c *gin.Context) {
	if err := rc.API.SendReceipt(c.Request.Context(), token(c), c.Param("id")); err != nil {
		rc.handleError(c, err, "Failed to send receipt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Receipt sent successfully"})
}

func (rc *ReceiptController) ExportReceipt(c *gin.Context) {
	id := c.Param("id")
	dl, err := rc.API.ExportReceiptPDF(c.Request.Context(), token(c), id)
	if err != nil {
		rc.handleError(c, err, "Failed to export receipt")
		return
	}
	streamDownload(c, dl, "receipt-"+id+".pdf")
}

func (rc *ReceiptController) now() time.Time {
	if rc.Now != nil {
		return rc.Now()
	}
	return time.Now()
}
