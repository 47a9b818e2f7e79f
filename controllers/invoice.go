// controllers/invoice.go
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

// InvoiceInput defines the expected JSON structure for creating or editing
// an invoice. Subtotal and total are never accepted from the client.
type InvoiceInput struct {
	CustomerName    string               `json:"customerName" binding:"required"`
	CustomerEmail   string               `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone   string               `json:"customerPhone"`
	CustomerAddress string               `json:"customerAddress"`
	InvoiceDate     string               `json:"invoiceDate" binding:"required"`
	DueDate         string               `json:"dueDate"`
	Items           []models.LineItem    `json:"items" binding:"required,min=1"`
	Tax             models.Amount        `json:"tax"`
	Status          models.InvoiceStatus `json:"status" binding:"omitempty,oneof=paid unpaid"`
	Notes           string               `json:"notes"`
}

type InvoiceStatusInput struct {
	Status models.InvoiceStatus `json:"status" binding:"required,oneof=paid unpaid"`
}

// TotalsInput is a draft the dashboard wants totals for.
type TotalsInput struct {
	Items []models.LineItem `json:"items"`
	Tax   models.Amount     `json:"tax"`
}

type InvoiceController struct {
	AdminBase
	API *services.APIClient
	Now func() time.Time
}

func (in InvoiceInput) toInvoice() (models.Invoice, error) {
	if err := validateItems(in.Items); err != nil {
		return models.Invoice{}, err
	}
	if err := validateDates(in.InvoiceDate, in.DueDate); err != nil {
		return models.Invoice{}, err
	}
	if in.Tax.IsNegative() {
		return models.Invoice{}, &services.ValidationError{Field: "tax", Message: "Tax cannot be negative"}
	}

	inv := models.Invoice{
		Customer: models.Customer{
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
			CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
			CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		},
		InvoiceDate: in.InvoiceDate,
		DueDate:     in.DueDate,
		Items:       in.Items,
		Tax:         in.Tax,
		Status:      in.Status,
		Notes:       in.Notes,
	}
	if inv.Status == "" {
		inv.Status = models.StatusUnpaid
	}
	services.ApplyInvoiceTotals(&inv)
	return inv, nil
}

func validateItems(items []models.LineItem) error {
	for i := range items {
		items[i].Description = strings.TrimSpace(items[i].Description)
		if items[i].Description == "" {
			return &services.ValidationError{Field: "items", Message: fmt.Sprintf("Item %d needs a description", i+1)}
		}
	}
	return nil
}

func validateDates(issued, due string) error {
	start, err := utils.ParseDate(issued)
	if err != nil {
		return &services.ValidationError{Field: "invoiceDate", Message: "Invoice date is not a valid date"}
	}
	if due == "" {
		return nil
	}
	end, err := utils.ParseDate(due)
	if err != nil {
		return &services.ValidationError{Field: "dueDate", Message: "Due date is not a valid date"}
	}
	if end.Before(utils.BeginningOfDay(start)) {
		return &services.ValidationError{Field: "dueDate", Message: "Due date cannot be before the invoice date"}
	}
	return nil
}

// GetInvoices returns the invoice list narrowed by ?status= and ?q=.
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	filter, err := models.ParseStatusFilter(c.Query("status"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	invoices, err := ic.API.ListInvoices(c.Request.Context(), token(c))
	if err != nil {
		ic.handleError(c, err, "Failed to retrieve invoices")
		return
	}
	invoices = services.NumberInvoices(invoices)

	paid := len(services.FilterInvoices(invoices, "", models.FilterPaid))
	c.JSON(http.StatusOK, gin.H{
		"invoices": services.FilterInvoices(invoices, c.Query("q"), filter),
		"counts": gin.H{
			"all":    len(invoices),
			"paid":   paid,
			"unpaid": len(invoices) - paid,
		},
	})
}

// ExportInvoiceList renders the filtered list as an xlsx download.
func (ic *InvoiceController) ExportInvoiceList(c *gin.Context) {
	filter, err := models.ParseStatusFilter(c.Query("status"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	invoices, err := ic.API.ListInvoices(c.Request.Context(), token(c))
	if err != nil {
		ic.handleError(c, err, "Failed to retrieve invoices")
		return
	}
	invoices = services.FilterInvoices(services.NumberInvoices(invoices), c.Query("q"), filter)

	data, err := services.InvoicesWorkbook(invoices)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build spreadsheet")
		return
	}
	filename := fmt.Sprintf("invoices-%s.xlsx", ic.now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// PreviewTotals derives subtotal and total for a draft without saving it.
func (ic *InvoiceController) PreviewTotals(c *gin.Context) {
	var input TotalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, services.ComputeTotals(input.Items, input.Tax))
}

func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	inv, err := ic.API.GetInvoice(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		ic.handleError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	var input InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	inv, err := input.toInvoice()
	if err != nil {
		ic.handleError(c, err, "Invalid invoice")
		return
	}

	created, err := ic.API.CreateInvoice(c.Request.Context(), token(c), &inv)
	if err != nil {
		ic.handleError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	var input InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	inv, err := input.toInvoice()
	if err != nil {
		ic.handleError(c, err, "Invalid invoice")
		return
	}

	updated, err := ic.API.UpdateInvoice(c.Request.Context(), token(c), c.Param("id"), &inv)
	if err != nil {
		ic.handleError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	if err := ic.API.DeleteInvoice(c.Request.Context(), token(c), c.Param("id")); err != nil {
		ic.handleError(c, err, "Failed to delete invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

func (ic *InvoiceController) UpdateInvoiceStatus(c *gin.Context) {
	var input InvoiceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	inv, err := ic.API.SetInvoiceStatus(c.Request.Context(), token(c), c.Param("id"), input.Status)
	if err != nil {
		ic.handleError(c, err, "Failed to update invoice status")
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (ic *InvoiceController) SendInvoice(c *gin.Context) {
	if err := ic.API.SendInvoice(c.Request.Context(), token(c), c.Param("id")); err != nil {
		ic.handleError(c, err, "Failed to send invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice sent successfully"})
}

// ExportInvoice streams the backend's PDF or Excel rendering.
func (ic *InvoiceController) ExportInvoice(c *gin.Context) {
	format := c.Param("format")
	ext, ok := exportExtensions[format]
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Export format must be pdf or excel")
		return
	}

	id := c.Param("id")
	dl, err := ic.API.ExportInvoice(c.Request.Context(), token(c), id, format)
	if err != nil {
		ic.handleError(c, err, "Failed to export invoice")
		return
	}
	streamDownload(c, dl, "invoice-"+id+ext)
}

// ContactCustomer returns a WhatsApp link prefilled with a note about the invoice.
func (ic *InvoiceController) ContactCustomer(c *gin.Context) {
	inv, err := ic.API.GetInvoice(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		ic.handleError(c, err, "Failed to retrieve invoice")
		return
	}
	if !utils.ValidatePhone(inv.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer has no valid phone number")
		return
	}

	msg := services.InvoiceContactMessage(*inv, ic.now())
	c.JSON(http.StatusOK, gin.H{
		"message":     msg,
		"whatsappUrl": services.APISendLink(inv.CustomerPhone, msg),
	})
}

func (ic *InvoiceController) now() time.Time {
	if ic.Now != nil {
		return ic.Now()
	}
	return time.Now()
}
