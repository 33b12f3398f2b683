package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/finapp/finance-backend/internal/finance/application"
	"github.com/finapp/finance-backend/internal/finance/domain"
	financeErrors "github.com/finapp/finance-backend/internal/finance/errors"
)

type TransactionServiceInterface interface {
	CreateTransaction(transaction *domain.Transaction) error
	GetUserTransactions(userID int64) ([]domain.Transaction, error)
	UpdateTransaction(transactionID, userID int64, update application.TransactionUpdate) (*domain.Transaction, error)
	DeleteTransaction(transactionID, userID int64) (*domain.Transaction, error)
	GetTotalAmount(userID int64) (float64, error)
}

type PersonalTransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewPersonalTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *PersonalTransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and response functions must not be nil")
		return nil
	}
	return &PersonalTransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *PersonalTransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// user_id in the body is deliberately not decoded: a transaction always
	// belongs to the authenticated caller.
	var req struct {
		Amount      *float64 `json:"amount"`
		Type        string   `json:"type"`
		Description string   `json:"description"`
		Categorie   string   `json:"categorie"`
		Date        string   `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == nil || req.Type == "" {
		h.respondError(w, http.StatusBadRequest, "Amount and type are required")
		return
	}

	transaction := domain.Transaction{
		UserID:      userID,
		Amount:      *req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Categorie:   req.Categorie,
		Date:        req.Date,
	}
	if err := h.service.CreateTransaction(&transaction); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during transaction creation:", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *PersonalTransactionHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pathUserID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if pathUserID != userID {
		h.respondError(w, http.StatusForbidden, "You can only access your own transactions")
		return
	}

	transactions, err := h.service.GetUserTransactions(pathUserID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transactions retrieved successfully.",
		"data":    transactions,
	})
}

func (h *PersonalTransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req struct {
		Amount      *float64 `json:"amount"`
		Type        string   `json:"type"`
		Description string   `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == nil || req.Type == "" {
		h.respondError(w, http.StatusBadRequest, "Amount and type are required")
		return
	}

	transaction, err := h.service.UpdateTransaction(transactionID, userID, application.TransactionUpdate{
		Amount:      *req.Amount,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		h.respondTransactionError(w, err, "Failed to update transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    transaction,
	})
}

func (h *PersonalTransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	transaction, err := h.service.DeleteTransaction(transactionID, userID)
	if err != nil {
		h.respondTransactionError(w, err, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
		"data":    transaction,
	})
}

func (h *PersonalTransactionHandler) GetTotalAmount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pathUserID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if pathUserID != userID {
		h.respondError(w, http.StatusForbidden, "You can only access your own transactions")
		return
	}

	total, err := h.service.GetTotalAmount(pathUserID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to compute total amount")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Total amount computed successfully.",
		"data": map[string]float64{
			"total": total,
		},
	})
}

func (h *PersonalTransactionHandler) respondTransactionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, financeErrors.ErrTransactionNotFound):
		h.respondError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, financeErrors.ErrNotTransactionOwner):
		h.respondError(w, http.StatusForbidden, "You can only modify your own transactions")
	default:
		log.Println("Transaction operation failed:", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
