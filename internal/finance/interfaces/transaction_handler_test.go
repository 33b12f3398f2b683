package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finapp/finance-backend/internal/finance/domain"
)

func authenticatedRequest(method, target string, body []byte, userID int64) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), "userID", userID))
}

func TestCreateTransaction_AttributesToAuthenticatedUser(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	// user_id in the body must be ignored in favour of the caller identity
	body, err := json.Marshal(map[string]interface{}{
		"user_id":     99,
		"amount":      100.50,
		"type":        "income",
		"description": "Salary",
	})
	assert.NoError(t, err)

	req := authenticatedRequest(http.MethodPost, "/api/protected/transactions", body, 1)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response struct {
		Status string             `json:"status"`
		Data   domain.Transaction `json:"data"`
	}
	err = json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, int64(1), response.Data.UserID)
	assert.Equal(t, 100.50, response.Data.Amount)

	assert.Len(t, service.Transactions, 1)
	assert.Equal(t, int64(1), service.Transactions[0].UserID)
}

func TestCreateTransaction_InvalidType(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{
		"amount": 10.00,
		"type":   "savings",
	})
	assert.NoError(t, err)

	req := authenticatedRequest(http.MethodPost, "/api/protected/transactions", body, 1)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err = json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "error", response["status"])
	assert.Equal(t, "Type must be 'income' or 'expense'", response["message"])

	assert.Empty(t, service.Transactions, "no record may be created on validation failure")
}

func TestCreateTransaction_MissingRequiredFields(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{
		"type": "income",
	})
	assert.NoError(t, err)

	req := authenticatedRequest(http.MethodPost, "/api/protected/transactions", body, 1)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, service.Transactions)
}

func TestCreateTransaction_Unauthorized(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{"amount": 5.0, "type": "income"})
	req := httptest.NewRequest(http.MethodPost, "/api/protected/transactions", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGetUserTransactions_ReturnsOnlyOwnRecords(t *testing.T) {
	service := &MockTransactionService{
		Transactions: []domain.Transaction{
			{ID: 1, UserID: 1, Amount: 100.50, Type: "income"},
			{ID: 2, UserID: 1, Amount: 30.00, Type: "expense"},
			{ID: 3, UserID: 2, Amount: 20.00, Type: "income"},
		},
	}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/transactions/1", nil, 1)
	req.SetPathValue("userID", "1")
	w := httptest.NewRecorder()

	handler.GetUserTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []domain.Transaction `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Len(t, response.Data, 2)
}

func TestGetUserTransactions_ForbiddenForOtherUser(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/transactions/2", nil, 1)
	req.SetPathValue("userID", "2")
	w := httptest.NewRecorder()

	handler.GetUserTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestGetUserTransactions_EmptySetIsNotAnError(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/transactions/1", nil, 1)
	req.SetPathValue("userID", "1")
	w := httptest.NewRecorder()

	handler.GetUserTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []domain.Transaction `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.NotNil(t, response.Data)
	assert.Len(t, response.Data, 0)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{"amount": 15.0, "type": "expense"})
	req := authenticatedRequest(http.MethodPut, "/api/protected/transactions/42", body, 1)
	req.SetPathValue("id", "42")
	w := httptest.NewRecorder()

	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Transaction not found", response["message"])
}

func TestUpdateTransaction_ForbiddenForNonOwner(t *testing.T) {
	service := &MockTransactionService{
		Transactions: []domain.Transaction{
			{ID: 5, UserID: 2, Amount: 10.00, Type: "income"},
		},
	}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{"amount": 15.0, "type": "expense"})
	req := authenticatedRequest(http.MethodPut, "/api/protected/transactions/5", body, 1)
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, 10.00, service.Transactions[0].Amount)
}

func TestUpdateTransaction_OverwritesEditableFields(t *testing.T) {
	service := &MockTransactionService{
		Transactions: []domain.Transaction{
			{ID: 5, UserID: 1, Amount: 10.00, Type: "income", Description: "old"},
		},
	}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"user_id":     7, // must be ignored
		"amount":      25.50,
		"type":        "expense",
		"description": "new",
	})
	req := authenticatedRequest(http.MethodPut, "/api/protected/transactions/5", body, 1)
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data domain.Transaction `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, 25.50, response.Data.Amount)
	assert.Equal(t, "expense", response.Data.Type)
	assert.Equal(t, "new", response.Data.Description)
	assert.Equal(t, int64(1), response.Data.UserID)
}

func TestDeleteTransaction_ReturnsDeletedRecord(t *testing.T) {
	service := &MockTransactionService{
		Transactions: []domain.Transaction{
			{ID: 9, UserID: 1, Amount: 12.00, Type: "expense"},
		},
	}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/api/protected/transactions/9", nil, 1)
	req.SetPathValue("id", "9")
	w := httptest.NewRecorder()

	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data domain.Transaction `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), response.Data.ID)
	assert.Empty(t, service.Transactions)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/api/protected/transactions/404", nil, 1)
	req.SetPathValue("id", "404")
	w := httptest.NewRecorder()

	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetTotalAmount_MixedSet(t *testing.T) {
	service := &MockTransactionService{
		Transactions: []domain.Transaction{
			{ID: 1, UserID: 1, Amount: 100.50, Type: "income"},
			{ID: 2, UserID: 1, Amount: 30.00, Type: "expense"},
			{ID: 3, UserID: 1, Amount: 20.00, Type: "income"},
			{ID: 4, UserID: 2, Amount: 500.00, Type: "income"},
		},
	}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/transactions/total/1", nil, 1)
	req.SetPathValue("userID", "1")
	w := httptest.NewRecorder()

	handler.GetTotalAmount(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data map[string]float64 `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, 90.50, response.Data["total"])
}

func TestGetTotalAmount_ForbiddenForOtherUser(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewPersonalTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/transactions/total/3", nil, 1)
	req.SetPathValue("userID", "3")
	w := httptest.NewRecorder()

	handler.GetTotalAmount(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
