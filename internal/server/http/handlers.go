package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/server/models"
	"github.com/dmitrijs2005/toldya/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Caller-facing texts. Nothing else about a failure is ever sent back.
const (
	msgMissingFields       = "Missing required fields"
	msgFieldLengthExceeded = "Field length exceeded"
	msgInvalidRevealTime   = "Invalid revealTime"
	msgCreateFailed        = "Something went wrong"
	msgMissingMessageID    = "Missing message_id in query string"
	msgNotFound            = "This message does not exist. Invalid message Id"
	msgGetFailed           = "Something went wrong, please try again"
)

type createRequest struct {
	Name       json.RawMessage `json:"name"`
	Subject    json.RawMessage `json:"subject"`
	Message    json.RawMessage `json:"message"`
	RevealTime json.RawMessage `json:"revealTime"`
}

type messageResponse struct {
	ResponseMessage string `json:"response_message"`
}

// getResponse keeps every field present, as null when unknown.
type getResponse struct {
	Name            *string      `json:"name"`
	Subject         *string      `json:"subject"`
	RevealTime      *json.Number `json:"revealTime"`
	CreateTime      *json.Number `json:"messageCreateTime"`
	Message         *string      `json:"message"`
	ResponseMessage string       `json:"response_message,omitempty"`
}

func newGetResponse(v *models.View) getResponse {
	reveal := models.JSONNumber(v.RevealTime)
	created := models.JSONNumber(v.CreateTime)
	return getResponse{
		Name:       &v.Name,
		Subject:    &v.Subject,
		RevealTime: &reveal,
		CreateTime: &created,
		Message:    v.Body,
	}
}

// CreateMessage handles POST /messages.
func (h *Handlers) CreateMessage(c *gin.Context) {
	ctx := c.Request.Context()

	in, err := decodeCreateRequest(c)
	if err != nil {
		h.logger.Error(ctx, "cannot decode create request", "error", err)
		writeJSON(c, http.StatusInternalServerError, messageResponse{msgCreateFailed})
		return
	}

	id, err := h.svc.Create(ctx, in)
	switch {
	case err == nil:
		writeJSON(c, http.StatusCreated, messageResponse{id})
	case errors.Is(err, common.ErrMissingFields):
		writeJSON(c, http.StatusBadRequest, messageResponse{msgMissingFields})
	case errors.Is(err, common.ErrFieldLengthExceeded):
		writeJSON(c, http.StatusBadRequest, messageResponse{msgFieldLengthExceeded})
	case errors.Is(err, common.ErrInvalidRevealTime):
		writeJSON(c, http.StatusBadRequest, messageResponse{msgInvalidRevealTime})
	default:
		writeJSON(c, http.StatusInternalServerError, messageResponse{msgCreateFailed})
	}
}

// decodeCreateRequest accepts only a JSON object. A text field holding a
// value that services.Present rejects (null, false, 0, [], {}) decodes as
// empty. Any other non-string text field is an error once every field is
// given; before that the request is simply incomplete.
func decodeCreateRequest(c *gin.Context) (services.CreateMessageInput, error) {
	body, err := c.GetRawData()
	if err != nil {
		return services.CreateMessageInput{}, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return services.CreateMessageInput{}, errors.New("request body is not a JSON object")
	}

	var req createRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return services.CreateMessageInput{}, err
	}

	raws := [...]json.RawMessage{req.Name, req.Subject, req.Message}
	var texts [len(raws)]string
	complete := services.Present(req.RevealTime)
	var typeErr error

	for i, raw := range raws {
		if !services.Present(raw) {
			complete = false
			continue
		}
		if err := json.Unmarshal(raw, &texts[i]); err != nil {
			typeErr = fmt.Errorf("text field is not a string: %w", err)
			texts[i] = string(bytes.TrimSpace(raw))
		}
	}
	if complete && typeErr != nil {
		return services.CreateMessageInput{}, typeErr
	}

	return services.CreateMessageInput{
		Name:       texts[0],
		Subject:    texts[1],
		Message:    texts[2],
		RevealTime: req.RevealTime,
	}, nil
}

// GetMessage handles GET /messages?message_id=.
func (h *Handlers) GetMessage(c *gin.Context) {
	view, err := h.svc.Get(c.Request.Context(), c.Query("message_id"))
	switch {
	case err == nil:
		writeJSON(c, http.StatusOK, newGetResponse(view))
	case errors.Is(err, common.ErrMissingMessageID):
		writeJSON(c, http.StatusBadRequest, messageResponse{msgMissingMessageID})
	case errors.Is(err, common.ErrorNotFound):
		// Not found shares the 500 status with internal errors; only the text differs.
		writeJSON(c, http.StatusInternalServerError, getResponse{ResponseMessage: msgNotFound})
	default:
		writeJSON(c, http.StatusInternalServerError, getResponse{ResponseMessage: msgGetFailed})
	}
}

func writeJSON(c *gin.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		c.Data(http.StatusInternalServerError, "application/json", []byte(`{"response_message":"Something went wrong"}`))
		return
	}
	c.Data(status, "application/json", body)
}
