package handler

import (
	"net/http"

	"kgwahlawifi/internal/apierror"
	"kgwahlawifi/internal/dto"
	"kgwahlawifi/internal/notify"
	"kgwahlawifi/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ContactHandler forwards contact-form submissions to the operator inbox
// through the email queue.
type ContactHandler struct {
	dispatcher *worker.Dispatcher
	inbox      string
}

func NewContactHandler(dispatcher *worker.Dispatcher, inbox string) *ContactHandler {
	return &ContactHandler{dispatcher: dispatcher, inbox: inbox}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !bindAndValidate(c, &req) {
		return
	}
	subject, body := notify.ContactMessage(req.Name, req.Email, req.Subject, req.Message)
	payload := worker.EmailJobPayload{To: h.inbox, Subject: subject, HTML: body}
	if err := h.dispatcher.EnqueueEmail(c.Request.Context(), payload); err != nil {
		log.Error().Err(err).Msg("contact enqueue failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to send message"))
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Message sent"})
}
