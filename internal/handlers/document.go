package handlers

import (
	"net/http"
	"strconv"

	"github.com/nazaninghn/sustindex/internal/models"
	"github.com/nazaninghn/sustindex/internal/services"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// UploadDocument godoc
// @Summary      Upload an evidence document
// @Description  Attaches a supporting file (max 10MB) to the answer for the given question
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Param        question_id formData int true "Question ID"
// @Param        title formData string false "Document title"
// @Param        file formData file true "File"
// @Success      201 {object} UserDocument
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/attempts/{id}/documents [post]
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	userID := c.GetUint("user_id")
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	questionID, err := strconv.ParseUint(c.PostForm("question_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}
	if fileHeader.Size > services.MaxDocumentSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.ErrFileTooLarge.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	defer file.Close()

	doc, err := h.documentService.Upload(
		uint(attemptID), userID, uint(questionID),
		c.PostForm("title"), fileHeader.Size, file, fileHeader.Filename,
	)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, doc)
}
