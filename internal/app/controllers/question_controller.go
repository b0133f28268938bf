package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/vhoang/advisorhub/internal/app/models"
	"github.com/vhoang/advisorhub/internal/app/models/dto"
	"github.com/vhoang/advisorhub/internal/app/services"
	"github.com/vhoang/advisorhub/internal/middleware"
)

// QuestionController handles question and answer operations
type QuestionController struct {
	questionService *services.QuestionService
	answerService   *services.AnswerService
	logger          zerolog.Logger
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(
	questionService *services.QuestionService,
	answerService *services.AnswerService,
	logger zerolog.Logger,
) *QuestionController {
	return &QuestionController{
		questionService: questionService,
		answerService:   answerService,
		logger:          logger,
	}
}

// ListQuestions returns questions matching the status, category and q
// query parameters. Missing or "all" values keep every question.
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	status := ctx.Query("status")
	category := ctx.Query("category")
	keyword := ctx.Query("q")

	questions, err := c.questionService.ListQuestions(ctx.Request.Context(), status, category, keyword)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewQuestionListResponse(questions))
}

// GetQuestion returns a single question with its answer history
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := c.questionID(ctx)
	if !ok {
		return
	}

	question, err := c.questionService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// CreateQuestion posts a new question for the signed-in student
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create question payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// UpdateQuestion edits a pending question owned by the signed-in student
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := c.questionID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update question payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// UpdateStatus moves a question between workflow states
func (c *QuestionController) UpdateStatus(ctx *gin.Context) {
	id, ok := c.questionID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update status payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	question, err := c.questionService.SetStatus(ctx.Request.Context(), id, models.QuestionStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// CreateAnswer appends a new answer version to a question and returns the
// refreshed question, so the caller sees the full history and the answered
// status in one round trip.
func (c *QuestionController) CreateAnswer(ctx *gin.Context) {
	id, ok := c.questionID(ctx)
	if !ok {
		return
	}

	var req dto.CreateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create answer payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	advisorID := ctx.GetInt64(middleware.ContextUserID)
	if _, err := c.answerService.AppendVersion(ctx.Request.Context(), id, advisorID, req.Content, req.Note); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	question, err := c.questionService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// ListAnswers returns a question's answer history, oldest version first
func (c *QuestionController) ListAnswers(ctx *gin.Context) {
	id, ok := c.questionID(ctx)
	if !ok {
		return
	}

	history, err := c.answerService.History(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AnswerVersionResponse, 0, len(history))
	for i := range history {
		responses = append(responses, *dto.NewAnswerVersionResponse(&history[i]))
	}

	ctx.JSON(http.StatusOK, responses)
}

// ListCategories returns the distinct question categories
func (c *QuestionController) ListCategories(ctx *gin.Context) {
	categories, err := c.questionService.ListCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// questionID parses the :id path parameter
func (c *QuestionController) questionID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid question ID")
		errorDetail = errorDetail.WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
