package user

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/config"
	"github.com/tuanvo/exam-portal/internal/dto"
	"github.com/tuanvo/exam-portal/internal/questionbank"
	"github.com/tuanvo/exam-portal/internal/service"
)

type ExamController struct {
	eligibilityService service.EligibilityService
	examService        service.ExamService
	bank               *questionbank.Bank
	cfg                *config.Config
}

func NewExamController(es service.EligibilityService, xs service.ExamService, bank *questionbank.Bank, cfg *config.Config) *ExamController {
	return &ExamController{
		eligibilityService: es,
		examService:        xs,
		bank:               bank,
		cfg:                cfg,
	}
}

// parseLocalTime keeps the client's own zone offset. Day boundaries are
// computed from it downstream, so normalizing to server time here would
// reintroduce the timezone-boundary bug.
func parseLocalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CheckEligibility godoc
// @Summary Check whether a participant may take today's exam
// @Description Registers the participant if unknown. When eligible and an entry timestamp is supplied, opens the day's attempt and replies 201.
// @Tags Exams
// @Accept json
// @Produce json
// @Param request body dto.CheckEligibilityRequest true "Participant identity and local entry time (RFC 3339)"
// @Success 200 {object} dto.EligibilityResponse
// @Success 201 {object} dto.EligibilityResponse "Attempt opened"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} dto.ErrorResponse "Attempt already opened concurrently"
// @Failure 500 {object} dto.ErrorResponse
// @Router /check-eligibility [post]
func (c *ExamController) CheckEligibility(ctx *gin.Context) {
	var req dto.CheckEligibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing required fields: email, hoTen", Details: []string{err.Error()}})
		return
	}
	enteredAt, err := parseLocalTime(req.EnteredAt)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "ngayVaoThi must be an RFC 3339 timestamp"})
		return
	}

	participant, err := c.eligibilityService.EnsureParticipant(req.Email, req.FullName, req.Department)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("CheckEligibility: ensure participant failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check exam eligibility"})
		return
	}

	checkTime := time.Now()
	if enteredAt != nil {
		checkTime = *enteredAt
	}
	result, err := c.eligibilityService.CheckEligibility(participant, checkTime)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("CheckEligibility: check failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check exam eligibility"})
		return
	}

	if !result.Eligible {
		ctx.JSON(http.StatusOK, dto.EligibilityResponse{
			Eligible:         false,
			Message:          "Participant has already taken the exam today",
			ExistingExamDate: result.ExistingExamDate,
		})
		return
	}

	if enteredAt == nil {
		ctx.JSON(http.StatusOK, dto.EligibilityResponse{
			Eligible: true,
			Message:  "Participant may take the exam",
		})
		return
	}

	exam, err := c.eligibilityService.OpenAttempt(participant, *enteredAt)
	if err != nil {
		if errors.Is(err, service.ErrExamAlreadyExists) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("CheckEligibility: open attempt failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to open exam attempt"})
		return
	}
	ctx.JSON(http.StatusCreated, dto.EligibilityResponse{
		Eligible: true,
		Message:  "Participant registered and exam attempt opened",
		ExamRef:  exam.Ref,
	})
}

// SaveExam godoc
// @Summary Record an exam result
// @Description With hoTen present this is the create variant (registers the participant and records a fresh attempt, 201); without it, the update variant finalizing the existing attempt (200).
// @Tags Exams
// @Accept json
// @Produce json
// @Param request body dto.SaveExamRequest true "Exam result"
// @Success 200 {object} dto.ExamUpdatedResponse
// @Success 201 {object} dto.ExamSavedResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed fields"
// @Failure 404 {object} dto.ErrorResponse "Unknown participant or attempt (update variant)"
// @Failure 409 {object} dto.ErrorResponse "Attempt already exists for this day"
// @Failure 500 {object} dto.ErrorResponse
// @Router /save-exam [post]
func (c *ExamController) SaveExam(ctx *gin.Context) {
	var req dto.SaveExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing required fields: email, diem, soCauDung", Details: []string{err.Error()}})
		return
	}
	enteredAt, err := parseLocalTime(req.EnteredAt)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "ngayVaoThi must be an RFC 3339 timestamp"})
		return
	}
	submittedAt, err := parseLocalTime(req.SubmittedAt)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "ngayNop must be an RFC 3339 timestamp"})
		return
	}

	if req.FullName != "" {
		data, err := c.examService.CreateExam(service.CreateExamInput{
			Email:        req.Email,
			FullName:     req.FullName,
			Department:   req.Department,
			Score:        *req.Score,
			CorrectCount: *req.CorrectCount,
			Answers:      req.Questions,
			EnteredAt:    enteredAt,
			SubmittedAt:  submittedAt,
		})
		if err != nil {
			c.writeSaveError(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, dto.ExamSavedResponse{Message: "Exam saved successfully", Data: *data})
		return
	}

	resp, err := c.examService.UpdateExam(service.UpdateExamInput{
		Email:        req.Email,
		Score:        *req.Score,
		CorrectCount: *req.CorrectCount,
		Answers:      req.Questions,
		SubmittedAt:  submittedAt,
	})
	if err != nil {
		c.writeSaveError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *ExamController) writeSaveError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidScore), errors.Is(err, service.ErrInvalidCorrectCount):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrParticipantNotFound), errors.Is(err, service.ErrExamNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrExamAlreadyExists):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("SaveExam: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to save exam"})
	}
}

// GetExamReview godoc
// @Summary Fetch the question/answer list of a submitted exam
// @Tags Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamReviewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid exam ID"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /exams/{exam_id} [get]
func (c *ExamController) GetExamReview(ctx *gin.Context) {
	examID, err := strconv.ParseUint(ctx.Param("exam_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam ID format"})
		return
	}

	review, err := c.examService.GetExamReview(uint(examID))
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint64("examID", examID).Msg("GetExamReview: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch exam"})
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// GetExamPaper godoc
// @Summary Draw a randomized exam paper from the question bank
// @Description Samples the configured number of questions without replacement, in random order, with correct answers stripped.
// @Tags Exams
// @Produce json
// @Success 200 {object} dto.ExamPaperResponse
// @Router /questions [get]
func (c *ExamController) GetExamPaper(ctx *gin.Context) {
	sampled := c.bank.Sample(c.cfg.Exam.QuestionCount)
	questions := make([]dto.ExamPaperQuestion, len(sampled))
	for i, q := range sampled {
		questions[i] = dto.ExamPaperQuestion{ID: q.ID, Prompt: q.Prompt, Options: q.Options}
	}
	ctx.JSON(http.StatusOK, dto.ExamPaperResponse{
		DurationSeconds: c.cfg.Exam.DurationMinutes * 60,
		Questions:       questions,
	})
}
